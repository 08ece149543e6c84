package repository

import (
    "context"
    "database/sql"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/emirsoy/lal-floor/internal/model"
)

func TestMarkSeatedReturnsAssignedTable(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE reservations SET status = \? WHERE id = \? AND status = \?`).
        WithArgs(model.ReservationSeated, uint64(5), model.ReservationConfirmed).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery(`SELECT COALESCE\(table_no, 0\) FROM reservations WHERE id = \?`).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"table_no"}).AddRow(12))
    mock.ExpectCommit()

    tableNo, err := NewReservationRepo(db).MarkSeated(context.Background(), 5)
    require.NoError(t, err)
    assert.Equal(t, 12, tableNo)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeatedConflictWhenNotConfirmed(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE reservations SET status = \?`).
        WithArgs(model.ReservationSeated, uint64(5), model.ReservationConfirmed).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT status FROM reservations WHERE id = \?`).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("seated"))
    mock.ExpectRollback()

    tableNo, err := NewReservationRepo(db).MarkSeated(context.Background(), 5)
    assert.ErrorIs(t, err, ErrConflict)
    assert.Zero(t, tableNo)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeatedMissingReservation(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE reservations SET status = \?`).
        WithArgs(model.ReservationSeated, uint64(99), model.ReservationConfirmed).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT status FROM reservations WHERE id = \?`).
        WithArgs(uint64(99)).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    _, err = NewReservationRepo(db).MarkSeated(context.Background(), 99)
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
