package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/emirsoy/lal-floor/internal/model"
)

func TestSettleCompletedBeforeUsesCutoffAsUpperBound(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    cutoff := time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC)

    // Rows older than the cutoff settle; the comparison must be
    // created_at < cutoff, not the reverse.
    mock.ExpectExec(`UPDATE orders SET status = \? WHERE status = \? AND created_at < \?`).
        WithArgs(model.OrderSettled, model.OrderCompleted, cutoff).
        WillReturnResult(sqlmock.NewResult(0, 2))

    n, err := NewOrderRepo(db).SettleCompletedBefore(context.Background(), cutoff)
    require.NoError(t, err)
    assert.Equal(t, int64(2), n)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleTableOrdersSkipsSettledRows(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec(`UPDATE orders SET status = \? WHERE table_no = \? AND status <> \?`).
        WithArgs(model.OrderSettled, 12, model.OrderSettled).
        WillReturnResult(sqlmock.NewResult(0, 0))

    n, err := NewOrderRepo(db).SettleTableOrders(context.Background(), 12)
    require.NoError(t, err)
    assert.Zero(t, n, "a clean table settles nothing")
    assert.NoError(t, mock.ExpectationsWereMet())
}
