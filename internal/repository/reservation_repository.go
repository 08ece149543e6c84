package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"

    "github.com/emirsoy/lal-floor/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Guest-facing
// inserts arrive through the reservation form; everything else is
// staff-driven.  Date and time columns are read back as formatted strings
// because reservation times are wall-clock values with no timezone.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, full_name, email,
    DATE_FORMAT(res_date, '%Y-%m-%d'), TIME_FORMAT(res_time, '%H:%i'),
    note, status, table_no, created_at`

func scanReservation(scan func(dest ...interface{}) error) (model.Reservation, error) {
    var r model.Reservation
    var tableNo sql.NullInt64
    err := scan(&r.ID, &r.FullName, &r.Email, &r.ResDate, &r.ResTime,
        &r.Note, &r.Status, &tableNo, &r.CreatedAt)
    if err != nil {
        return model.Reservation{}, err
    }
    if tableNo.Valid {
        n := int(tableNo.Int64)
        r.TableNo = &n
    }
    return r, nil
}

// Create inserts a pending reservation from the guest form and returns its id.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) (uint64, error) {
    out, err := r.db.ExecContext(ctx,
        `INSERT INTO reservations (full_name, email, res_date, res_time, note, status, created_at)
         VALUES (?, ?, ?, ?, ?, ?, NOW())`,
        res.FullName, res.Email, res.ResDate, res.ResTime, res.Note, model.ReservationPending)
    if err != nil {
        return 0, fmt.Errorf("insert reservation: %w", err)
    }
    id, err := out.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByID loads one reservation.  Returns ErrNotFound when the id does
// not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
    res, err := scanReservation(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Reservation{}, ErrNotFound
    }
    return res, err
}

// List returns every reservation ordered by date then time, the order the
// staff board renders them in.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations ORDER BY res_date ASC, res_time ASC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Reservation{}
    for rows.Next() {
        res, err := scanReservation(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// TodaysForFloor returns the reservations the reconciler consumes: today's
// confirmed and seated rows that have a table assigned.  Pending rows and
// other days never influence floor state.
func (r *ReservationRepo) TodaysForFloor(ctx context.Context) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations
          WHERE res_date = CURDATE() AND status IN (?, ?) AND table_no IS NOT NULL`,
        model.ReservationConfirmed, model.ReservationSeated)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Reservation
    for rows.Next() {
        res, err := scanReservation(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// AssignTable confirms a pending reservation onto a table and marks the
// table reserved, in one transaction: the reservation row is updated and a
// table_overrides row is upserted together.  The reconciler does not
// depend on the override row existing: if it is ever lost, the
// reservation's own time window restores the table's state on the next
// pass.  Committing both together avoids the transient gap entirely.
// Returns ErrNotFound for an unknown id and ErrConflict when the
// reservation is no longer pending.
func (r *ReservationRepo) AssignTable(ctx context.Context, id uint64, tableNo int) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin assign tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        `UPDATE reservations SET table_no = ?, status = ? WHERE id = ? AND status = ?`,
        tableNo, model.ReservationConfirmed, id, model.ReservationPending)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var status string
        err := tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&status)
        if errors.Is(err, sql.ErrNoRows) {
            return ErrNotFound
        }
        if err != nil {
            return err
        }
        return fmt.Errorf("reservation is %s: %w", status, ErrConflict)
    }

    if _, err := tx.ExecContext(ctx,
        `INSERT INTO table_overrides (table_no, status) VALUES (?, ?)
         ON DUPLICATE KEY UPDATE status = VALUES(status)`,
        tableNo, model.TableReserved); err != nil {
        return fmt.Errorf("upsert override: %w", err)
    }

    if err := tx.Commit(); err != nil {
        return fmt.Errorf("commit assign tx: %w", err)
    }
    committed = true
    return nil
}

// MarkSeated records that the guest has arrived and returns the assigned
// table number so callers can announce the change without a second read.
// Only a confirmed reservation can be seated; ErrNotFound and ErrConflict
// distinguish a missing row from one in the wrong state.
func (r *ReservationRepo) MarkSeated(ctx context.Context, id uint64) (int, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, fmt.Errorf("begin seat tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = ? WHERE id = ? AND status = ?`,
        model.ReservationSeated, id, model.ReservationConfirmed)
    if err != nil {
        return 0, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return 0, err
    }
    if n == 0 {
        var status string
        err := tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&status)
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrNotFound
        }
        if err != nil {
            return 0, err
        }
        return 0, fmt.Errorf("reservation is %s: %w", status, ErrConflict)
    }

    var tableNo int
    if err := tx.QueryRowContext(ctx,
        `SELECT COALESCE(table_no, 0) FROM reservations WHERE id = ?`, id).Scan(&tableNo); err != nil {
        return 0, err
    }

    if err := tx.Commit(); err != nil {
        return 0, fmt.Errorf("commit seat tx: %w", err)
    }
    committed = true
    return tableNo, nil
}
