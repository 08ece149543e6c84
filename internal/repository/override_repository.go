package repository // repository for manual table override persistence

import (
    "context"
    "database/sql"

    "github.com/emirsoy/lal-floor/internal/model"
)

// OverrideRepo encapsulates database operations for table_overrides.  The
// table is keyed by table number, so writes are upserts and there is never
// more than one row per table.
type OverrideRepo struct {
    db *sql.DB
}

// NewOverrideRepo constructs an OverrideRepo given a DB handle.
func NewOverrideRepo(db *sql.DB) *OverrideRepo { return &OverrideRepo{db: db} }

// Upsert stores the manually-set status for one table, replacing any
// previous value.  Writing "available" keeps the row; the reconciler
// treats it as "no manual claim" rather than deleting history.
func (r *OverrideRepo) Upsert(ctx context.Context, tableNo int, status model.TableStatus) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO table_overrides (table_no, status) VALUES (?, ?)
         ON DUPLICATE KEY UPDATE status = VALUES(status)`,
        tableNo, status)
    return err
}

// List returns every override row.  Tables staff never touched have no row.
func (r *OverrideRepo) List(ctx context.Context) ([]model.TableOverride, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT table_no, status FROM table_overrides`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.TableOverride
    for rows.Next() {
        var ov model.TableOverride
        if err := rows.Scan(&ov.TableNo, &ov.Status); err != nil {
            return nil, err
        }
        out = append(out, ov)
    }
    return out, rows.Err()
}
