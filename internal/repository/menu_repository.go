package repository // read-only access to the menu catalog

import (
    "context"
    "database/sql"

    "github.com/emirsoy/lal-floor/internal/model"
)

// MenuRepo reads the menu catalog.  Catalog editing is owned by a
// different system; this service only needs categories and items to serve
// the guest menu and to price checkouts.
type MenuRepo struct {
    db *sql.DB
}

// NewMenuRepo constructs a MenuRepo given a DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// Categories returns all categories in display order.
func (r *MenuRepo) Categories(ctx context.Context) ([]model.Category, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, icon_name, display_order FROM categories ORDER BY display_order ASC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Category{}
    for rows.Next() {
        var c model.Category
        if err := rows.Scan(&c.ID, &c.Name, &c.IconName, &c.DisplayOrder); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Items returns menu items ordered by name.  When onlyAvailable is set,
// items flagged unavailable are filtered out (the guest view); the board
// view passes false.
func (r *MenuRepo) Items(ctx context.Context, onlyAvailable bool) ([]model.MenuItem, error) {
    query := `SELECT id, category_id, name, description, price, is_popular, is_available
                FROM menu_items`
    if onlyAvailable {
        query += ` WHERE is_available = 1`
    }
    query += ` ORDER BY name ASC`

    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.MenuItem{}
    for rows.Next() {
        var m model.MenuItem
        if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description,
            &m.Price, &m.IsPopular, &m.IsAvailable); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}
