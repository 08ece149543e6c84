package repository // repository for order persistence

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/emirsoy/lal-floor/internal/model"
)

// OrderRepo encapsulates database operations for orders and their items.
// Orders are append-plus-advance only: rows are inserted at checkout and
// their status moves toward "settled"; nothing is ever deleted.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo constructs an OrderRepo given a DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for callers that need to start their
// own transactions.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CheckoutItem is one requested line at checkout: which menu item and how
// many.  The unit price is NOT taken from the client; it is snapshotted
// from menu_items inside the checkout transaction.
type CheckoutItem struct {
    MenuItemID uint64
    Quantity   uint32
}

// Create inserts an order and its items atomically.  Unit prices are read
// from menu_items within the same transaction so concurrent menu edits
// cannot skew the total, and only available items can be ordered.  It
// returns the stored order with items populated.  A missing or
// unavailable menu item yields ErrNotFound and nothing is written.
func (r *OrderRepo) Create(ctx context.Context, tableNo int, items []CheckoutItem) (model.Order, error) {
    if len(items) == 0 {
        return model.Order{}, errors.New("checkout requires at least one item")
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Order{}, fmt.Errorf("begin checkout tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Price lookup for every distinct menu item in the request.
    query := `SELECT id, name, price FROM menu_items WHERE is_available = 1 AND id IN (`
    args := make([]interface{}, 0, len(items))
    for i, it := range items {
        if i > 0 {
            query += ","
        }
        query += "?"
        args = append(args, it.MenuItemID)
    }
    query += ")"

    type priced struct {
        name  string
        price float64
    }
    menu := make(map[uint64]priced, len(items))
    rows, err := tx.QueryContext(ctx, query, args...)
    if err != nil {
        return model.Order{}, fmt.Errorf("price lookup: %w", err)
    }
    for rows.Next() {
        var id uint64
        var p priced
        if err := rows.Scan(&id, &p.name, &p.price); err != nil {
            rows.Close()
            return model.Order{}, err
        }
        menu[id] = p
    }
    rows.Close()
    if err := rows.Err(); err != nil {
        return model.Order{}, err
    }

    var total float64
    for _, it := range items {
        p, ok := menu[it.MenuItemID]
        if !ok {
            return model.Order{}, fmt.Errorf("menu item %d: %w", it.MenuItemID, ErrNotFound)
        }
        total += p.price * float64(it.Quantity)
    }

    res, err := tx.ExecContext(ctx,
        `INSERT INTO orders (table_no, status, total_price, created_at) VALUES (?, ?, ?, NOW())`,
        tableNo, model.OrderPending, total)
    if err != nil {
        return model.Order{}, fmt.Errorf("insert order: %w", err)
    }
    orderID, err := res.LastInsertId()
    if err != nil {
        return model.Order{}, err
    }

    // Bulk insert the line items with the snapshotted unit prices.
    itemQuery := `INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price) VALUES `
    itemArgs := make([]interface{}, 0, len(items)*4)
    out := make([]model.OrderItem, 0, len(items))
    for i, it := range items {
        if i > 0 {
            itemQuery += ","
        }
        itemQuery += "(?, ?, ?, ?)"
        p := menu[it.MenuItemID]
        itemArgs = append(itemArgs, orderID, it.MenuItemID, it.Quantity, p.price)
        out = append(out, model.OrderItem{
            OrderID:    uint64(orderID),
            MenuItemID: it.MenuItemID,
            Name:       p.name,
            Quantity:   it.Quantity,
            UnitPrice:  p.price,
        })
    }
    if _, err := tx.ExecContext(ctx, itemQuery, itemArgs...); err != nil {
        return model.Order{}, fmt.Errorf("insert order items: %w", err)
    }

    if err := tx.Commit(); err != nil {
        return model.Order{}, fmt.Errorf("commit checkout tx: %w", err)
    }
    committed = true

    return model.Order{
        ID:         uint64(orderID),
        TableNo:    tableNo,
        Status:     model.OrderPending,
        TotalPrice: total,
        CreatedAt:  time.Now(),
        Items:      out,
    }, nil
}

// GetOrder loads one order without its items.  Returns ErrNotFound when
// the id does not exist.
func (r *OrderRepo) GetOrder(ctx context.Context, id uint64) (model.Order, error) {
    var o model.Order
    err := r.db.QueryRowContext(ctx,
        `SELECT id, table_no, status, total_price, created_at FROM orders WHERE id = ?`, id).
        Scan(&o.ID, &o.TableNo, &o.Status, &o.TotalPrice, &o.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Order{}, ErrNotFound
    }
    if err != nil {
        return model.Order{}, err
    }
    return o, nil
}

// UpdateOrderStatus stores a new status for one order.  Returns
// ErrNotFound when the id does not exist.  Callers are expected to have
// validated the transition; this method does not re-check it.
func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
    res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// SettleTableOrders settles every unsettled order on one table in a single
// statement.  Already-settled rows are untouched, which makes repeated
// calls harmless.
func (r *OrderRepo) SettleTableOrders(ctx context.Context, tableNo int) (int64, error) {
    res, err := r.db.ExecContext(ctx,
        `UPDATE orders SET status = ? WHERE table_no = ? AND status <> ?`,
        model.OrderSettled, tableNo, model.OrderSettled)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// SettleCompletedBefore settles completed orders created before the
// cutoff.  Orders in any other status are never eligible.
func (r *OrderRepo) SettleCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
    res, err := r.db.ExecContext(ctx,
        `UPDATE orders SET status = ? WHERE status = ? AND created_at < ?`,
        model.OrderSettled, model.OrderCompleted, cutoff)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// ActiveForFloor returns the lightweight rows the reconciler needs: every
// order whose status still occupies a table.  Items and totals are not
// loaded.
func (r *OrderRepo) ActiveForFloor(ctx context.Context) ([]model.Order, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, table_no, status FROM orders WHERE status IN (?, ?, ?, ?)`,
        model.OrderPending, model.OrderPreparing, model.OrderServed, model.OrderCompleted)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Order
    for rows.Next() {
        var o model.Order
        if err := rows.Scan(&o.ID, &o.TableNo, &o.Status); err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    return out, rows.Err()
}

// ListBoard returns the kitchen board: every unsettled order with its
// items, oldest first.  Item names are joined from menu_items so the
// board can render without a second round trip.
func (r *OrderRepo) ListBoard(ctx context.Context) ([]model.Order, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, table_no, status, total_price, created_at
           FROM orders WHERE status <> ? ORDER BY created_at ASC`,
        model.OrderSettled)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var orders []model.Order
    index := make(map[uint64]int)
    for rows.Next() {
        var o model.Order
        if err := rows.Scan(&o.ID, &o.TableNo, &o.Status, &o.TotalPrice, &o.CreatedAt); err != nil {
            return nil, err
        }
        index[o.ID] = len(orders)
        orders = append(orders, o)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(orders) == 0 {
        return []model.Order{}, nil
    }

    itemQuery := `SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price, mi.name
                    FROM order_items oi
                    JOIN menu_items mi ON mi.id = oi.menu_item_id
                   WHERE oi.order_id IN (`
    args := make([]interface{}, 0, len(orders))
    for i, o := range orders {
        if i > 0 {
            itemQuery += ","
        }
        itemQuery += "?"
        args = append(args, o.ID)
    }
    itemQuery += ") ORDER BY oi.id"

    itemRows, err := r.db.QueryContext(ctx, itemQuery, args...)
    if err != nil {
        return nil, err
    }
    defer itemRows.Close()
    for itemRows.Next() {
        var it model.OrderItem
        if err := itemRows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.Name); err != nil {
            return nil, err
        }
        if i, ok := index[it.OrderID]; ok {
            orders[i].Items = append(orders[i].Items, it)
        }
    }
    return orders, itemRows.Err()
}
