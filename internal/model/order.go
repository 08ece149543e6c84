package model

import "time"

// OrderStatus enumerates the lifecycle states of an order.  The normal
// staff-driven path advances one step at a time; "settled" is terminal
// and is also reachable in bulk when a table is cleared for payment.
type OrderStatus string

const (
    OrderPending   OrderStatus = "pending"   // placed at checkout, not yet picked up by the kitchen
    OrderPreparing OrderStatus = "preparing" // kitchen is cooking
    OrderServed    OrderStatus = "served"    // delivered to the table
    OrderCompleted OrderStatus = "completed" // finished eating, charges not yet resolved
    OrderSettled   OrderStatus = "settled"   // terminal; removed from active consideration
)

// Order is a guest's checkout for one table.  Orders are never deleted;
// they only advance toward "settled".  TotalPrice is derived from the
// item unit prices captured at checkout time.
//
// Fields:
//  ID         – primary key identifier.
//  TableNo    – physical table the order belongs to (1..N).
//  Status     – current lifecycle state.
//  TotalPrice – sum of quantity times unit price over all items.
//  CreatedAt  – checkout timestamp.
//  Items      – line items, loaded where the caller needs them.
type Order struct {
    ID         uint64      // orders.id
    TableNo    int         // orders.table_no
    Status     OrderStatus // orders.status
    TotalPrice float64     // orders.total_price
    CreatedAt  time.Time   // orders.created_at
    Items      []OrderItem // orders -> order_items
}

// OrderItem is one line of an order.  UnitPrice is an immutable snapshot
// of the menu price at checkout, so later menu edits never change what a
// guest was charged.  Items are created atomically with their order and
// never modified afterwards.
type OrderItem struct {
    ID         uint64  // order_items.id
    OrderID    uint64  // order_items.order_id
    MenuItemID uint64  // order_items.menu_item_id
    Name       string  // joined from menu_items at read time (not a column)
    Quantity   uint32  // order_items.quantity
    UnitPrice  float64 // order_items.unit_price
}
