// Package lifecycle enforces the order state machine: the single-step
// staff transitions, the explicit batch settlement used when clearing a
// table, and the retention-driven auto-settlement that bounds the active
// order set.  Persistence is behind a narrow store interface so the rules
// can be exercised without a database.
package lifecycle

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/emirsoy/lal-floor/internal/model"
)

// RetentionWindow is how long a completed order may stay unsettled before
// the next reconciliation pass settles it automatically.
const RetentionWindow = 24 * time.Hour

// ErrIllegalTransition is returned when a requested status change is not
// the single next step of the order's current status.  The stored state is
// left untouched.
var ErrIllegalTransition = errors.New("illegal transition")

// OrderStore is the slice of order persistence the manager needs.  The
// MySQL repository satisfies it; tests substitute a mock.
type OrderStore interface {
    GetOrder(ctx context.Context, id uint64) (model.Order, error)
    UpdateOrderStatus(ctx context.Context, id uint64, status model.OrderStatus) error
    // SettleTableOrders settles every unsettled order on a table and
    // reports how many rows changed.  Settling an already-settled order is
    // a no-op, so the call is idempotent.
    SettleTableOrders(ctx context.Context, tableNo int) (int64, error)
    // SettleCompletedBefore settles completed orders created before the
    // cutoff and reports how many rows changed.  Orders still in
    // pending/preparing/served are never touched.
    SettleCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Manager validates and executes order status changes.
type Manager struct {
    store OrderStore
}

// NewManager constructs a Manager.  The store must be non-nil.
func NewManager(store OrderStore) *Manager {
    if store == nil {
        panic("nil store passed to lifecycle.NewManager")
    }
    return &Manager{store: store}
}

// nextStatus is the linear path pending -> preparing -> served ->
// completed -> settled.  Settled is terminal and has no successor.
var nextStatus = map[model.OrderStatus]model.OrderStatus{
    model.OrderPending:   model.OrderPreparing,
    model.OrderPreparing: model.OrderServed,
    model.OrderServed:    model.OrderCompleted,
    model.OrderCompleted: model.OrderSettled,
}

// Advance moves an order exactly one step forward.  It returns the order
// with its new status on success.  A missing order surfaces the
// repository's not-found error; any request that is not the single next
// step (skips, repeats, moves out of a terminal state) fails with
// ErrIllegalTransition without mutating stored state.
func (m *Manager) Advance(ctx context.Context, id uint64, to model.OrderStatus) (model.Order, error) {
    o, err := m.store.GetOrder(ctx, id)
    if err != nil {
        return model.Order{}, err
    }
    want, ok := nextStatus[o.Status]
    if !ok || want != to {
        return model.Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, to)
    }
    if err := m.store.UpdateOrderStatus(ctx, id, to); err != nil {
        return model.Order{}, err
    }
    o.Status = to
    return o, nil
}

// SettleTable settles every unsettled order on the table in one batch.
// This is the explicit administrative shortcut used when clearing a table
// for payment; it is allowed to jump orders straight to settled from any
// non-terminal status.  Returns the number of orders settled; zero means
// the table was already clean.
func (m *Manager) SettleTable(ctx context.Context, tableNo int) (int64, error) {
    return m.store.SettleTableOrders(ctx, tableNo)
}

// AutoSettle settles completed orders older than RetentionWindow.  It runs
// at the start of every reconciliation pass and is idempotent: an order is
// only eligible while it still reads completed.
func (m *Manager) AutoSettle(ctx context.Context, now time.Time) (int64, error) {
    return m.store.SettleCompletedBefore(ctx, now.Add(-RetentionWindow))
}
