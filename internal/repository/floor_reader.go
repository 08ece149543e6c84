package repository

import (
    "context"
    "fmt"

    "github.com/emirsoy/lal-floor/internal/floor"
)

// FloorReader aggregates the three signal sources into one snapshot per
// reconciliation pass.  Any fetch error aborts the whole snapshot, so a
// pass is never computed from partially-applied inputs; the caller keeps
// its previous floor state instead.
type FloorReader struct {
    Orders       *OrderRepo
    Reservations *ReservationRepo
    Overrides    *OverrideRepo
}

// NewFloorReader constructs a FloorReader.  All repositories must be non-nil.
func NewFloorReader(orders *OrderRepo, reservations *ReservationRepo, overrides *OverrideRepo) *FloorReader {
    if orders == nil || reservations == nil || overrides == nil {
        panic("nil repository passed to NewFloorReader")
    }
    return &FloorReader{Orders: orders, Reservations: reservations, Overrides: overrides}
}

// Snapshot reads overrides, live orders and today's reservations.
func (f *FloorReader) Snapshot(ctx context.Context) (floor.Snapshot, error) {
    overrides, err := f.Overrides.List(ctx)
    if err != nil {
        return floor.Snapshot{}, fmt.Errorf("fetch overrides: %w", err)
    }
    orders, err := f.Orders.ActiveForFloor(ctx)
    if err != nil {
        return floor.Snapshot{}, fmt.Errorf("fetch active orders: %w", err)
    }
    reservations, err := f.Reservations.TodaysForFloor(ctx)
    if err != nil {
        return floor.Snapshot{}, fmt.Errorf("fetch reservations: %w", err)
    }
    return floor.Snapshot{
        Overrides:    overrides,
        ActiveOrders: orders,
        Reservations: reservations,
    }, nil
}
