package floor

import (
    "time"

    "github.com/emirsoy/lal-floor/internal/model"
)

// DefaultTableCount is the number of tables in the reference deployment.
const DefaultTableCount = 40

// Snapshot is one point-in-time read of the three signal sources.  The
// reservation slice is expected to hold today's confirmed and seated
// reservations that have a table assigned; rows outside today simply
// evaluate as dormant.
type Snapshot struct {
    Overrides    []model.TableOverride
    ActiveOrders []model.Order
    Reservations []model.Reservation
}

// Occupies reports whether an order in the given status keeps its table
// occupied.  Completed-but-unsettled orders still hold the table; only
// settlement frees it.
func Occupies(s model.OrderStatus) bool {
    switch s {
    case model.OrderPending, model.OrderPreparing, model.OrderServed, model.OrderCompleted:
        return true
    }
    return false
}

// Reconcile merges the snapshot into one status per table.  The result is a
// total mapping over 1..tableCount; tables with no signal remain available.
//
// Layers, low to high precedence:
//
//  1. every table starts available
//  2. reservations: seated occupies unconditionally; confirmed reservations
//     go through EvaluateWindow (active occupies, upcoming reserves
//     unless already occupied)
//  3. live orders force occupied
//  4. overrides with a non-available value force that value
//
// The order layer is applied again after overrides: a table with unsettled
// orders can never read available or reserved, whatever staff set by hand.
// Reservations with an unparseable time are skipped row by row; one bad
// row never poisons a pass.
func Reconcile(snap Snapshot, now time.Time, tableCount int) map[int]model.TableStatus {
    if tableCount <= 0 {
        tableCount = DefaultTableCount
    }
    statuses := make(map[int]model.TableStatus, tableCount)
    for t := 1; t <= tableCount; t++ {
        statuses[t] = model.TableAvailable
    }

    loc := now.Location()
    for _, r := range snap.Reservations {
        if r.TableNo == nil {
            continue
        }
        t := *r.TableNo
        if _, ok := statuses[t]; !ok {
            continue // outside the fixed table range
        }
        if r.Status == model.ReservationSeated {
            statuses[t] = model.TableOccupied
            continue
        }
        if r.Status != model.ReservationConfirmed {
            continue
        }
        bookedAt, err := BookedTime(r.ResDate, r.ResTime, loc)
        if err != nil {
            continue
        }
        switch EvaluateWindow(bookedAt, now) {
        case WindowActive:
            statuses[t] = model.TableOccupied
        case WindowUpcoming:
            if statuses[t] != model.TableOccupied {
                statuses[t] = model.TableReserved
            }
        }
    }

    applyOrders := func() {
        for _, o := range snap.ActiveOrders {
            if !Occupies(o.Status) {
                continue
            }
            if _, ok := statuses[o.TableNo]; ok {
                statuses[o.TableNo] = model.TableOccupied
            }
        }
    }
    applyOrders()

    for _, ov := range snap.Overrides {
        if ov.Status == model.TableAvailable {
            // an available override cannot clear inferred signals
            continue
        }
        if _, ok := statuses[ov.TableNo]; ok {
            statuses[ov.TableNo] = ov.Status
        }
    }
    applyOrders()

    return statuses
}
