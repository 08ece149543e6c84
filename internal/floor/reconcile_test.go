package floor

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/emirsoy/lal-floor/internal/model"
)

func tableNo(n int) *int { return &n }

// confirmedAt builds a confirmed reservation for the given table booked at
// the given offset from now.
func confirmedAt(t int, now time.Time, offset time.Duration) model.Reservation {
    booked := now.Add(offset)
    return model.Reservation{
        Status:  model.ReservationConfirmed,
        TableNo: tableNo(t),
        ResDate: booked.Format("2006-01-02"),
        ResTime: booked.Format("15:04"),
    }
}

func TestReconcileEmptySnapshotIsAllAvailable(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)

    got := Reconcile(Snapshot{}, now, 40)

    require.Len(t, got, 40)
    for no := 1; no <= 40; no++ {
        assert.Equal(t, model.TableAvailable, got[no], "table %d", no)
    }
}

func TestReconcileOrderForcesOccupied(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        ActiveOrders: []model.Order{
            {ID: 1, TableNo: 5, Status: model.OrderPending},
            {ID: 2, TableNo: 6, Status: model.OrderPreparing},
            {ID: 3, TableNo: 7, Status: model.OrderServed},
            {ID: 4, TableNo: 8, Status: model.OrderCompleted},
        },
    }

    got := Reconcile(snap, now, 40)

    for _, no := range []int{5, 6, 7, 8} {
        assert.Equal(t, model.TableOccupied, got[no], "table %d", no)
    }
    assert.Equal(t, model.TableAvailable, got[9])
}

func TestReconcileOverrideBeatsReservation(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        Reservations: []model.Reservation{confirmedAt(3, now, 30 * time.Minute)},
        Overrides:    []model.TableOverride{{TableNo: 3, Status: model.TableOccupied}},
    }

    got := Reconcile(snap, now, 40)

    assert.Equal(t, model.TableOccupied, got[3])
}

func TestReconcileAvailableOverrideCannotClearLiveOrder(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        ActiveOrders: []model.Order{{ID: 1, TableNo: 12, Status: model.OrderServed}},
        Overrides:    []model.TableOverride{{TableNo: 12, Status: model.TableAvailable}},
    }

    got := Reconcile(snap, now, 40)

    assert.Equal(t, model.TableOccupied, got[12])
}

func TestReconcileReservedOverrideLosesToLiveOrder(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        ActiveOrders: []model.Order{{ID: 1, TableNo: 4, Status: model.OrderPending}},
        Overrides:    []model.TableOverride{{TableNo: 4, Status: model.TableReserved}},
    }

    got := Reconcile(snap, now, 40)

    // Orders are reapplied after overrides; a table with unsettled
    // orders can never read reserved.
    assert.Equal(t, model.TableOccupied, got[4])
}

func TestReconcileReservationWindows(t *testing.T) {
    // 18:15, reservation booked for 19:00: inside the pre-arrival buffer.
    now := time.Date(2025, 6, 14, 18, 15, 0, 0, time.UTC)
    snap := Snapshot{Reservations: []model.Reservation{confirmedAt(10, now, 45 * time.Minute)}}
    assert.Equal(t, model.TableReserved, Reconcile(snap, now, 40)[10])

    // 20:30 for the same 19:00 booking: inside the seating grace.
    now = time.Date(2025, 6, 14, 20, 30, 0, 0, time.UTC)
    snap = Snapshot{Reservations: []model.Reservation{confirmedAt(10, now, -90 * time.Minute)}}
    assert.Equal(t, model.TableOccupied, Reconcile(snap, now, 40)[10])

    // 22:00: the window has fully expired, nothing else holds the table.
    now = time.Date(2025, 6, 14, 22, 0, 0, 0, time.UTC)
    snap = Snapshot{Reservations: []model.Reservation{confirmedAt(10, now, -3 * time.Hour)}}
    assert.Equal(t, model.TableAvailable, Reconcile(snap, now, 40)[10])
}

func TestReconcileSeatedOccupiesRegardlessOfWindow(t *testing.T) {
    now := time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)
    snap := Snapshot{
        Reservations: []model.Reservation{{
            Status:  model.ReservationSeated,
            TableNo: tableNo(17),
            ResDate: "2025-06-14",
            ResTime: "18:00", // hours outside any window
        }},
    }

    got := Reconcile(snap, now, 40)

    assert.Equal(t, model.TableOccupied, got[17])
}

func TestReconcileSkipsBadRows(t *testing.T) {
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        Reservations: []model.Reservation{
            {Status: model.ReservationConfirmed, TableNo: tableNo(2), ResDate: "garbage", ResTime: "19:30"},
            {Status: model.ReservationConfirmed, TableNo: nil, ResDate: "2025-06-14", ResTime: "19:30"},
            {Status: model.ReservationConfirmed, TableNo: tableNo(99), ResDate: "2025-06-14", ResTime: "19:30"},
            confirmedAt(3, now, 30 * time.Minute),
        },
        ActiveOrders: []model.Order{{ID: 1, TableNo: 0, Status: model.OrderPending}},
        Overrides:    []model.TableOverride{{TableNo: -1, Status: model.TableOccupied}},
    }

    got := Reconcile(snap, now, 40)

    // The valid row still lands; every bad row is ignored individually.
    assert.Equal(t, model.TableReserved, got[3])
    assert.Equal(t, model.TableAvailable, got[2])
    require.Len(t, got, 40)
}

func TestReconcileWithoutOverrideRowStillOccupies(t *testing.T) {
    // The reconciled status never depends on an override row existing:
    // the order signal alone must occupy the table.
    now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
    snap := Snapshot{
        ActiveOrders: []model.Order{{ID: 1, TableNo: 22, Status: model.OrderPending}},
    }

    assert.Equal(t, model.TableOccupied, Reconcile(snap, now, 40)[22])
}

func TestReconcileDefaultsTableCount(t *testing.T) {
    got := Reconcile(Snapshot{}, time.Now(), 0)
    assert.Len(t, got, DefaultTableCount)
}

func TestOccupies(t *testing.T) {
    assert.True(t, Occupies(model.OrderPending))
    assert.True(t, Occupies(model.OrderPreparing))
    assert.True(t, Occupies(model.OrderServed))
    assert.True(t, Occupies(model.OrderCompleted))
    assert.False(t, Occupies(model.OrderSettled))
}
