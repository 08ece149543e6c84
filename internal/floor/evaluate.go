// Package floor computes the authoritative occupancy status of every table
// from three independently-mutated signal sources: manual staff overrides,
// live orders and time-scoped reservations.  Everything in this package is
// pure; it performs no I/O and can be recomputed identically by any client
// process from the same snapshot.
package floor

import (
    "fmt"
    "time"
)

// Window classifies where a reservation's booked time sits relative to now.
type Window int

const (
    // WindowDormant means the reservation has no effect on table state:
    // either too far in the future or expired past the grace period.
    WindowDormant Window = iota
    // WindowUpcoming means the party is due within the pre-arrival buffer;
    // the table should read reserved unless something stronger occupies it.
    WindowUpcoming
    // WindowActive means the booked time has passed but the party is
    // assumed to still be seated.
    WindowActive
)

// String returns a short name for logging.
func (w Window) String() string {
    switch w {
    case WindowUpcoming:
        return "upcoming"
    case WindowActive:
        return "active"
    default:
        return "dormant"
    }
}

const (
    // preArrivalBuffer is how long before the booked time a table is held.
    preArrivalBuffer = 60 * time.Minute
    // seatingGrace is the assumed maximum sitting duration after the booked
    // time.  Deliberately coarse: unusually long sittings are covered by the
    // order layer keeping the table occupied for as long as unsettled orders
    // exist, not by this clock.
    seatingGrace = 120 * time.Minute
)

// EvaluateWindow maps a reservation's booked time and the current time to a
// coarse temporal state.  With diff = bookedAt minus now:
//
//	0 < diff <= 60m returns WindowUpcoming
//	-120m < diff <= 0 returns WindowActive
//	anything else returns WindowDormant
func EvaluateWindow(bookedAt, now time.Time) Window {
    diff := bookedAt.Sub(now)
    switch {
    case diff > 0 && diff <= preArrivalBuffer:
        return WindowUpcoming
    case diff <= 0 && diff > -seatingGrace:
        return WindowActive
    default:
        return WindowDormant
    }
}

// BookedTime combines a reservation's "2006-01-02" date and "15:04" wall
// clock (seconds optional) into a single time in loc.  Reservation times are
// stored without a timezone and are always interpreted in local serving
// time, so callers pass the location they consider local.
func BookedTime(resDate, resTime string, loc *time.Location) (time.Time, error) {
    if loc == nil {
        loc = time.Local
    }
    day, err := time.ParseInLocation("2006-01-02", resDate, loc)
    if err != nil {
        return time.Time{}, fmt.Errorf("parse res_date %q: %w", resDate, err)
    }
    clock, err := time.Parse("15:04:05", resTime)
    if err != nil {
        clock, err = time.Parse("15:04", resTime)
        if err != nil {
            return time.Time{}, fmt.Errorf("parse res_time %q: %w", resTime, err)
        }
    }
    return time.Date(day.Year(), day.Month(), day.Day(),
        clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
