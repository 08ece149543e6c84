package model

import "time"

// ReservationStatus enumerates the staff-driven states of a reservation.
type ReservationStatus string

const (
    ReservationPending   ReservationStatus = "pending"   // created by the guest form, no table yet
    ReservationConfirmed ReservationStatus = "confirmed" // staff assigned a table
    ReservationSeated    ReservationStatus = "seated"    // guest has arrived and sat down
)

// Reservation records a guest's booking for a date and wall-clock time.
// Times carry no timezone; they are interpreted in local serving time.
// A table, once assigned, only changes through explicit staff
// reassignment.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – guest name.
//  Email     – guest contact.
//  ResDate   – booking date as "2006-01-02".
//  ResTime   – booking wall-clock time as "15:04".
//  Note      – free-text note from the guest.
//  Status    – state of the reservation (pending, confirmed, seated).
//  TableNo   – assigned table, nil until staff confirms.
//  CreatedAt – creation timestamp.
type Reservation struct {
    ID        uint64            // reservations.id
    FullName  string            // reservations.full_name
    Email     string            // reservations.email
    ResDate   string            // reservations.res_date
    ResTime   string            // reservations.res_time
    Note      string            // reservations.note
    Status    ReservationStatus // reservations.status
    TableNo   *int              // reservations.table_no (nullable)
    CreatedAt time.Time         // reservations.created_at
}
