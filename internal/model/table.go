package model

// TableStatus is the occupancy classification of a physical table.  It is
// the output vocabulary of the floor reconciler and the value vocabulary
// of manual overrides.
type TableStatus string

const (
    TableAvailable TableStatus = "available" // no signal claims the table
    TableOccupied  TableStatus = "occupied"  // a live order or an in-progress reservation
    TableReserved  TableStatus = "reserved"  // booked soon, party not yet seated
)

// TableOverride is a manually-set status for one table.  A row exists only
// for tables staff has explicitly touched; it is upserted by table number
// so there is never more than one per table.  Overrides are the highest
// precedence signal except that they can never free a table that still has
// unsettled orders.
type TableOverride struct {
    TableNo int         // table_overrides.table_no
    Status  TableStatus // table_overrides.status
}
