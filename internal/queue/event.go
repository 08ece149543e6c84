// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into synchronization nudges.
package queue

// ChangesExchange is the fanout exchange every committed write announces
// itself on.  Each client process binds its own throwaway queue, so every
// loop hears every change.
const ChangesExchange = "floor.changes"

// TableChangedEvent is published after a committed write to one of the
// floor's signal sources.  It is a latency hint, not a data carrier:
// consumers re-fetch from the store rather than trusting the payload, and
// a lost event only delays them until their next poll tick.
type TableChangedEvent struct {
    Source     string `json:"source"`             // store table that changed: orders | reservations | table_overrides
    TableNo    int    `json:"table_no,omitempty"` // affected table when known
    Action     string `json:"action"`             // insert | status | assign | seat | settle | override
    OccurredAt string `json:"occurred_at"`        // RFC 3339 UTC
}
