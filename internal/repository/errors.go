// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a referenced order or reservation
// does not exist, while ErrConflict signals that an operation cannot
// proceed because the row is no longer in the state the caller assumed
// (e.g. assigning a table to a reservation that is not pending anymore).
package repository

import "errors"

// ErrNotFound is returned when a referenced order, reservation or menu
// item does not exist. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as seating a reservation that was never
// confirmed. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
