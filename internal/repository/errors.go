// Package repository defines sentinel errors shared across the
// repositories.  Handlers use errors.Is on these values to choose the
// HTTP response: ErrForbidden maps to 403, the *NotFound values to
// 404, ErrDecisionSuperseded to 409.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// record they do not own, such as completing another coordinator's event.
var ErrForbidden = errors.New("forbidden")

// ErrEventNotFound is returned when an event lookup fails.
var ErrEventNotFound = errors.New("event not found")

// ErrVenueNotFound is returned when a venue lookup fails.
var ErrVenueNotFound = errors.New("venue not found")

// ErrResourceNotFound is returned when a resource lookup fails.
var ErrResourceNotFound = errors.New("resource not found")

// ErrAllocationNotFound is returned when an event has no allocation.
var ErrAllocationNotFound = errors.New("allocation not found")

// ErrNoVenueAvailable is returned by the venue claim when no Available
// venue with sufficient capacity exists.  It is a normal allocation
// outcome, not a hard failure: the event is bounced back to Pending.
var ErrNoVenueAvailable = errors.New("no suitable venue available")

// ErrDecisionSuperseded is returned when a status-guarded event update
// affects no rows because a concurrent decision advanced the event
// first.  The losing caller's decision must not be applied.
var ErrDecisionSuperseded = errors.New("event status changed concurrently")

// ErrEmailExists is returned when registering a duplicate email.
var ErrEmailExists = errors.New("email already exists")
