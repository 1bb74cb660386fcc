package model

import "time"

// Allocation binds a fully approved event to a venue and a set of
// resource quantities for its scheduled window.  There is at most one
// Active allocation per event; completion flips it to Completed and
// it is never deleted.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – owning event.
//  VenueID   – claimed venue.
//  StartTime – copy of the event's schedule start.
//  EndTime   – copy of the event's schedule end.
//  Status    – Active or Completed.
//  Resources – per-resource allocated quantities.
//  CreatedAt – creation timestamp.
type Allocation struct {
	ID        uint64               // allocations.id
	EventID   uint64               // allocations.event_id
	VenueID   uint64               // allocations.venue_id
	StartTime time.Time            // allocations.start_time
	EndTime   time.Time            // allocations.end_time
	Status    string               // allocations.status
	Resources []ResourceAllocation // allocation_resources rows
	CreatedAt time.Time            // allocations.created_at
}

// ResourceAllocation records how much of one resource an allocation
// holds.  Completion adds AllocatedQuantity back to the pool, making
// decrement and increment exact inverses.
type ResourceAllocation struct {
	ID                uint64 // allocation_resources.id
	AllocationID      uint64 // allocation_resources.allocation_id
	ResourceID        uint64 // allocation_resources.resource_id
	AllocatedQuantity int    // allocation_resources.allocated_quantity
}

// Allocation states.
const (
	AllocationActive    = "Active"
	AllocationCompleted = "Completed"
)
