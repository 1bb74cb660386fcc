package model

import "time"

// Resource represents a consumable resource pool in the `resources`
// table.  AvailableQuantity is mutated exclusively by the allocator
// through guarded UPDATE predicates so that 0 <= available <= total
// holds at all times, including under concurrent allocations.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – resource name (Projector, Chairs, ...).
//  Category          – one of Equipment, Food, Facility, ITC.
//  TotalQuantity     – pool size.
//  AvailableQuantity – amount currently unallocated.
//  Unit              – measurement unit (pieces, boxes, ...).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Resource struct {
	ID                uint64    // resources.id
	Name              string    // resources.name
	Category          string    // resources.category
	TotalQuantity     int       // resources.total_quantity
	AvailableQuantity int       // resources.available_quantity
	Unit              string    // resources.unit
	CreatedAt         time.Time // resources.created_at
	UpdatedAt         time.Time // resources.updated_at
}
