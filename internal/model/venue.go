package model

import "time"

// Venue represents a bookable venue in the `venues` table.  Only the
// allocator flips AvailabilityStatus: to Occupied when an event claims
// the venue and back to Available when the event completes.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – human readable venue name.
//  Capacity           – maximum number of participants.
//  Type               – venue category (Auditorium, Conference Hall, ...).
//  AvailabilityStatus – Available or Occupied.
//  Features           – free-form feature labels (projector, AC, ...).
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Venue struct {
	ID                 uint64    // venues.id
	Name               string    // venues.name
	Capacity           int       // venues.capacity
	Type               string    // venues.type
	AvailabilityStatus string    // venues.availability_status
	Features           []string  // venues.features (JSON column)
	CreatedAt          time.Time // venues.created_at
	UpdatedAt          time.Time // venues.updated_at
}

// Venue availability states.
const (
	VenueAvailable = "Available"
	VenueOccupied  = "Occupied"
)
