// Package queue defines the domain-event vocabulary published to the
// message broker and the payload carried with each event.
package queue

// Names of the domain events the core emits after a successful state
// transition.  Emission is fire-and-forget: a failed publish never
// rolls back the committed transition.
const (
	EventCreated               = "event_created"
	EventApproved              = "event_approved"
	EventRejected              = "event_rejected"
	EventModificationRequested = "event_modification_requested"
	AllocationConflict         = "allocation_conflict"
	ResourcesAllocated         = "resources_allocated"
	AllocationFailed           = "allocation_failed"
	EventCompleted             = "event_completed"
	VenueCreated               = "venue_created"
	ResourceCreated            = "resource_created"
)

// Notification is the payload published for every domain event.  It
// carries enough context for downstream consumers to log or notify
// without querying the primary database.  Fields that do not apply to
// a given event name are left empty.
type Notification struct {
	Name          string `json:"name"`
	EventID       uint64 `json:"event_id,omitempty"`
	Title         string `json:"title,omitempty"`
	Status        string `json:"status,omitempty"`
	CoordinatorID uint64 `json:"coordinator_id,omitempty"`
	ActorID       uint64 `json:"actor_id,omitempty"`
	ActorRole     string `json:"actor_role,omitempty"`
	VenueName     string `json:"venue_name,omitempty"`
	Detail        string `json:"detail,omitempty"` // conflict description, rejection reason, ...
	EmittedAt     string `json:"emitted_at"`
}
