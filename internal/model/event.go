package model

import (
	"time"

	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// Event represents an event request as stored in the `events` table.
// Its status walks the approval chain defined in the workflow
// package.  Times are stored and compared in UTC.
//
// Fields:
//  ID                   – primary key identifier.
//  CoordinatorID        – user who requested the event.
//  Title                – human readable event title.
//  Description          – optional free text.
//  DepartmentID         – department the coordinator filed under.
//  SchoolID             – school the coordinator filed under.
//  ScheduleStart        – beginning of the requested window (UTC).
//  ScheduleEnd          – end of the requested window (UTC); must be
//                         after ScheduleStart.
//  ParticipantCount     – expected attendance, used for venue sizing.
//  VenueTypeRequired    – preferred venue type (informational).
//  Status               – current lifecycle state.
//  RejectionReason      – reviewer comments recorded on rejection.
//  ModificationComments – reviewer or allocator comments recorded on
//                         a bounce back to Pending.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Event struct {
	ID                   uint64          // events.id
	CoordinatorID        uint64          // events.coordinator_id
	Title                string          // events.title
	Description          string          // events.description
	DepartmentID         string          // events.department_id
	SchoolID             string          // events.school_id
	ScheduleStart        time.Time       // events.schedule_start
	ScheduleEnd          time.Time       // events.schedule_end
	ParticipantCount     int             // events.participant_count
	VenueTypeRequired    string          // events.venue_type_required
	Status               workflow.Status // events.status
	RejectionReason      string          // events.rejection_reason
	ModificationComments string          // events.modification_comments
	CreatedAt            time.Time       // events.created_at
	UpdatedAt            time.Time       // events.updated_at
}

// ResourceRequest links an event to a quantity of one resource type.
// Requests are written once at event creation and never mutated; the
// allocator reads them when the event clears the final review tier.
//
// Fields:
//  ID                – primary key identifier.
//  EventID           – owning event.
//  ResourceID        – requested resource type.
//  QuantityRequested – amount asked for from the pool.
//  CreatedAt         – creation timestamp.
type ResourceRequest struct {
	ID                uint64    // event_resource_requests.id
	EventID           uint64    // event_resource_requests.event_id
	ResourceID        uint64    // event_resource_requests.resource_id
	QuantityRequested int       // event_resource_requests.quantity_requested
	CreatedAt         time.Time // event_resource_requests.created_at
}
