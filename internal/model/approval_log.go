package model

import (
	"time"

	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// ApprovalLog is one entry of the append-only audit trail in the
// `approval_logs` table.  Every decision taken at any tier writes
// exactly one entry, before the event record itself is mutated.
//
// Fields:
//  ID         – primary key identifier.
//  EventID    – event the decision concerns.
//  ApprovedBy – deciding user.
//  Role       – role the user acted under.
//  Decision   – Approved, Rejected or Modify.
//  Comments   – reviewer comments.
//  CreatedAt  – when the decision was recorded.
type ApprovalLog struct {
	ID         uint64            // approval_logs.id
	EventID    uint64            // approval_logs.event_id
	ApprovedBy uint64            // approval_logs.approved_by
	Role       workflow.Role     // approval_logs.role
	Decision   workflow.Decision // approval_logs.decision
	Comments   string            // approval_logs.comments
	CreatedAt  time.Time         // approval_logs.created_at
}
