// Package workflow implements the approval state machine and the
// allocation conflict checker.  Everything in this package is pure:
// it operates on values loaded by the repository layer and never
// touches the database itself, which keeps the core rules testable
// without a live MySQL instance.
package workflow

// Status enumerates the lifecycle states of an event.  An event is
// created directly in HODReview, walks the review tiers forward on
// successive approvals, may be bounced sideways to Pending (a Modify
// decision or a failed allocation) and terminates in either Completed
// or Rejected.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusHODReview  Status = "HOD_Review"
	StatusDeanReview Status = "Dean_Review"
	StatusHeadReview Status = "Head_Review"
	StatusApproved   Status = "Approved"
	StatusRunning    Status = "Running"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

// IsTerminal reports whether no further decision may be taken on an
// event in this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// IsUnderReview reports whether the status sits at one of the three
// reviewer tiers.
func (s Status) IsUnderReview() bool {
	switch s {
	case StatusHODReview, StatusDeanReview, StatusHeadReview:
		return true
	}
	return false
}

// Role enumerates the actor roles known to the system.  Coordinator
// creates and completes events; HOD, Dean and Head form the three
// sequential reviewer tiers; Admin manages the venue and resource
// catalogs.
type Role string

const (
	RoleCoordinator Role = "Coordinator"
	RoleHOD         Role = "HOD"
	RoleDean        Role = "Dean"
	RoleHead        Role = "Head"
	RoleAdmin       Role = "Admin"
)

// ValidRole reports whether the given string is a known role name.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleCoordinator, RoleHOD, RoleDean, RoleHead, RoleAdmin:
		return true
	}
	return false
}

// Decision enumerates the outcomes a reviewer may record at a tier.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
	DecisionModify   Decision = "Modify"
)

// ParseDecision validates a raw decision string.  The boolean result
// is false for anything outside the closed set.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected, DecisionModify:
		return Decision(s), true
	}
	return "", false
}
