package workflow

import "errors"

// Typed errors returned by Next.  Handlers translate these into HTTP
// status codes (409 for a transition that is not legal right now, 403
// for a reviewer acting outside their tier).
var (
	// ErrTerminalState is returned when a decision targets an event
	// already in Completed or Rejected.
	ErrTerminalState = errors.New("event is in a terminal state")
	// ErrInvalidTransition is returned when the event's status has no
	// reviewer tier, e.g. deciding on a Pending or Approved event.
	ErrInvalidTransition = errors.New("decision not legal for current status")
	// ErrWrongTier is returned when the acting role does not match the
	// reviewer tier implied by the event's current status.
	ErrWrongTier = errors.New("role does not match current review tier")
	// ErrUnknownDecision is returned for a decision outside the closed set.
	ErrUnknownDecision = errors.New("unknown decision")
)

// statusFlow is the forward path of the approval chain.  Pending →
// HOD_Review happens implicitly at creation time and therefore does
// not appear here.
var statusFlow = map[Status]Status{
	StatusHODReview:  StatusDeanReview,
	StatusDeanReview: StatusHeadReview,
	StatusHeadReview: StatusApproved,
}

// reviewerByStatus maps each review tier to the single role allowed
// to decide there.
var reviewerByStatus = map[Status]Role{
	StatusHODReview:  RoleHOD,
	StatusDeanReview: RoleDean,
	StatusHeadReview: RoleHead,
}

// ReviewerFor returns the role whose turn it is to decide on an event
// in the given status.  The boolean result is false when the status
// is not a review tier.
func ReviewerFor(s Status) (Role, bool) {
	r, ok := reviewerByStatus[s]
	return r, ok
}

// Next computes the successor status for a decision taken at the
// current status by the given role.  The transition table is the
// single source of truth for legality: a terminal status admits no
// decision, a non-review status admits no decision, and each review
// tier accepts decisions only from its own reviewer role.
//
// Approved advances one tier (reaching StatusApproved out of
// Head_Review).  Rejected and Modify are accepted at any tier and
// move the event to Rejected and Pending respectively.
func Next(current Status, actor Role, decision Decision) (Status, error) {
	if current.IsTerminal() {
		return current, ErrTerminalState
	}
	reviewer, ok := reviewerByStatus[current]
	if !ok {
		return current, ErrInvalidTransition
	}
	if actor != reviewer {
		return current, ErrWrongTier
	}
	switch decision {
	case DecisionApproved:
		return statusFlow[current], nil
	case DecisionRejected:
		return StatusRejected, nil
	case DecisionModify:
		return StatusPending, nil
	}
	return current, ErrUnknownDecision
}
