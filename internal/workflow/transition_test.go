package workflow

import (
	"errors"
	"testing"
)

func TestNextForwardChain(t *testing.T) {
	steps := []struct {
		from Status
		role Role
		want Status
	}{
		{StatusHODReview, RoleHOD, StatusDeanReview},
		{StatusDeanReview, RoleDean, StatusHeadReview},
		{StatusHeadReview, RoleHead, StatusApproved},
	}
	for _, s := range steps {
		got, err := Next(s.from, s.role, DecisionApproved)
		if err != nil {
			t.Fatalf("Next(%s, %s, Approved) returned error: %v", s.from, s.role, err)
		}
		if got != s.want {
			t.Fatalf("Next(%s, %s, Approved) = %s, want %s", s.from, s.role, got, s.want)
		}
	}
}

func TestNextRejectsWrongTier(t *testing.T) {
	tiers := map[Status]Role{
		StatusHODReview:  RoleHOD,
		StatusDeanReview: RoleDean,
		StatusHeadReview: RoleHead,
	}
	allRoles := []Role{RoleCoordinator, RoleHOD, RoleDean, RoleHead, RoleAdmin}
	for status, reviewer := range tiers {
		for _, role := range allRoles {
			if role == reviewer {
				continue
			}
			if _, err := Next(status, role, DecisionApproved); !errors.Is(err, ErrWrongTier) {
				t.Errorf("Next(%s, %s, Approved) error = %v, want ErrWrongTier", status, role, err)
			}
		}
	}
}

func TestNextTerminalStates(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusRejected} {
		for _, dec := range []Decision{DecisionApproved, DecisionRejected, DecisionModify} {
			if _, err := Next(status, RoleHead, dec); !errors.Is(err, ErrTerminalState) {
				t.Errorf("Next(%s, Head, %s) error = %v, want ErrTerminalState", status, dec, err)
			}
		}
	}
}

func TestNextNonReviewStatuses(t *testing.T) {
	// Pending, Approved and Running sit outside the review chain: no
	// decision is legal there, whoever asks.
	for _, status := range []Status{StatusPending, StatusApproved, StatusRunning} {
		if _, err := Next(status, RoleHOD, DecisionApproved); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Next(%s, HOD, Approved) error = %v, want ErrInvalidTransition", status, err)
		}
	}
}

func TestNextRejectAndModifyAtEveryTier(t *testing.T) {
	tiers := map[Status]Role{
		StatusHODReview:  RoleHOD,
		StatusDeanReview: RoleDean,
		StatusHeadReview: RoleHead,
	}
	for status, reviewer := range tiers {
		got, err := Next(status, reviewer, DecisionRejected)
		if err != nil || got != StatusRejected {
			t.Errorf("Next(%s, %s, Rejected) = (%s, %v), want (Rejected, nil)", status, reviewer, got, err)
		}
		got, err = Next(status, reviewer, DecisionModify)
		if err != nil || got != StatusPending {
			t.Errorf("Next(%s, %s, Modify) = (%s, %v), want (Pending, nil)", status, reviewer, got, err)
		}
	}
}

func TestNextUnknownDecision(t *testing.T) {
	if _, err := Next(StatusHODReview, RoleHOD, Decision("Maybe")); !errors.Is(err, ErrUnknownDecision) {
		t.Fatalf("error = %v, want ErrUnknownDecision", err)
	}
}

func TestReviewerFor(t *testing.T) {
	if r, ok := ReviewerFor(StatusDeanReview); !ok || r != RoleDean {
		t.Fatalf("ReviewerFor(Dean_Review) = (%s, %v), want (Dean, true)", r, ok)
	}
	if _, ok := ReviewerFor(StatusApproved); ok {
		t.Fatal("ReviewerFor(Approved) reported a reviewer tier")
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Fatal("Completed and Rejected must be terminal")
	}
	if StatusApproved.IsTerminal() {
		t.Fatal("Approved must not be terminal")
	}
	if !StatusHeadReview.IsUnderReview() || StatusPending.IsUnderReview() {
		t.Fatal("IsUnderReview misclassified a status")
	}
}

func TestParseDecision(t *testing.T) {
	if d, ok := ParseDecision("Modify"); !ok || d != DecisionModify {
		t.Fatalf("ParseDecision(Modify) = (%s, %v)", d, ok)
	}
	if _, ok := ParseDecision("approved"); ok {
		t.Fatal("ParseDecision must be case sensitive")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{"Coordinator", "HOD", "Dean", "Head", "Admin"} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%s) = false", r)
		}
	}
	if ValidRole("Owner") {
		t.Fatal("ValidRole(Owner) = true")
	}
}
