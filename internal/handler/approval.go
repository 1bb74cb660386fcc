package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/queue"
	"github.com/iliyamo/campus-event-allocation/internal/repository"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

type decideReq struct {
	Decision string `json:"decision"` // Approved | Rejected | Modify
	Comments string `json:"comments"`
}

// Decide records a reviewer's decision on an event.  The audit entry,
// the status change and, when the final tier approves, the whole
// venue/resource allocation all commit in one transaction, so a crash
// or a concurrent decision can never leave the event half allocated.
//
// The event row is read FOR UPDATE first, which serializes concurrent
// reviewers; the status-guarded UPDATEs behind it turn any remaining
// race into ErrDecisionSuperseded instead of a double apply.
func (h *EventHandler) Decide(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role := getRole(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	decision, ok := workflow.ParseDecision(strings.TrimSpace(req.Decision))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "decision must be Approved, Rejected or Modify"})
	}
	comments := strings.TrimSpace(req.Comments)
	// A rejection without a reason is useless to the coordinator.
	if decision == workflow.DecisionRejected && comments == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comments required when rejecting"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	ev, err := h.Events.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	next, err := workflow.Next(ev.Status, role, decision)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrWrongTier):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your review tier"})
		case errors.Is(err, workflow.ErrTerminalState), errors.Is(err, workflow.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event is not awaiting this decision", "status": string(ev.Status)})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid decision"})
	}

	// Audit first: the trail must show the decision even when the
	// allocation below bounces the event back to Pending.
	logEntry := &model.ApprovalLog{
		EventID:    ev.ID,
		ApprovedBy: uid,
		Role:       role,
		Decision:   decision,
		Comments:   comments,
	}
	if err := h.Logs.CreateTx(ctx, tx, logEntry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write audit log failed"})
	}

	switch decision {
	case workflow.DecisionRejected:
		if err := h.Events.RejectTx(ctx, tx, ev.ID, ev.Status, comments); err != nil {
			return h.decideWriteError(c, err)
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		ev.Status = workflow.StatusRejected
		ev.RejectionReason = comments
		h.Notifier.Emit(c.Request().Context(), queue.Notification{
			Name:          queue.EventRejected,
			EventID:       ev.ID,
			Title:         ev.Title,
			Status:        string(ev.Status),
			CoordinatorID: ev.CoordinatorID,
			ActorID:       uid,
			ActorRole:     string(role),
			Detail:        comments,
		})
		return c.JSON(http.StatusOK, echo.Map{"message": "Event rejected", "event": toEventJSON(ev)})

	case workflow.DecisionModify:
		if err := h.Events.BounceTx(ctx, tx, ev.ID, ev.Status, comments); err != nil {
			return h.decideWriteError(c, err)
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		ev.Status = workflow.StatusPending
		ev.ModificationComments = comments
		h.Notifier.Emit(c.Request().Context(), queue.Notification{
			Name:          queue.EventModificationRequested,
			EventID:       ev.ID,
			Title:         ev.Title,
			Status:        string(ev.Status),
			CoordinatorID: ev.CoordinatorID,
			ActorID:       uid,
			ActorRole:     string(role),
			Detail:        comments,
		})
		return c.JSON(http.StatusOK, echo.Map{"message": "Modification requested", "event": toEventJSON(ev)})
	}

	// Approved.  Intermediate tiers just advance the chain; the final
	// tier triggers allocation inside this same transaction.
	if next != workflow.StatusApproved {
		if err := h.Events.TransitionTx(ctx, tx, ev.ID, ev.Status, next); err != nil {
			return h.decideWriteError(c, err)
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		ev.Status = next
		h.Notifier.Emit(c.Request().Context(), queue.Notification{
			Name:          queue.EventApproved,
			EventID:       ev.ID,
			Title:         ev.Title,
			Status:        string(ev.Status),
			CoordinatorID: ev.CoordinatorID,
			ActorID:       uid,
			ActorRole:     string(role),
		})
		return c.JSON(http.StatusOK, echo.Map{"message": "Event approved, advanced to next review tier", "event": toEventJSON(ev)})
	}

	return h.allocate(ctx, c, tx, ev, uid, role)
}

// allocate runs the allocation step after the final tier approves.
// It shares the decide transaction: a conflict or a missing venue
// bounces the event back to Pending, anything else claims a venue,
// decrements the resource pools and records the allocation.
func (h *EventHandler) allocate(ctx context.Context, c echo.Context, tx *sql.Tx, ev *model.Event, uid uint64, role workflow.Role) error {
	demands, err := h.Resources.DemandsForUpdateTx(ctx, tx, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load resource demands failed"})
	}
	windows, err := h.Allocations.ActiveWindowsTx(ctx, tx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load active allocations failed"})
	}

	if conflicts := workflow.FindConflicts(ev.ID, ev.ScheduleStart, ev.ScheduleEnd, windows, demands); len(conflicts) > 0 {
		detail := workflow.Describe(conflicts)
		if err := h.Events.BounceTx(ctx, tx, ev.ID, ev.Status, detail); err != nil {
			return h.decideWriteError(c, err)
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		ev.Status = workflow.StatusPending
		ev.ModificationComments = detail
		h.Notifier.Emit(c.Request().Context(), queue.Notification{
			Name:          queue.AllocationConflict,
			EventID:       ev.ID,
			Title:         ev.Title,
			Status:        string(ev.Status),
			CoordinatorID: ev.CoordinatorID,
			ActorID:       uid,
			ActorRole:     string(role),
			Detail:        detail,
		})
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "Allocation conflicts detected, event returned for modification",
			"event":     toEventJSON(ev),
			"conflicts": conflicts,
		})
	}

	venue, err := h.Venues.ClaimSuitableTx(ctx, tx, ev.ParticipantCount)
	if errors.Is(err, repository.ErrNoVenueAvailable) {
		const detail = "No suitable venue available"
		if err := h.Events.BounceTx(ctx, tx, ev.ID, ev.Status, detail); err != nil {
			return h.decideWriteError(c, err)
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		ev.Status = workflow.StatusPending
		ev.ModificationComments = detail
		h.Notifier.Emit(c.Request().Context(), queue.Notification{
			Name:          queue.AllocationFailed,
			EventID:       ev.ID,
			Title:         ev.Title,
			Status:        string(ev.Status),
			CoordinatorID: ev.CoordinatorID,
			ActorID:       uid,
			ActorRole:     string(role),
			Detail:        detail,
		})
		return c.JSON(http.StatusOK, echo.Map{
			"message": "No suitable venue available, event returned for modification",
			"event":   toEventJSON(ev),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "claim venue failed"})
	}

	if err := h.Events.TransitionTx(ctx, tx, ev.ID, ev.Status, workflow.StatusApproved); err != nil {
		return h.decideWriteError(c, err)
	}

	alloc := &model.Allocation{
		EventID:   ev.ID,
		VenueID:   venue.ID,
		StartTime: ev.ScheduleStart,
		EndTime:   ev.ScheduleEnd,
		Status:    model.AllocationActive,
	}
	for _, d := range demands {
		granted, err := h.Resources.AllocateTx(ctx, tx, d.ResourceID, d.Requested)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocate resources failed"})
		}
		if !granted {
			// Pool drained between the conflict check and here; the
			// event still gets its venue, just without this resource.
			continue
		}
		alloc.Resources = append(alloc.Resources, model.ResourceAllocation{
			ResourceID:        d.ResourceID,
			AllocatedQuantity: d.Requested,
		})
	}
	if err := h.Allocations.CreateTx(ctx, tx, alloc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record allocation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	ev.Status = workflow.StatusApproved
	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:          queue.EventApproved,
		EventID:       ev.ID,
		Title:         ev.Title,
		Status:        string(ev.Status),
		CoordinatorID: ev.CoordinatorID,
		ActorID:       uid,
		ActorRole:     string(role),
		VenueName:     venue.Name,
	})
	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:          queue.ResourcesAllocated,
		EventID:       ev.ID,
		Title:         ev.Title,
		Status:        string(ev.Status),
		CoordinatorID: ev.CoordinatorID,
		VenueName:     venue.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Event approved and allocated",
		"event":      toEventJSON(ev),
		"allocation": allocationJSON(alloc, venue.Name),
	})
}

// decideWriteError maps a guarded-update failure to a response.  A
// missed guard means another decision landed first.
func (h *EventHandler) decideWriteError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrDecisionSuperseded) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event was updated by another decision"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
}
