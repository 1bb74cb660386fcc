package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/queue"
	"github.com/iliyamo/campus-event-allocation/internal/repository"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// Complete marks an event finished and returns everything it held:
// the venue flips back to Available, every allocated resource quantity
// is added back to its pool and the allocation itself becomes
// Completed.  Only the owning coordinator may complete an event, and
// the status guard makes a second completion a no-op conflict instead
// of a double release.
func (h *EventHandler) Complete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
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
	if ev.CoordinatorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owning coordinator may complete an event"})
	}

	if err := h.Events.CompleteTx(ctx, tx, ev.ID); err != nil {
		if errors.Is(err, repository.ErrDecisionSuperseded) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "event cannot be completed from its current status", "status": string(ev.Status)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}

	alloc, err := h.Allocations.GetActiveByEventForUpdateTx(ctx, tx, ev.ID)
	switch {
	case err == nil:
		if err := h.Venues.ReleaseTx(ctx, tx, alloc.VenueID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release venue failed"})
		}
		for _, r := range alloc.Resources {
			if err := h.Resources.ReleaseTx(ctx, tx, r.ResourceID, r.AllocatedQuantity); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release resources failed"})
			}
		}
		if err := h.Allocations.CompleteTx(ctx, tx, alloc.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update allocation failed"})
		}
	case errors.Is(err, repository.ErrAllocationNotFound):
		// Approved but never allocated; nothing to release.
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	ev.Status = workflow.StatusCompleted
	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:          queue.EventCompleted,
		EventID:       ev.ID,
		Title:         ev.Title,
		Status:        string(ev.Status),
		CoordinatorID: ev.CoordinatorID,
		ActorID:       uid,
		ActorRole:     string(getRole(c)),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Event completed, venue and resources released", "event": toEventJSON(ev)})
}
