package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/queue"
	"github.com/iliyamo/campus-event-allocation/internal/repository"
	notifier "github.com/iliyamo/campus-event-allocation/internal/service"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// EventHandler bundles everything the event lifecycle endpoints need:
// creation, listing, detail, the decide flow and completion.
type EventHandler struct {
	Events      *repository.EventRepo
	Requests    *repository.ResourceRequestRepo
	Resources   *repository.ResourceRepo
	Venues      *repository.VenueRepo
	Allocations *repository.AllocationRepo
	Logs        *repository.ApprovalLogRepo
	Notifier    notifier.Notifier
}

func NewEventHandler(
	events *repository.EventRepo,
	requests *repository.ResourceRequestRepo,
	resources *repository.ResourceRepo,
	venues *repository.VenueRepo,
	allocations *repository.AllocationRepo,
	logs *repository.ApprovalLogRepo,
	n notifier.Notifier,
) *EventHandler {
	if events == nil || requests == nil || resources == nil || venues == nil || allocations == nil || logs == nil {
		panic("nil repository passed to NewEventHandler")
	}
	if n == nil {
		n = notifier.Nop{}
	}
	return &EventHandler{
		Events:      events,
		Requests:    requests,
		Resources:   resources,
		Venues:      venues,
		Allocations: allocations,
		Logs:        logs,
		Notifier:    n,
	}
}

// ----- DTOs -----

type createEventReq struct {
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	ScheduleStart     time.Time                 `json:"schedule_start"`
	ScheduleEnd       time.Time                 `json:"schedule_end"`
	ParticipantCount  int                       `json:"participant_count"`
	VenueTypeRequired string                    `json:"venue_type_required"`
	Resources         []repository.RequestInput `json:"resources"`
}

type eventJSON struct {
	ID                   uint64    `json:"id"`
	CoordinatorID        uint64    `json:"coordinator_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	DepartmentID         string    `json:"department_id,omitempty"`
	SchoolID             string    `json:"school_id,omitempty"`
	ScheduleStart        time.Time `json:"schedule_start"`
	ScheduleEnd          time.Time `json:"schedule_end"`
	ParticipantCount     int       `json:"participant_count"`
	VenueTypeRequired    string    `json:"venue_type_required,omitempty"`
	Status               string    `json:"status"`
	RejectionReason      string    `json:"rejection_reason,omitempty"`
	ModificationComments string    `json:"modification_comments,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toEventJSON(ev *model.Event) eventJSON {
	return eventJSON{
		ID:                   ev.ID,
		CoordinatorID:        ev.CoordinatorID,
		Title:                ev.Title,
		Description:          ev.Description,
		DepartmentID:         ev.DepartmentID,
		SchoolID:             ev.SchoolID,
		ScheduleStart:        ev.ScheduleStart,
		ScheduleEnd:          ev.ScheduleEnd,
		ParticipantCount:     ev.ParticipantCount,
		VenueTypeRequired:    ev.VenueTypeRequired,
		Status:               string(ev.Status),
		RejectionReason:      ev.RejectionReason,
		ModificationComments: ev.ModificationComments,
		CreatedAt:            ev.CreatedAt,
		UpdatedAt:            ev.UpdatedAt,
	}
}

// Create files a new event request.  The event enters the approval
// chain directly at HOD_Review together with its resource requests,
// both written in one transaction.
func (h *EventHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	departmentID, schoolID := getScope(c)

	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.ScheduleStart.IsZero() || req.ScheduleEnd.IsZero() || !req.ScheduleEnd.After(req.ScheduleStart) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_end must be after schedule_start"})
	}
	if req.ParticipantCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participant_count must be positive"})
	}
	for _, r := range req.Resources {
		if r.ResourceID == 0 || r.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource requests need resource_id and positive quantity"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev := &model.Event{
		CoordinatorID:     uid,
		Title:             req.Title,
		Description:       req.Description,
		DepartmentID:      departmentID,
		SchoolID:          schoolID,
		ScheduleStart:     req.ScheduleStart.UTC(),
		ScheduleEnd:       req.ScheduleEnd.UTC(),
		ParticipantCount:  req.ParticipantCount,
		VenueTypeRequired: req.VenueTypeRequired,
		Status:            workflow.StatusHODReview,
	}

	tx, err := h.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Events.CreateTx(ctx, tx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	if err := h.Requests.CreateBulkTx(ctx, tx, ev.ID, req.Resources); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resource requests failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:          queue.EventCreated,
		EventID:       ev.ID,
		Title:         ev.Title,
		Status:        string(ev.Status),
		CoordinatorID: ev.CoordinatorID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Event created and sent for HOD review",
		"event":   toEventJSON(ev),
	})
}

// List returns the events visible to the caller.  Visibility follows
// the role: coordinators see their own events, HODs their department,
// Deans their school, Head and Admin everything.
func (h *EventHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	departmentID, schoolID := getScope(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListForViewer(ctx, getRole(c), uid, departmentID, schoolID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]eventJSON, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventJSON(ev))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// Detail returns one event with its resource requests, allocation (if
// any) and the approval audit trail.
func (h *EventHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	requests, err := h.Requests.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	logs, err := h.Logs.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := echo.Map{
		"event":         toEventJSON(ev),
		"resources":     requests,
		"approval_logs": logs,
	}

	alloc, err := h.Allocations.GetByEvent(ctx, id)
	switch {
	case err == nil:
		venueName := ""
		if v, verr := h.Venues.GetByID(ctx, alloc.VenueID); verr == nil {
			venueName = v.Name
		}
		resp["allocation"] = allocationJSON(alloc, venueName)
	case errors.Is(err, repository.ErrAllocationNotFound):
		// no allocation yet; omit the key
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, resp)
}

type allocationResourceJSON struct {
	ResourceID        uint64 `json:"resource_id"`
	AllocatedQuantity int    `json:"allocated_quantity"`
}

type allocationViewJSON struct {
	ID        uint64                   `json:"id"`
	VenueID   uint64                   `json:"venue_id"`
	VenueName string                   `json:"venue_name,omitempty"`
	StartTime time.Time                `json:"start_time"`
	EndTime   time.Time                `json:"end_time"`
	Status    string                   `json:"status"`
	Resources []allocationResourceJSON `json:"resources"`
}

func allocationJSON(a *model.Allocation, venueName string) allocationViewJSON {
	out := allocationViewJSON{
		ID:        a.ID,
		VenueID:   a.VenueID,
		VenueName: venueName,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Resources: make([]allocationResourceJSON, 0, len(a.Resources)),
	}
	for _, r := range a.Resources {
		out.Resources = append(out.Resources, allocationResourceJSON{
			ResourceID:        r.ResourceID,
			AllocatedQuantity: r.AllocatedQuantity,
		})
	}
	return out
}
