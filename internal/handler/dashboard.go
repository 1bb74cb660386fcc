package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/repository"
)

// DashboardHandler serves the aggregate counters shown on the landing
// dashboard.  Event counts honor the caller's role visibility; venue
// and resource counts are global.
type DashboardHandler struct {
	Events    *repository.EventRepo
	Venues    *repository.VenueRepo
	Resources *repository.ResourceRepo
}

func NewDashboardHandler(e *repository.EventRepo, v *repository.VenueRepo, r *repository.ResourceRepo) *DashboardHandler {
	if e == nil || v == nil || r == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Events: e, Venues: v, Resources: r}
}

// Stats returns event counts by status plus venue and resource totals.
func (h *DashboardHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	departmentID, schoolID := getScope(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	counts, err := h.Events.CountByStatus(ctx, getRole(c), uid, departmentID, schoolID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	venueTotal, venueAvailable, err := h.Venues.Counts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resourceTotal, err := h.Resources.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"events": counts,
		"venues": echo.Map{
			"total":     venueTotal,
			"available": venueAvailable,
		},
		"resources": echo.Map{
			"total": resourceTotal,
		},
	})
}
