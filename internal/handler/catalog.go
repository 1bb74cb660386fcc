package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/model"
	"github.com/iliyamo/campus-event-allocation/internal/queue"
	"github.com/iliyamo/campus-event-allocation/internal/repository"
	notifier "github.com/iliyamo/campus-event-allocation/internal/service"
)

// CatalogHandler serves the venue and resource catalogs.  Listing is
// open to every authenticated role; creation is Admin-only at the
// route level.
type CatalogHandler struct {
	Venues    *repository.VenueRepo
	Resources *repository.ResourceRepo
	Notifier  notifier.Notifier
}

func NewCatalogHandler(v *repository.VenueRepo, r *repository.ResourceRepo, n notifier.Notifier) *CatalogHandler {
	if v == nil || r == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	if n == nil {
		n = notifier.Nop{}
	}
	return &CatalogHandler{Venues: v, Resources: r, Notifier: n}
}

// ----- DTOs -----

type createVenueReq struct {
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Type     string   `json:"type"`
	Features []string `json:"features"`
}

type venueJSON struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Capacity           int      `json:"capacity"`
	Type               string   `json:"type,omitempty"`
	AvailabilityStatus string   `json:"availability_status"`
	Features           []string `json:"features"`
}

func toVenueJSON(v *model.Venue) venueJSON {
	features := v.Features
	if features == nil {
		features = []string{}
	}
	return venueJSON{
		ID:                 v.ID,
		Name:               v.Name,
		Capacity:           v.Capacity,
		Type:               v.Type,
		AvailabilityStatus: v.AvailabilityStatus,
		Features:           features,
	}
}

type createResourceReq struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalQuantity int    `json:"total_quantity"`
	Unit          string `json:"unit"`
}

type resourceJSON struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	TotalQuantity     int    `json:"total_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Unit              string `json:"unit,omitempty"`
}

func toResourceJSON(r *model.Resource) resourceJSON {
	return resourceJSON{
		ID:                r.ID,
		Name:              r.Name,
		Category:          r.Category,
		TotalQuantity:     r.TotalQuantity,
		AvailableQuantity: r.AvailableQuantity,
		Unit:              r.Unit,
	}
}

// ListVenues returns every venue with its live availability status.
func (h *CatalogHandler) ListVenues(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Venues.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]venueJSON, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueJSON(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// CreateVenue registers a new venue, Available by default.
func (h *CatalogHandler) CreateVenue(c echo.Context) error {
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive capacity required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{
		Name:     req.Name,
		Capacity: req.Capacity,
		Type:     req.Type,
		Features: req.Features,
	}
	if err := h.Venues.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}

	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:      queue.VenueCreated,
		VenueName: v.Name,
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Venue created", "venue": toVenueJSON(v)})
}

// ListResources returns every resource pool with live availability.
func (h *CatalogHandler) ListResources(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resources, err := h.Resources.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]resourceJSON, 0, len(resources))
	for _, r := range resources {
		out = append(out, toResourceJSON(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"resources": out})
}

// CreateResource registers a new resource pool.  The available
// quantity starts equal to the total.
func (h *CatalogHandler) CreateResource(c echo.Context) error {
	var req createResourceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TotalQuantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive total_quantity required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r := &model.Resource{
		Name:          req.Name,
		Category:      req.Category,
		TotalQuantity: req.TotalQuantity,
		Unit:          req.Unit,
	}
	if err := h.Resources.Create(ctx, r); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resource failed"})
	}

	h.Notifier.Emit(c.Request().Context(), queue.Notification{
		Name:   queue.ResourceCreated,
		Detail: r.Name,
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Resource created", "resource": toResourceJSON(r)})
}
