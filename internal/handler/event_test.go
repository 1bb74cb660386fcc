package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func createContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	c.Set("role", "Coordinator")
	c.Set("department_id", "CS")
	c.Set("school_id", "Engineering")
	return c, rec
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	h := testEventHandler()
	c, rec := createContext(t, `{
		"title": "  ",
		"schedule_start": "2026-09-01T09:00:00Z",
		"schedule_end": "2026-09-01T12:00:00Z",
		"participant_count": 50
	}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank title, got %d", rec.Code)
	}
}

func TestCreateRejectsInvertedSchedule(t *testing.T) {
	h := testEventHandler()
	c, rec := createContext(t, `{
		"title": "Tech Fest",
		"schedule_start": "2026-09-01T12:00:00Z",
		"schedule_end": "2026-09-01T09:00:00Z",
		"participant_count": 50
	}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when end precedes start, got %d", rec.Code)
	}
}

func TestCreateRejectsEqualStartAndEnd(t *testing.T) {
	h := testEventHandler()
	c, rec := createContext(t, `{
		"title": "Tech Fest",
		"schedule_start": "2026-09-01T09:00:00Z",
		"schedule_end": "2026-09-01T09:00:00Z",
		"participant_count": 50
	}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero-length window, got %d", rec.Code)
	}
}

func TestCreateRejectsNonPositiveParticipants(t *testing.T) {
	h := testEventHandler()
	c, rec := createContext(t, `{
		"title": "Tech Fest",
		"schedule_start": "2026-09-01T09:00:00Z",
		"schedule_end": "2026-09-01T12:00:00Z",
		"participant_count": 0
	}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero participants, got %d", rec.Code)
	}
}

func TestCreateRejectsBadResourceRequest(t *testing.T) {
	h := testEventHandler()
	c, rec := createContext(t, `{
		"title": "Tech Fest",
		"schedule_start": "2026-09-01T09:00:00Z",
		"schedule_end": "2026-09-01T12:00:00Z",
		"participant_count": 50,
		"resources": [{"resource_id": 3, "quantity": 0}]
	}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero-quantity resource request, got %d", rec.Code)
	}
}
