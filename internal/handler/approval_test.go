package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/repository"
	notifier "github.com/iliyamo/campus-event-allocation/internal/service"
)

// testEventHandler builds an EventHandler whose repositories are bound
// to no database.  Only request-validation paths may run against it;
// they all return before any query is issued.
func testEventHandler() *EventHandler {
	return NewEventHandler(
		repository.NewEventRepo(nil),
		repository.NewResourceRequestRepo(nil),
		repository.NewResourceRepo(nil),
		repository.NewVenueRepo(nil),
		repository.NewAllocationRepo(nil),
		repository.NewApprovalLogRepo(nil),
		notifier.Nop{},
	)
}

func decideContext(t *testing.T, eventID, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/decide")
	c.SetParamNames("id")
	c.SetParamValues(eventID)
	c.Set("user_id", uint64(2))
	c.Set("role", "HOD")
	return c, rec
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	h := testEventHandler()
	c, rec := decideContext(t, "1", `{"decision":"Maybe"}`)
	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown decision, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestDecideRequiresCommentsOnRejection(t *testing.T) {
	h := testEventHandler()
	c, rec := decideContext(t, "1", `{"decision":"Rejected","comments":"   "}`)
	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rejection without comments, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "comments") {
		t.Errorf("error should mention comments, got %s", rec.Body.String())
	}
}

func TestDecideRejectsBadEventID(t *testing.T) {
	h := testEventHandler()
	c, rec := decideContext(t, "not-a-number", `{"decision":"Approved"}`)
	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad event id, got %d", rec.Code)
	}
}

func TestDecideRejectsMissingIdentity(t *testing.T) {
	h := testEventHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"decision":"Approved"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Decide(c); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}
