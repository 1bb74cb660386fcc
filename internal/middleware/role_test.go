package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

func invoke(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	mw := RequireRole(workflow.RoleHOD, workflow.RoleDean)
	rec := invoke(t, mw, "HOD")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for allowed role, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	mw := RequireRole(workflow.RoleAdmin)
	rec := invoke(t, mw, "Coordinator")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for disallowed role, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	mw := RequireRole(workflow.RoleHead)
	rec := invoke(t, mw, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when role missing, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsNonStringRole(t *testing.T) {
	mw := RequireRole(workflow.RoleHead)
	rec := invoke(t, mw, 42)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-string role, got %d", rec.Code)
	}
}
