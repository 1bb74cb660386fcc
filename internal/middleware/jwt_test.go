package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuthStoresClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "Dean", "CS", "Engineering", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got, _ := c.Get("user_id").(uint64); got != 42 {
		t.Errorf("user_id = %v, want 42", c.Get("user_id"))
	}
	if got, _ := c.Get("role").(string); got != "Dean" {
		t.Errorf("role = %q, want Dean", got)
	}
	if got, _ := c.Get("department_id").(string); got != "CS" {
		t.Errorf("department_id = %q, want CS", got)
	}
	if got, _ := c.Get("school_id").(string); got != "Engineering" {
		t.Errorf("school_id = %q, want Engineering", got)
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "HOD", "", "", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}
