package middleware

// identity.go holds helpers shared across middleware files.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id as a string for
// use in rate-limit keys, or "anon" when the request carries no
// identity (the limiter then falls back to keying by IP and route).
func currentUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(uint64); ok && v > 0 {
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
