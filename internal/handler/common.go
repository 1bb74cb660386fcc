package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// getUserID extracts the user_id stored by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the caller's workflow role from context.
func getRole(c echo.Context) workflow.Role {
	if s, ok := c.Get("role").(string); ok {
		return workflow.Role(s)
	}
	return ""
}

// getScope returns the department and school the caller belongs to,
// used to filter event visibility for HOD and Dean reviewers.
func getScope(c echo.Context) (departmentID, schoolID string) {
	departmentID, _ = c.Get("department_id").(string)
	schoolID, _ = c.Get("school_id").(string)
	return departmentID, schoolID
}

// pathID parses the named path parameter as an id.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
