package middleware

// identity.go defines helpers shared across middleware files.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns the authenticated user's identifier from the context
// populated by JWTAuth, or "guest" for unauthenticated requests. Used
// to segment rate-limit buckets.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	}
	return "guest"
}
