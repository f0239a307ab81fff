package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a plain liveness probe for load balancers and monitors.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
