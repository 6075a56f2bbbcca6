package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers and gate devices. It
// deliberately checks no dependencies: a gate probing /health must learn
// whether the process is up, not whether Redis is.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
