package router // package router defines how HTTP routes are registered for the gate service

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAFE-MLC/safe-gate-ms/internal/handler"
)

// RegisterRoutes wires the gate's HTTP surface onto the provided Echo
// instance: the scan validation endpoint, the dependency-free health
// check, and Prometheus exposition.
func RegisterRoutes(e *echo.Echo, scan *handler.ScanHandler) {
	// Scan validation is the single mutating endpoint; gate devices POST
	// the raw credential and their gate identifier here.
	e.POST("/validate/scan", scan.ValidateScan)
	// Liveness probe with no dependency checks.
	e.GET("/health", handler.Health)
	// Operator-facing metrics (scan decisions, latency).
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
