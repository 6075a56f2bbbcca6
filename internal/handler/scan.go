package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SAFE-MLC/safe-gate-ms/internal/metrics"
	"github.com/SAFE-MLC/safe-gate-ms/internal/service"
)

// ScanHandler exposes the scan validation endpoint. All decision logic
// lives in the gate service; the handler only frames requests and maps
// outcomes onto the wire contract.
type ScanHandler struct {
	Gate *service.GateService
}

// NewScanHandler constructs a ScanHandler. The gate service must be non-nil.
func NewScanHandler(gate *service.GateService) *ScanHandler {
	if gate == nil {
		panic("nil gate service passed to NewScanHandler")
	}
	return &ScanHandler{Gate: gate}
}

// ValidateScan handles POST /validate/scan. The body must carry both the
// scanned credential and the gate identifier; a request missing either is
// rejected with 400 before any decision logic runs. Business outcomes are
// always 200 with a decision body; only a dependency failure yields 500,
// and the response body then never carries internal failure details.
func (h *ScanHandler) ValidateScan(c echo.Context) error {
	var body struct {
		QR     string `json:"qr"`
		GateID string `json:"gateId"`
	}
	if err := c.Bind(&body); err != nil || body.QR == "" || body.GateID == "" {
		metrics.ScanDecisions.WithLabelValues("DENY", service.ReasonBadRequest).Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "qr and gateId are required"})
	}

	decision, err := h.Gate.ValidateScan(c.Request().Context(), body.QR, body.GateID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
	}
	if !decision.Allow {
		return c.JSON(http.StatusOK, echo.Map{
			"decision": "DENY",
			"reason":   decision.Reason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"decision":     "ALLOW",
		"ticketId":     decision.TicketID,
		"entitlements": decision.Entitlements,
	})
}
