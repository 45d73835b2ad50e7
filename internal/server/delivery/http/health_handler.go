package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wealth-backoffice/internal/health"
	"wealth-backoffice/pkg/logger"
)

// HealthHandler exposes the service health snapshot and alert management.
type HealthHandler struct {
	monitor *health.Monitor
	logger  *logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(monitor *health.Monitor, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{monitor: monitor, logger: logger}
}

// RegisterRoutes registers health routes to the Echo group.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetHealth)
	g.POST("/alerts/:id/acknowledge", h.AcknowledgeAlert)
}

// GetHealth godoc
// @Summary Get service health
// @Description Current status of every monitored dependency plus active alerts. Always returns 200; degradation is reported in the body.
// @Tags health
// @Produce  json
// @Success 200 {object} health.Snapshot
// @Router /health [get]
func (h *HealthHandler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, h.monitor.Snapshot())
}

// AcknowledgeAlert godoc
// @Summary Acknowledge an alert
// @Description Mark an active alert as acknowledged so it stops being reported
// @Tags health
// @Produce  json
// @Param   id  path    string true    "Alert ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /health/alerts/{id}/acknowledge [post]
func (h *HealthHandler) AcknowledgeAlert(c echo.Context) error {
	if !h.monitor.Acknowledge(c.Param("id")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Alert not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
