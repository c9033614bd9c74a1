package handler

import (
	"Userdir/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MonitorHandler handles monitoring API endpoints
type MonitorHandler interface {
	GetDirectoryStats(c *gin.Context)
}

type monitorHandler struct {
	service service.UserService
}

// NewMonitorHandler creates a new monitor handler
func NewMonitorHandler(service service.UserService) MonitorHandler {
	return &monitorHandler{
		service: service,
	}
}

// GetDirectoryStats returns current user directory statistics
// @Summary Get user directory statistics
// @Description Returns total, active and inactive user counts
// @Tags Monitor
// @Produce json
// @Success 200 {object} model.MonitorResponse
// @Failure 503 {object} model.MonitorResponse
// @Router /monitor [get]
func (h *monitorHandler) GetDirectoryStats(c *gin.Context) {
	stats := h.service.GetStats(c.Request.Context())

	code := http.StatusOK
	if stats.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"HttpStatusCode": code,
		"ResponseBody":   stats,
		"IsSuccess":      code == http.StatusOK,
		"Message":        "Directory statistics retrieved",
	})
}
