package approuters

import (
	"Userdir/internal/configuration"

	"github.com/gin-gonic/gin"
)

// MonitorRouters sets up monitoring routes
func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	// GET /monitor - directory statistics
	router.GET("/monitor", container.MonitorHandler.GetDirectoryStats)

	// GET /metrics - Prometheus exposition
	if container.Metrics != nil {
		router.GET("/metrics", gin.WrapH(container.Metrics.Handler()))
	}
}
