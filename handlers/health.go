package handlers

import (
	"net/http"

	"gymdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last health snapshot. It answers 200 even when
// the backend is down; the body says which dependency is unhealthy.
func HealthHandler(c *gin.Context) {
	health := utils.GetHealthStatus()
	status := "ok"
	if !health.Backend || (health.Redis != nil && !*health.Redis) {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "health": health})
}
