package routes

import (
	"gymdesk/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBackendRoutes mounts the development backend, mirroring the paths
// the gym backend exposes.
func RegisterBackendRoutes(r *gin.Engine, h *handlers.BackendHandler) {
	r.GET("/", h.RootHandler)

	schedules := r.Group("/schedules")
	{
		schedules.GET("", h.ListSchedulesHandler)
		schedules.PATCH("/:id", h.UpdateScheduleHandler)
		schedules.DELETE("/:id", h.DeleteScheduleHandler)
		schedules.PATCH("/assignClient/:id", h.AssignClientHandler)
		schedules.DELETE("/deleteClient/:id/:clientId", h.DeleteClientHandler)
	}

	r.POST("/clients/list", h.ListClientsHandler)
	r.GET("/plans/assignableClients", h.AssignableClientsHandler)
}
