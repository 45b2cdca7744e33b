package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the admin API endpoint handlers.
type HandlerBundle struct {
	// Health
	HealthHandler gin.HandlerFunc

	// Schedule endpoints
	GetScheduleHandler    gin.HandlerFunc
	ReloadScheduleHandler gin.HandlerFunc
	EditSlotHandler       gin.HandlerFunc
	DeleteSlotHandler     gin.HandlerFunc
	GetSlotClientsHandler gin.HandlerFunc
	AssignClientsHandler  gin.HandlerFunc
	UnassignClientHandler gin.HandlerFunc

	// Client endpoints
	SearchAssignableHandler gin.HandlerFunc
	ClearClientCacheHandler gin.HandlerFunc
}

// NewHandlerBundle wires every admin endpoint to h.
func NewHandlerBundle(h *ScheduleHandler) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler:           HealthHandler,
		GetScheduleHandler:      h.GetScheduleHandler,
		ReloadScheduleHandler:   h.ReloadScheduleHandler,
		EditSlotHandler:         h.EditSlotHandler,
		DeleteSlotHandler:       h.DeleteSlotHandler,
		GetSlotClientsHandler:   h.GetSlotClientsHandler,
		AssignClientsHandler:    h.AssignClientsHandler,
		UnassignClientHandler:   h.UnassignClientHandler,
		SearchAssignableHandler: h.SearchAssignableHandler,
		ClearClientCacheHandler: h.ClearClientCacheHandler,
	}
}
