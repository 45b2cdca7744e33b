package handlers

import (
	"net/http"

	"gymdesk/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// SearchAssignableHandler pages through clients that can be assigned to a slot.
func (h *ScheduleHandler) SearchAssignableHandler(c *gin.Context) {
	var q models.AssignableClientsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
		return
	}
	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}

	page, err := h.Controller.SearchClients(c.Request.Context(), q)
	if err != nil {
		respondError(c, "Failed to search clients", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ClearClientCacheHandler drops every cached client record.
func (h *ScheduleHandler) ClearClientCacheHandler(c *gin.Context) {
	h.Controller.ResetSession()
	c.JSON(http.StatusOK, gin.H{"message": "Client cache cleared"})
}
