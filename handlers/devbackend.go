package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	clientRepo "gymdesk/database/repository/client"
	slotRepo "gymdesk/database/repository/slot"
	"gymdesk/models"
	"gymdesk/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BackendHandler serves the gym backend contract from MongoDB for local development.
type BackendHandler struct {
	Slots   slotRepo.SlotRepository
	Clients clientRepo.ClientRepository
}

func NewBackendHandler(slots slotRepo.SlotRepository, clients clientRepo.ClientRepository) *BackendHandler {
	return &BackendHandler{Slots: slots, Clients: clients}
}

func (h *BackendHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "gymdesk development backend"})
}

func (h *BackendHandler) ListSchedulesHandler(c *gin.Context) {
	slots, err := h.Slots.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "Failed to list schedules", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *BackendHandler) UpdateScheduleHandler(c *gin.Context) {
	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if patch.Empty() || (patch.Capacity != nil && *patch.Capacity <= 0) {
		utils.JSONError(c, http.StatusBadRequest, "Nothing to update", "set startTime, endTime or a positive maxCount")
		return
	}

	slot, err := h.Slots.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.storeError(c, "Failed to update schedule", err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *BackendHandler) DeleteScheduleHandler(c *gin.Context) {
	if err := h.Slots.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, "Failed to delete schedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

func (h *BackendHandler) AssignClientHandler(c *gin.Context) {
	var req models.AssignClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	slotID := c.Param("id")
	if err := h.Slots.AssignClients(c.Request.Context(), slotID, req.Clients); err != nil {
		h.storeError(c, "Failed to assign clients", err)
		return
	}
	getLogger(c).Info("Clients assigned", zap.String("slotID", slotID), zap.Strings("clientIDs", req.Clients))
	c.JSON(http.StatusOK, gin.H{"message": "Clients assigned"})
}

func (h *BackendHandler) DeleteClientHandler(c *gin.Context) {
	if err := h.Slots.RemoveClient(c.Request.Context(), c.Param("id"), c.Param("clientId")); err != nil {
		h.storeError(c, "Failed to remove client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client removed"})
}

func (h *BackendHandler) ListClientsHandler(c *gin.Context) {
	var req models.ClientListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	clients, err := h.Clients.GetByIDs(c.Request.Context(), req.ClientIDs)
	if err != nil {
		h.storeError(c, "Failed to load clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// AssignableClientsHandler answers the paginated search. The caller sends the
// same text as name, email and CI; the first non-empty one is used.
func (h *BackendHandler) AssignableClientsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	var text string
	for _, key := range []string{"name", "email", "CI"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			text = v
			break
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	clients, total, err := h.Clients.SearchAssignable(c.Request.Context(), text, page, limit)
	if err != nil {
		h.storeError(c, "Failed to search clients", err)
		return
	}
	c.JSON(http.StatusOK, models.AssignableClientsPage{Data: clients, Page: page, Limit: limit, Total: int(total)})
}

func (h *BackendHandler) storeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, "schedule not found", err.Error())
	case errors.Is(err, slotRepo.ErrSlotFull), errors.Is(err, slotRepo.ErrCapacityBelowAssigned):
		utils.JSONError(c, http.StatusConflict, err.Error(), message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}
