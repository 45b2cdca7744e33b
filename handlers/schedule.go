package handlers

import (
	"context"
	"net/http"

	"gymdesk/models"
	"gymdesk/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleController is what the admin API needs from the sync controller.
type ScheduleController interface {
	LoadSchedule(ctx context.Context) (models.WeeklySchedule, error)
	EditSlot(ctx context.Context, slotID string, patch models.SlotPatch) (models.Slot, error)
	DeleteSlot(ctx context.Context, slotID string) error
	AssignClient(ctx context.Context, slotID string, clientIDs []string) (*scheduling.AssignOutcome, error)
	UnassignClient(ctx context.Context, slotID, clientID string) (*scheduling.UnassignOutcome, error)
	SearchClients(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error)
	SlotClients(ctx context.Context, slotID string) ([]models.ClientRecord, error)
	Snapshot() models.WeeklySchedule
	Loaded() bool
	Status() map[scheduling.Action]scheduling.LaneStatus
	ResetSession()
}

type ScheduleHandler struct {
	Controller ScheduleController
}

func NewScheduleHandler(controller ScheduleController) *ScheduleHandler {
	return &ScheduleHandler{Controller: controller}
}

// GetScheduleHandler returns the local week and the lane states. loaded is
// false until the first successful load, while the week is still empty.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	week := h.Controller.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"days":     week.Days,
		"unplaced": week.Unplaced,
		"loaded":   h.Controller.Loaded(),
		"lanes":    h.Controller.Status(),
	})
}

func (h *ScheduleHandler) ReloadScheduleHandler(c *gin.Context) {
	week, err := h.Controller.LoadSchedule(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load schedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": week.Days, "unplaced": week.Unplaced})
}

func (h *ScheduleHandler) EditSlotHandler(c *gin.Context) {
	slotID := c.Param("id")

	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Controller.EditSlot(c.Request.Context(), slotID, patch)
	if err != nil {
		respondError(c, "Failed to edit slot", err)
		return
	}
	getLogger(c).Info("Slot edited", zap.String("slotID", slotID))
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

func (h *ScheduleHandler) DeleteSlotHandler(c *gin.Context) {
	slotID := c.Param("id")
	if err := h.Controller.DeleteSlot(c.Request.Context(), slotID); err != nil {
		respondError(c, "Failed to delete slot", err)
		return
	}
	getLogger(c).Info("Slot deleted", zap.String("slotID", slotID))
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

func (h *ScheduleHandler) GetSlotClientsHandler(c *gin.Context) {
	clients, err := h.Controller.SlotClients(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load slot clients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *ScheduleHandler) AssignClientsHandler(c *gin.Context) {
	var req models.AssignClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	out, err := h.Controller.AssignClient(c.Request.Context(), c.Param("id"), req.Clients)
	if err != nil {
		respondError(c, "Failed to assign clients", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ScheduleHandler) UnassignClientHandler(c *gin.Context) {
	out, err := h.Controller.UnassignClient(c.Request.Context(), c.Param("id"), c.Param("clientId"))
	if err != nil {
		respondError(c, "Failed to remove client from slot", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
