package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gymdesk/services/backend"
	"gymdesk/services/schedule"
	"gymdesk/services/scheduling"
	"gymdesk/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps a domain error to the HTTP status the admin API answers with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, schedule.ErrSlotNotFound):
		return http.StatusNotFound
	case errors.Is(err, schedule.ErrInvalidPatch), errors.Is(err, scheduling.ErrNoClients):
		return http.StatusBadRequest
	case errors.Is(err, scheduling.ErrStaleLocalState),
		errors.Is(err, scheduling.ErrSuperseded),
		errors.Is(err, schedule.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if _, ok := backend.IsBackendError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. Backend failures carry the
// upstream status in the details.
func respondError(c *gin.Context, message string, err error) {
	details := err.Error()
	if be, ok := backend.IsBackendError(err); ok && be.Status != 0 {
		details = fmt.Sprintf("backend answered %d: %s", be.Status, be.Message)
	}
	utils.JSONError(c, statusFor(err), message, details)
}
