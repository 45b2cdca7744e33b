package scheduling

import (
	"context"

	"gymdesk/models"
)

// Backend is the part of the gym backend the controller drives.
type Backend interface {
	FetchSchedules(ctx context.Context) ([]models.SlotRecord, error)
	UpdateSlot(ctx context.Context, id string, patch models.SlotPatch) (*models.SlotRecord, error)
	DeleteSlot(ctx context.Context, id string) error
	AssignClients(ctx context.Context, slotID string, clientIDs []string) error
	UnassignClient(ctx context.Context, slotID, clientID string) error
}

// ClientCache is the client-record cache the controller keeps in step with the schedule.
type ClientCache interface {
	EnsurePresent(ctx context.Context, ids []string) (map[string]models.ClientRecord, error)
	Evict(ctx context.Context, id string)
	Clear()
}

// ClientSearcher finds assignable clients page by page.
type ClientSearcher interface {
	Search(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error)
}
