package slotRepo

import (
	"context"
	"errors"

	"gymdesk/database"
	"gymdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotFull is returned when an assignment would take a slot past maxCount.
	ErrSlotFull = errors.New("slot is full")
	// ErrCapacityBelowAssigned is returned when maxCount would drop under the assigned count.
	ErrCapacityBelowAssigned = errors.New("capacity lower than assigned clients")
)

// SlotRepository stores the weekly slots of the development backend.
// Missing slots are reported as mongo.ErrNoDocuments.
type SlotRepository interface {
	List(ctx context.Context) ([]models.SlotRecord, error)
	CreateMany(ctx context.Context, slots []models.SlotRecord) ([]string, error)
	Update(ctx context.Context, id string, patch models.SlotPatch) (*models.SlotRecord, error)
	Delete(ctx context.Context, id string) error
	AssignClients(ctx context.Context, id string, clientIDs []string) error
	RemoveClient(ctx context.Context, id, clientID string) error
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a SlotRepository on the "schedules" collection.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{coll: database.DB().Collection("schedules")}
}
