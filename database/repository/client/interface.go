package clientRepo

import (
	"context"

	"gymdesk/database"
	"gymdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ClientRepository stores the client records of the development backend.
type ClientRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.ClientRecord, error)
	SearchAssignable(ctx context.Context, text string, page, limit int) ([]models.ClientRecord, int64, error)
	CreateMany(ctx context.Context, clients []models.ClientRecord) error
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a ClientRepository on the "clients" collection.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{coll: database.DB().Collection("clients")}
}
