package clientRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gymdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByIDs returns the records for ids in one query. Unknown ids are skipped.
func (r *mongoClientRepo) GetByIDs(ctx context.Context, ids []string) ([]models.ClientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	clients := []models.ClientRecord{}
	if len(ids) == 0 {
		return clients, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// SearchAssignable pages through clients whose name, last name, email or CI
// contains text, case-insensitively. It also returns the total match count.
func (r *mongoClientRepo) SearchAssignable(ctx context.Context, text string, page, limit int) ([]models.ClientRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter := searchFilter(text)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assignable clients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "lastName", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	clients := []models.ClientRecord{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *mongoClientRepo) CreateMany(ctx context.Context, clients []models.ClientRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(clients))
	for i, c := range clients {
		docs[i] = c
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *mongoClientRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes on the clients collection.
func (r *mongoClientRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "lastName", Value: 1}},
			Options: options.Index().SetName("name_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}
	return nil
}

func searchFilter(text string) bson.M {
	text = strings.TrimSpace(text)
	if text == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"lastName": re},
		bson.M{"email": re},
		bson.M{"ci": re},
	}}
}
