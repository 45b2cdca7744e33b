package slotRepo

import (
	"context"
	"errors"
	"time"

	"gymdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) List(ctx context.Context) ([]models.SlotRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slots := []models.SlotRecord{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateMany inserts slots, giving a fresh id to those without one.
func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.SlotRecord) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	ids := make([]string, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = models.FlexString(uuid.New().String())
		}
		if slot.Clients == nil {
			slot.Clients = []models.ClientRef{}
		}
		docs[i] = slot
		ids[i] = string(slot.ID)
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, err
	}
	return ids, nil
}

// Update applies the set fields of patch. A capacity change only goes through
// when it is not lower than the number of assigned clients.
func (r *mongoSlotRepo) Update(ctx context.Context, id string, patch models.SlotPatch) (*models.SlotRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := updateFilter(id, patch)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slot models.SlotRecord
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": patchFields(patch)}, opts).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) && patch.Capacity != nil {
		return nil, r.missingOr(ctx, id, ErrCapacityBelowAssigned)
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSlotRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// missingOr tells a filter miss caused by an absent slot apart from one caused by
// the guard condition.
func (r *mongoSlotRepo) missingOr(ctx context.Context, id string, guardErr error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return guardErr
}

func patchFields(patch models.SlotPatch) bson.M {
	set := bson.M{}
	if patch.StartTime != nil {
		set["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["endTime"] = *patch.EndTime
	}
	if patch.Capacity != nil {
		set["maxCount"] = *patch.Capacity
	}
	return set
}

func updateFilter(id string, patch models.SlotPatch) bson.M {
	filter := bson.M{"id": id}
	if patch.Capacity != nil {
		filter["$expr"] = bson.M{"$lte": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$clients", bson.A{}}}},
			*patch.Capacity,
		}}
	}
	return filter
}
