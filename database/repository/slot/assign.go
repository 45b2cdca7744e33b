package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AssignClients adds clientIDs to the slot in one conditional update: the
// document only matches while the union of current and new clients still fits
// maxCount, so concurrent assignments cannot overfill it. Ids already present
// are not duplicated.
func (r *mongoSlotRepo) AssignClients(ctx context.Context, id string, clientIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"clients": bson.M{"$each": clientIDs}}}
	res, err := r.coll.UpdateOne(ctx, assignFilter(id, clientIDs), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missingOr(ctx, id, ErrSlotFull)
	}
	return nil
}

// RemoveClient pulls one client from one slot. Removing a client the slot does
// not hold is not an error.
func (r *mongoSlotRepo) RemoveClient(ctx context.Context, id, clientID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$pull": bson.M{"clients": clientID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func assignFilter(id string, clientIDs []string) bson.M {
	return bson.M{
		"id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$size": bson.M{"$setUnion": bson.A{
				bson.M{"$ifNull": bson.A{"$clients", bson.A{}}},
				clientIDs,
			}}},
			"$maxCount",
		}},
	}
}
