package directory

import (
	"context"
	"encoding/json"
	"time"

	"gymdesk/models"

	"github.com/go-redis/redis/v8"
)

const clientRecordPrefix = "gymdesk:client:"

// RedisRecordStore keeps client records as JSON strings with a TTL.
type RedisRecordStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRecordStore(client *redis.Client, ttl time.Duration) *RedisRecordStore {
	return &RedisRecordStore{client: client, ttl: ttl}
}

func (s *RedisRecordStore) GetMany(ctx context.Context, ids []string) (map[string]models.ClientRecord, error) {
	out := make(map[string]models.ClientRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = clientRecordPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return out, err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec models.ClientRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		out[ids[i]] = rec
	}
	return out, nil
}

func (s *RedisRecordStore) PutMany(ctx context.Context, records []models.ClientRecord) error {
	if len(records) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		pipe.Set(ctx, clientRecordPrefix+string(rec.ID), b, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisRecordStore) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = clientRecordPrefix + id
	}
	return s.client.Del(ctx, keys...).Err()
}
