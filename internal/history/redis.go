package history

import (
	"context"
	"encoding/json"
	"fmt"

	"giveaway-picker/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultCap bounds how many records are kept per user.
const DefaultCap = 100

// RedisStore keeps each record as JSON and indexes it in a per-user sorted
// set scored by creation time.
type RedisStore struct {
	rdb *redis.Client
	cap int
}

func NewRedisStore(rdb *redis.Client, limit int) *RedisStore {
	if limit <= 0 {
		limit = DefaultCap
	}
	return &RedisStore{rdb: rdb, cap: limit}
}

func recordKey(id string) string {
	return fmt.Sprintf("giveaway:record:%s", id)
}

func userZKey(userID string) string {
	return fmt.Sprintf("giveaway:user:%s", userID)
}

// Save stores the record and trims the user's index to the newest cap entries.
func (s *RedisStore) Save(ctx context.Context, rec model.GiveawayRecord) (model.GiveawayRecord, error) {
	rec = prepare(rec, uuid.NewString())
	b, err := json.Marshal(rec)
	if err != nil {
		return model.GiveawayRecord{}, err
	}
	zkey := userZKey(rec.UserID)
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, recordKey(rec.ID), b, 0)
		p.ZAdd(ctx, zkey, redis.Z{Score: float64(rec.CreatedAt.UnixMilli()), Member: rec.ID})
		return nil
	})
	if err != nil {
		return model.GiveawayRecord{}, fmt.Errorf("save giveaway %s: %w", rec.ID, err)
	}
	s.trim(ctx, zkey)
	return rec, nil
}

// trim drops records beyond the cap. Failures only leave extra records behind.
func (s *RedisStore) trim(ctx context.Context, zkey string) {
	stale, err := s.rdb.ZRevRange(ctx, zkey, int64(s.cap), -1).Result()
	if err != nil || len(stale) == 0 {
		return
	}
	keys := make([]string, len(stale))
	members := make([]any, len(stale))
	for i, id := range stale {
		keys[i] = recordKey(id)
		members[i] = id
	}
	s.rdb.Del(ctx, keys...)
	s.rdb.ZRem(ctx, zkey, members...)
}

// List returns the user's records, newest first.
func (s *RedisStore) List(ctx context.Context, userID string) ([]model.GiveawayRecord, error) {
	ids, err := s.rdb.ZRevRange(ctx, userZKey(userID), 0, int64(s.cap-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.GiveawayRecord, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, recordKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var rec model.GiveawayRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("decode giveaway %s: %w", id, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
