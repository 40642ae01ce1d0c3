package scoreboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotPersistence stores the latest board snapshot.
type SnapshotPersistence interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
}

type RedisSnapshotStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisSnapshotStore keeps the snapshot under key. A zero ttl never expires.
func NewRedisSnapshotStore(rdb *redis.Client, key string, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb, key: key, ttl: ttl}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, b, s.ttl).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (Snapshot, bool, error) {
	val, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}
