package redis

import (
	"context"
	"fmt"
	"time"

	"usage-telemetry-service/internal/stats/core/ports"

	"github.com/go-redis/redis/v8"
)

// SnapshotStore keeps the aggregator snapshot document under a single
// redis key, one key per aggregator name.
type SnapshotStore struct {
	client *redis.Client
	key    string
}

var _ ports.SnapshotStorePort = (*SnapshotStore)(nil)

// NewSnapshotStore connects to redis and verifies the connection.
func NewSnapshotStore(url, name string) (*SnapshotStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SnapshotStore{
		client: client,
		key:    fmt.Sprintf("telemetry:snapshot:%s", name),
	}, nil
}

func (s *SnapshotStore) Save(ctx context.Context, doc []byte) error {
	if err := s.client.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
