package faqsync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultStateKey = "autoskola:faqsync:state"

// StateStore persists the sync State between runs or replicas.
type StateStore interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// MemoryStateStore keeps the state in process.
type MemoryStateStore struct {
	mu    sync.Mutex
	state State
}

func NewMemoryStateStore(minInterval time.Duration) *MemoryStateStore {
	return &MemoryStateStore{state: State{MinInterval: minInterval}}
}

func (m *MemoryStateStore) Load(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStateStore) Save(_ context.Context, s State) error {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	return nil
}

// RedisStateStore shares the state through a Redis hash so every replica
// sees the same debounce.
type RedisStateStore struct {
	client      *redis.Client
	key         string
	minInterval time.Duration
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return redis.NewClient(opts), nil
}

func NewRedisStateStore(client *redis.Client, key string, minInterval time.Duration) *RedisStateStore {
	if key == "" {
		key = defaultStateKey
	}
	return &RedisStateStore{client: client, key: key, minInterval: minInterval}
}

func (r *RedisStateStore) Load(ctx context.Context) (State, error) {
	s := State{MinInterval: r.minInterval}

	vals, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return s, nil
		}
		return s, fmt.Errorf("load sync state: %w", err)
	}
	s.LastHash = vals["hash"]
	if raw := vals["last_sync"]; raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return s, fmt.Errorf("load sync state: bad last_sync %q: %w", raw, err)
		}
		s.LastSync = time.UnixMilli(ms)
	}
	return s, nil
}

func (r *RedisStateStore) Save(ctx context.Context, s State) error {
	err := r.client.HSet(ctx, r.key,
		"hash", s.LastHash,
		"last_sync", strconv.FormatInt(s.LastSync.UnixMilli(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}
	return nil
}
