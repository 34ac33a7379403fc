package loaders

import (
	"context"
	"errors"
	"sync"

	"github.com/Conversly/autoskola-bot/internal/types"
)

type fakeStore struct {
	mu      sync.Mutex
	tables  map[string][]types.Record
	fail    map[string]bool
	fetched []string
}

func (f *fakeStore) Fetch(_ context.Context, table, slug string) ([]types.Record, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, table)
	f.mu.Unlock()
	if f.fail[table] {
		return nil, errors.New("upstream unavailable")
	}
	return FilterBySlug(f.tables[table], slug), nil
}

func (f *fakeStore) FetchAll(_ context.Context, table string) ([]types.Record, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, table)
	f.mu.Unlock()
	if f.fail[table] {
		return nil, errors.New("upstream unavailable")
	}
	return f.tables[table], nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }
