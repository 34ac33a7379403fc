package faqsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/types"
)

type faqStore struct {
	mu   sync.Mutex
	rows []types.Record
	err  error
}

func (f *faqStore) Fetch(ctx context.Context, table, _ string) ([]types.Record, error) {
	return f.FetchAll(ctx, table)
}

func (f *faqStore) FetchAll(_ context.Context, table string) ([]types.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if table != loaders.TableFAQ {
		return nil, nil
	}
	return f.rows, f.err
}

func (f *faqStore) Ping(context.Context) error { return nil }

type memIndex struct {
	mu       sync.Mutex
	docs     []search.Doc
	replaces int
	err      error
}

func (m *memIndex) Replace(_ context.Context, docs []search.Doc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.replaces++
	m.docs = docs
	return nil
}

func (m *memIndex) Search(context.Context, string, int) ([]search.Hit, error) {
	return nil, nil
}

func (m *memIndex) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}

func newTestSyncer(rows []types.Record) (*Syncer, *faqStore, *memIndex, *time.Time) {
	store := &faqStore{rows: rows}
	index := &memIndex{}
	s := NewSyncer(store, index, nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, store, index, &now
}

func TestSyncer_SyncAndDebounce(t *testing.T) {
	ctx := context.Background()
	s, store, index, now := newTestSyncer(faqRows())

	report, err := s.Sync(ctx, false)
	require.NoError(t, err)
	assert.True(t, report.Synced)
	assert.Equal(t, 2, report.Documents)
	assert.Len(t, index.docs, 2)

	report, err = s.Sync(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, SkipUnchanged, report.Skipped)

	store.rows = faqRows()[:1]
	*now = now.Add(10 * time.Second)
	report, err = s.Sync(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, SkipDebounced, report.Skipped)

	*now = now.Add(time.Minute)
	report, err = s.Sync(ctx, false)
	require.NoError(t, err)
	assert.True(t, report.Synced)
	assert.Len(t, index.docs, 1)
	assert.Equal(t, 2, index.replaces)
}

func TestSyncer_ForceIgnoresState(t *testing.T) {
	ctx := context.Background()
	s, _, index, _ := newTestSyncer(faqRows())

	_, err := s.Sync(ctx, false)
	require.NoError(t, err)
	report, err := s.Sync(ctx, true)
	require.NoError(t, err)
	assert.True(t, report.Synced)
	assert.Equal(t, 2, index.replaces)
}

func TestSyncer_Errors(t *testing.T) {
	ctx := context.Background()

	s, store, _, _ := newTestSyncer(nil)
	store.err = errors.New("airtable down")
	_, err := s.Sync(ctx, true)
	assert.ErrorContains(t, err, "airtable down")

	s, _, index, _ := newTestSyncer(faqRows())
	index.err = errors.New("es down")
	_, err = s.Sync(ctx, false)
	require.Error(t, err)

	// a failed upload must not mark the content as synced
	index.err = nil
	report, err := s.Sync(ctx, false)
	require.NoError(t, err)
	assert.True(t, report.Synced)
}

func TestSyncer_StartRunsImmediately(t *testing.T) {
	s, _, index, _ := newTestSyncer(faqRows())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx, time.Hour)
	s.Start(ctx, time.Hour)
	defer s.Stop()

	assert.Eventually(t, func() bool { return index.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}
