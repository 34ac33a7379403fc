package faqsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/metrics"
	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const syncTimeout = 2 * time.Minute

// Skip reasons reported when a sync does nothing.
const (
	SkipUnchanged = "unchanged"
	SkipDebounced = "debounced"
)

// Report describes one Sync call.
type Report struct {
	Synced    bool      `json:"synced"`
	Skipped   string    `json:"skipped,omitempty"`
	Documents int       `json:"documents"`
	Hash      string    `json:"hash"`
	At        time.Time `json:"at"`
}

// Syncer copies the FAQ table into the search index.
type Syncer struct {
	store loaders.Store
	index search.Index
	state StateStore
	now   func() time.Time

	mu     sync.Mutex // one sync at a time
	loopMu sync.Mutex
	cancel context.CancelFunc
}

func NewSyncer(store loaders.Store, index search.Index, state StateStore) *Syncer {
	if state == nil {
		state = NewMemoryStateStore(DefaultMinInterval)
	}
	return &Syncer{store: store, index: index, state: state, now: time.Now}
}

// Sync rebuilds the index when the FAQ content changed and the debounce has
// passed. force skips both checks.
func (s *Syncer) Sync(ctx context.Context, force bool) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	report := Report{At: now}

	records, err := s.store.FetchAll(ctx, loaders.TableFAQ)
	if err != nil {
		metrics.FAQSyncs.WithLabelValues("error").Inc()
		return report, fmt.Errorf("fetch faq: %w", err)
	}

	doc, hash := BuildDocument(records)
	report.Hash = hash

	state, err := s.state.Load(ctx)
	if err != nil {
		// Without state the debounce is unknown, so sync anyway.
		utils.Zlog.Warn("FAQ sync state unavailable", zap.Error(err))
	}
	if !force {
		switch {
		case hash == state.LastHash:
			report.Skipped = SkipUnchanged
		case !state.IsDue(now):
			report.Skipped = SkipDebounced
		}
		if report.Skipped != "" {
			metrics.FAQSyncs.WithLabelValues("skipped").Inc()
			return report, nil
		}
	}

	docs, err := SplitDocument(ctx, doc)
	if err != nil {
		metrics.FAQSyncs.WithLabelValues("error").Inc()
		return report, err
	}
	if err := s.index.Replace(ctx, docs); err != nil {
		metrics.FAQSyncs.WithLabelValues("error").Inc()
		return report, fmt.Errorf("replace index: %w", err)
	}

	if err := s.state.Save(ctx, state.Synced(now, hash)); err != nil {
		utils.Zlog.Warn("Failed to save FAQ sync state", zap.Error(err))
	}

	metrics.FAQSyncs.WithLabelValues("ok").Inc()
	report.Synced = true
	report.Documents = len(docs)
	utils.Zlog.Info("FAQ index synced",
		zap.Int("documents", len(docs)),
		zap.String("hash", hash),
		zap.Bool("forced", force))
	return report, nil
}

// Start syncs immediately and then every interval until ctx is cancelled or
// Stop is called. Failures are logged and retried on the next tick. Calling
// Start again while running is a no-op.
func (s *Syncer) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.loopMu.Lock()
	if s.cancel != nil {
		s.loopMu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loopMu.Unlock()

	go func() {
		s.runOnce(runCtx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				s.runOnce(runCtx)
			}
		}
	}()
}

// Stop ends the background loop started by Start.
func (s *Syncer) Stop() {
	s.loopMu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loopMu.Unlock()
}

func (s *Syncer) runOnce(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()
	if _, err := s.Sync(syncCtx, false); err != nil && !errors.Is(err, context.Canceled) {
		utils.Zlog.Error("Periodic FAQ sync failed", zap.Error(err))
	}
}
