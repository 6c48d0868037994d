// Package scheduler stores live feed entries into day snapshots, once or periodically
package scheduler

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/feed"
)

// Store keeps feed snapshots
type Store interface {
	FeedSnapshot(ctx context.Context, day string) (*domain.FeedSnapshot, error)
	SaveFeedSnapshot(ctx context.Context, snap *domain.FeedSnapshot) error
}

// Fetcher fetches live feeds
type Fetcher interface {
	FetchEach(ctx context.Context, sources []feed.Source) []feed.Result
}

// Config holds scheduler configuration
type Config struct {
	Sources  []feed.Source
	Interval time.Duration
	Location *time.Location
	Now      func() time.Time
}

// Scheduler snapshots live feeds into the store
type Scheduler struct {
	store    Store
	fetcher  Fetcher
	sources  []feed.Source
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	dbMutex sync.Mutex // serialize snapshot read-modify-write
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// New creates a new scheduler instance
func New(store Store, fetcher Fetcher, cfg Config) *Scheduler {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scheduler{
		store:    store,
		fetcher:  fetcher,
		sources:  cfg.Sources,
		interval: cfg.Interval,
		loc:      cfg.Location,
		now:      cfg.Now,
	}
}

// Start begins periodic snapshots, the first one runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.snapshotWorker(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v, %d feeds", s.interval, len(s.sources))
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// snapshotWorker periodically stores all feeds
func (s *Scheduler) snapshotWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	if err := s.SnapshotNow(ctx); err != nil {
		lgr.Printf("[ERROR] failed to snapshot feeds: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SnapshotNow(ctx); err != nil {
				lgr.Printf("[ERROR] failed to snapshot feeds: %v", err)
			}
		}
	}
}

// SnapshotNow fetches all feeds and stores their entries into today's feed snapshot.
// Successfully fetched feeds replace their entries, even with nothing, failed feeds keep theirs.
func (s *Scheduler) SnapshotNow(ctx context.Context) error {
	if len(s.sources) == 0 {
		return nil
	}
	day := s.now().In(s.loc).Format("2006-01-02")
	results := s.fetcher.FetchEach(ctx, s.sources)

	s.dbMutex.Lock()
	defer s.dbMutex.Unlock()

	snap, err := s.store.FeedSnapshot(ctx, day)
	if err != nil {
		return fmt.Errorf("load feed snapshot %s: %w", day, err)
	}
	if snap == nil {
		snap = &domain.FeedSnapshot{Date: day}
	}
	stored := mergeEntries(snap, results)
	if err := s.store.SaveFeedSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("save feed snapshot %s: %w", day, err)
	}
	lgr.Printf("[INFO] stored %d entries from %d feeds into %s", stored, len(s.sources), day)
	return nil
}

// mergeEntries puts successfully fetched feeds into the snapshot in source order and returns
// the number of entries stored
func mergeEntries(snap *domain.FeedSnapshot, results []feed.Result) int {
	if snap.IDToName == nil {
		snap.IDToName = map[string]string{}
	}

	index := make(map[string]int, len(snap.Feeds))
	for i, f := range snap.Feeds {
		index[f.ID] = i
	}
	stored := 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		items := make([]domain.FeedItem, 0, len(r.Entries))
		for _, e := range r.Entries {
			items = append(items, domain.FeedItem{
				Title:       e.Title,
				URL:         e.URL,
				FeedName:    e.FeedName,
				FeedID:      r.Source.ID,
				PublishedAt: e.PublishedAt,
				Summary:     e.Summary,
			})
		}
		snap.IDToName[r.Source.ID] = r.Source.Name
		stored += len(items)
		if i, ok := index[r.Source.ID]; ok {
			snap.Feeds[i].Items = items
			continue
		}
		index[r.Source.ID] = len(snap.Feeds)
		snap.Feeds = append(snap.Feeds, domain.FeedEntries{ID: r.Source.ID, Items: items})
	}
	return stored
}
