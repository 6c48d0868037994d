// Package aggregate folds day-partitioned snapshots over a date range.
//
// Titles merges repeated observations of the same (source, title) pair into one
// record, Feeds flattens matching feed items without merging. Both skip days whose
// snapshot can't be loaded and only fail (softly) on a bad request.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/match"
)

//go:generate moq -out mocks/title_source.go -pkg mocks -skip-ensure -fmt goimports . TitleSource
//go:generate moq -out mocks/feed_source.go -pkg mocks -skip-ensure -fmt goimports . FeedSource

// DateLayout is the day format used for range bounds and snapshot keys
const DateLayout = "2006-01-02"

// ErrInvalidRequest is returned, together with an empty result, for unparsable dates or regex
var ErrInvalidRequest = errors.New("invalid aggregation request")

// TitleSource provides ranked title snapshots, a nil snapshot means no data for the day
type TitleSource interface {
	TitleSnapshot(ctx context.Context, day string) (*domain.TitleSnapshot, error)
}

// FeedSource provides feed snapshots, a nil snapshot means no data for the day
type FeedSource interface {
	FeedSnapshot(ctx context.Context, day string) (*domain.FeedSnapshot, error)
}

// Config defines aggregator dependencies and options
type Config struct {
	Titles  TitleSource
	Feeds   FeedSource
	Workers int // concurrent snapshot loads, 0 or 1 loads days one by one
}

// Aggregator runs date-range aggregations. It holds no per-call state and is safe
// for concurrent use.
type Aggregator struct {
	titles  TitleSource
	feeds   FeedSource
	workers int
}

// Request defines a date range and optional filters.
// Sources nil means no restriction, an empty non-nil slice admits nothing.
type Request struct {
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Sources      []string `json:"sources,omitempty"`
	Query        string   `json:"query,omitempty"`
	IncludeRegex string   `json:"include_regex,omitempty"`
}

// New makes an aggregator
func New(cfg Config) *Aggregator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Aggregator{titles: cfg.Titles, feeds: cfg.Feeds, workers: cfg.Workers}
}

// Days returns all days from start to end inclusive. A reversed range gives no days.
func Days(start, end string) ([]string, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q: %v", ErrInvalidRequest, start, err)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q: %v", ErrInvalidRequest, end, err)
	}

	var days []string
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur.Format(DateLayout))
	}
	return days, nil
}

// prepare validates the request and returns days, query filter and source filter
func (r Request) prepare() (days []string, q *match.Query, allowed map[string]bool, err error) {
	if days, err = Days(r.Start, r.End); err != nil {
		return nil, nil, nil, err
	}
	if q, err = match.NewQuery(r.Query, r.IncludeRegex); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if r.Sources != nil {
		allowed = make(map[string]bool, len(r.Sources))
		for _, id := range r.Sources {
			allowed[id] = true
		}
	}
	return days, q, allowed, nil
}

// loadDays calls load for every day and passes the results to fold in day order.
// With more than one worker loads run concurrently, folding still happens in order.
// A failed load is logged and its day is skipped.
func loadDays[T any](ctx context.Context, workers int, kind string, days []string,
	load func(context.Context, string) (*T, error), fold func(*T)) {

	load = safeLoad(load)
	if workers <= 1 {
		for _, day := range days {
			snap, err := load(ctx, day)
			if err != nil {
				lgr.Printf("[WARN] can't load %s snapshot for %s: %v", kind, day, err)
				continue
			}
			if snap == nil {
				lgr.Printf("[DEBUG] no %s data for %s", kind, day)
				continue
			}
			fold(snap)
		}
		return
	}

	snaps := make([]*T, len(days))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, day := range days {
		g.Go(func() error {
			snap, err := load(ctx, day)
			if err != nil {
				lgr.Printf("[WARN] can't load %s snapshot for %s: %v", kind, day, err)
				return nil
			}
			snaps[i] = snap
			return nil
		})
	}
	_ = g.Wait() // loads never return errors, failures are per-day

	for i, snap := range snaps {
		if snap == nil {
			lgr.Printf("[DEBUG] no %s data for %s", kind, days[i])
			continue
		}
		fold(snap)
	}
}

// safeLoad turns a panic inside load into an error, so a malformed day can't abort the range
func safeLoad[T any](load func(context.Context, string) (*T, error)) func(context.Context, string) (*T, error) {
	return func(ctx context.Context, day string) (snap *T, err error) {
		defer func() {
			if r := recover(); r != nil {
				snap, err = nil, fmt.Errorf("panic loading %s: %v", day, r)
			}
		}()
		return load(ctx, day)
	}
}
