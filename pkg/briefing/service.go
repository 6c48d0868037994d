// Package briefing builds keyword briefings: it resolves the date range and the rule set of a
// request, loads aggregated titles along with stored and live feed entries, and groups
// everything by the first matching word group.
package briefing

//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/feed_fetcher.go -pkg mocks -skip-ensure -fmt goimports . FeedFetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/briefing/pkg/aggregate"
	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/feed"
	"github.com/umputun/briefing/pkg/rules"
)

// date range keywords
const (
	RangeDaily   = "daily"
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
)

// ErrPresetNotFound is returned when a request names a preset missing from the configured rules
var ErrPresetNotFound = errors.New("preset not found")

// Aggregator merges stored snapshots over a date range
type Aggregator interface {
	Titles(ctx context.Context, req aggregate.Request) (*aggregate.TitleResult, error)
	Feeds(ctx context.Context, req aggregate.Request) ([]domain.FlatFeedEntry, error)
}

// FeedFetcher fetches live feeds
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []feed.Source) []domain.FlatFeedEntry
}

// Config defines service parameters
type Config struct {
	Aggregator   Aggregator
	Fetcher      FeedFetcher
	Rules        *rules.RuleSet // configured rules, presets are looked up here
	Feeds        []feed.Source  // configured live feeds, selectable by id
	Location     *time.Location // time zone the daily snapshots are cut in
	DefaultRange string
	Now          func() time.Time
}

// Service builds briefings
type Service struct {
	agg          Aggregator
	fetcher      FeedFetcher
	rules        *rules.RuleSet
	feeds        map[string]feed.Source
	loc          *time.Location
	defaultRange string
	now          func() time.Time
}

// Request is a briefing request
type Request struct {
	Rules          []string `json:"rules"`
	Preset         string   `json:"preset,omitempty"`
	AllowedSources []string `json:"allowed_sources,omitempty"`
	CustomFeedURLs []string `json:"custom_rss_urls,omitempty"`
	Feeds          []string `json:"feeds,omitempty"`
	DateRange      string   `json:"date_range,omitempty"`
}

// Briefing is the grouped outcome of a request
type Briefing struct {
	Start     string       `json:"start"`
	End       string       `json:"end"`
	Stats     []TitleGroup `json:"stats"`
	FeedStats []FeedGroup  `json:"rss_stats"`
	Platforms []string     `json:"platforms"`
}

// New makes a briefing service
func New(cfg Config) *Service {
	res := &Service{
		agg:          cfg.Aggregator,
		fetcher:      cfg.Fetcher,
		rules:        cfg.Rules,
		feeds:        make(map[string]feed.Source, len(cfg.Feeds)),
		loc:          cfg.Location,
		defaultRange: cfg.DefaultRange,
		now:          cfg.Now,
	}
	if res.rules == nil {
		res.rules = &rules.RuleSet{}
	}
	if res.loc == nil {
		res.loc = time.Local
	}
	if res.defaultRange == "" {
		res.defaultRange = RangeDaily
	}
	if res.now == nil {
		res.now = time.Now
	}
	for _, f := range cfg.Feeds {
		res.feeds[f.ID] = f
	}
	return res
}

// Build makes a briefing for the request
func (s *Service) Build(ctx context.Context, req Request) (*Briefing, error) {
	rs, err := s.ruleSet(req)
	if err != nil {
		return nil, err
	}
	start, end := s.dateRange(req.DateRange)
	lgr.Printf("[DEBUG] briefing %s..%s, %d groups, preset %q", start, end, len(rs.Groups), req.Preset)

	aggReq := aggregate.Request{Start: start, End: end}
	if len(req.AllowedSources) > 0 {
		aggReq.Sources = req.AllowedSources
	}

	var titles *aggregate.TitleResult
	var stored, live []domain.FlatFeedEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.agg.Titles(gctx, aggReq)
		if err != nil {
			return fmt.Errorf("load titles: %w", err)
		}
		titles = res
		return nil
	})
	g.Go(func() error {
		res, err := s.agg.Feeds(gctx, aggReq)
		if err != nil {
			return fmt.Errorf("load feeds: %w", err)
		}
		stored = res
		return nil
	})
	if sources := s.liveSources(req); len(sources) > 0 && s.fetcher != nil {
		g.Go(func() error {
			live = s.fetcher.FetchAll(gctx, sources)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]domain.FlatFeedEntry, 0, len(stored)+len(live))
	entries = append(entries, stored...)
	entries = append(entries, live...)

	res := &Briefing{
		Start:     start,
		End:       end,
		Stats:     titleStats(titles, rs),
		FeedStats: feedStats(entries, rs),
		Platforms: platforms(titles),
	}
	lgr.Printf("[INFO] briefing %s..%s: %d title groups, %d feed groups", start, end, len(res.Stats), len(res.FeedStats))
	return res, nil
}

// Search returns aggregated titles for a raw aggregation request
func (s *Service) Search(ctx context.Context, req aggregate.Request) (*aggregate.TitleResult, error) {
	return s.agg.Titles(ctx, req)
}

// Entries returns stored feed entries for a raw aggregation request
func (s *Service) Entries(ctx context.Context, req aggregate.Request) ([]domain.FlatFeedEntry, error) {
	return s.agg.Feeds(ctx, req)
}

// Presets returns display names of the configured groups
func (s *Service) Presets() []string {
	res := make([]string, 0, len(s.rules.Groups))
	for _, g := range s.rules.Groups {
		res = append(res, g.DisplayName)
	}
	return res
}

// ruleSet picks the configured preset group or parses the request rules
func (s *Service) ruleSet(req Request) (*rules.RuleSet, error) {
	if req.Preset == "" {
		return rules.Parse(req.Rules), nil
	}
	g, ok := s.rules.Group(req.Preset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, req.Preset)
	}
	return &rules.RuleSet{Groups: []rules.WordGroup{g}, GlobalFilters: s.rules.GlobalFilters}, nil
}

// dateRange resolves a range keyword or a single date to start and end days.
// Unknown values fall back to today.
func (s *Service) dateRange(val string) (start, end string) {
	if val == "" {
		val = s.defaultRange
	}
	today := s.now().In(s.loc)
	switch val {
	case RangeDaily:
		return today.Format(aggregate.DateLayout), today.Format(aggregate.DateLayout)
	case RangeWeekly:
		return today.AddDate(0, 0, -6).Format(aggregate.DateLayout), today.Format(aggregate.DateLayout)
	case RangeMonthly:
		return today.AddDate(0, 0, -29).Format(aggregate.DateLayout), today.Format(aggregate.DateLayout)
	}
	if d, err := time.Parse(aggregate.DateLayout, val); err == nil {
		return d.Format(aggregate.DateLayout), d.Format(aggregate.DateLayout)
	}
	lgr.Printf("[WARN] invalid date range %q, fallback to %s", val, RangeDaily)
	return today.Format(aggregate.DateLayout), today.Format(aggregate.DateLayout)
}

// liveSources lists configured feeds selected by the request followed by its custom urls
func (s *Service) liveSources(req Request) []feed.Source {
	res := make([]feed.Source, 0, len(req.Feeds)+len(req.CustomFeedURLs))
	for _, id := range req.Feeds {
		src, ok := s.feeds[id]
		if !ok {
			lgr.Printf("[WARN] unknown feed %q requested", id)
			continue
		}
		res = append(res, src)
	}
	for i, u := range req.CustomFeedURLs {
		id := fmt.Sprintf("custom_%d", i)
		res = append(res, feed.Source{ID: id, Name: fmt.Sprintf("Custom Feed (%s)", id), URL: u})
	}
	return res
}
