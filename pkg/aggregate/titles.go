package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/match"
)

// TitleResult is the outcome of a title aggregation. Maps are keyed by source id, then title.
type TitleResult struct {
	Results  map[string]map[string]domain.TitleSummary     `json:"results"`
	IDToName map[string]string                             `json:"id_to_name"`
	Titles   map[string]map[string]*domain.AggregatedTitle `json:"titles"`
}

func newTitleResult() *TitleResult {
	return &TitleResult{
		Results:  map[string]map[string]domain.TitleSummary{},
		IDToName: map[string]string{},
		Titles:   map[string]map[string]*domain.AggregatedTitle{},
	}
}

// Titles loads title snapshots for every day of the range and merges them per source and title.
// On an invalid request it returns an empty result along with an error wrapping ErrInvalidRequest.
func (a *Aggregator) Titles(ctx context.Context, req Request) (*TitleResult, error) {
	if a.titles == nil {
		return newTitleResult(), errors.New("no title source")
	}

	days, q, allowed, err := req.prepare()
	if err != nil {
		lgr.Printf("[WARN] title aggregation rejected: %v", err)
		return newTitleResult(), err
	}

	acc := newTitleAccumulator(q, allowed)
	loadDays(ctx, a.workers, "title", days, a.titles.TitleSnapshot, acc.add)
	lgr.Printf("[DEBUG] aggregated titles for %s..%s, %d sources", req.Start, req.End, len(acc.res.Titles))
	return acc.res, nil
}

// titleAccumulator holds the merge state of a single Titles call
type titleAccumulator struct {
	query   *match.Query
	allowed map[string]bool
	res     *TitleResult
	seen    map[*domain.AggregatedTitle]map[int]bool // ranks already in each record
}

func newTitleAccumulator(q *match.Query, allowed map[string]bool) *titleAccumulator {
	return &titleAccumulator{
		query:   q,
		allowed: allowed,
		res:     newTitleResult(),
		seen:    map[*domain.AggregatedTitle]map[int]bool{},
	}
}

// add folds one day snapshot into the accumulated records
func (t *titleAccumulator) add(snap *domain.TitleSnapshot) {
	for _, src := range snap.Sources {
		if t.allowed != nil && !t.allowed[src.ID] {
			continue
		}

		name, ok := snap.IDToName[src.ID]
		if !ok || name == "" {
			name = src.ID
		}
		t.res.IDToName[src.ID] = name

		if _, ok := t.res.Titles[src.ID]; !ok {
			t.res.Titles[src.ID] = map[string]*domain.AggregatedTitle{}
			t.res.Results[src.ID] = map[string]domain.TitleSummary{}
		}

		for _, item := range src.Items {
			if !t.query.Match(item.Title) {
				continue
			}
			t.merge(src.ID, item)
		}
	}
}

func (t *titleAccumulator) merge(sourceID string, item domain.TitleItem) {
	first, last := item.FirstTime, item.LastTime
	if first.IsZero() {
		first = item.CrawlTime
	}
	if last.IsZero() {
		last = item.CrawlTime
	}

	ranks := item.Ranks
	if len(ranks) == 0 {
		ranks = []int{item.Rank}
	}

	rec, ok := t.res.Titles[sourceID][item.Title]
	if !ok {
		rec = &domain.AggregatedTitle{
			FirstTime:    first,
			LastTime:     last,
			Count:        item.Count,
			URL:          item.URL,
			MobileURL:    item.MobileURL,
			RankTimeline: append([]domain.RankPoint{}, item.RankTimeline...),
		}
		seen := map[int]bool{}
		for _, r := range ranks {
			if !seen[r] {
				seen[r] = true
				rec.Ranks = append(rec.Ranks, r)
			}
		}
		t.seen[rec] = seen
		t.res.Titles[sourceID][item.Title] = rec
		// display projection is captured once and not refreshed by later merges
		t.res.Results[sourceID][item.Title] = domain.TitleSummary{
			Ranks:     append([]int{}, rec.Ranks...),
			URL:       rec.URL,
			MobileURL: rec.MobileURL,
		}
		return
	}

	seen := t.seen[rec]
	for _, r := range ranks {
		if !seen[r] {
			seen[r] = true
			rec.Ranks = append(rec.Ranks, r)
		}
	}
	rec.FirstTime = minTime(rec.FirstTime, first)
	rec.LastTime = maxTime(rec.LastTime, last)
	rec.Count += item.Count
	rec.RankTimeline = append(rec.RankTimeline, item.RankTimeline...)
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// String returns a short description of the result, used in logs
func (r *TitleResult) String() string {
	titles := 0
	for _, m := range r.Titles {
		titles += len(m)
	}
	return fmt.Sprintf("%d sources, %d titles", len(r.Titles), titles)
}
