package aggregate

import (
	"context"
	"errors"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/briefing/pkg/domain"
)

// Feeds loads feed snapshots for every day of the range and returns matching items
// in day order, then in the order each day served them. Items are not deduplicated.
// Request.Sources restricts feed ids.
func (a *Aggregator) Feeds(ctx context.Context, req Request) ([]domain.FlatFeedEntry, error) {
	if a.feeds == nil {
		return []domain.FlatFeedEntry{}, errors.New("no feed source")
	}

	days, q, allowed, err := req.prepare()
	if err != nil {
		lgr.Printf("[WARN] feed collection rejected: %v", err)
		return []domain.FlatFeedEntry{}, err
	}

	res := []domain.FlatFeedEntry{}
	loadDays(ctx, a.workers, "feed", days, a.feeds.FeedSnapshot, func(snap *domain.FeedSnapshot) {
		for _, f := range snap.Feeds {
			if allowed != nil && !allowed[f.ID] {
				continue
			}
			for _, item := range f.Items {
				if !q.Match(item.Title) {
					continue
				}
				res = append(res, domain.FlatFeedEntry{
					Title:       item.Title,
					URL:         item.URL,
					FeedName:    feedName(snap, f.ID, item),
					FeedID:      f.ID,
					PublishedAt: item.PublishedAt,
					Summary:     item.Summary,
				})
			}
		}
	})
	lgr.Printf("[DEBUG] collected %d feed entries for %s..%s", len(res), req.Start, req.End)
	return res, nil
}

func feedName(snap *domain.FeedSnapshot, feedID string, item domain.FeedItem) string {
	if name := snap.IDToName[feedID]; name != "" {
		return name
	}
	if item.FeedName != "" {
		return item.FeedName
	}
	return feedID
}
