package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/briefing/pkg/domain"
)

// feedChannelSQL is a feed_channels row
type feedChannelSQL struct {
	Day      string `db:"day"`
	ID       string `db:"id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

// feedItemSQL is a feed_items row
type feedItemSQL struct {
	ID          int64      `db:"id"`
	Day         string     `db:"day"`
	FeedID      string     `db:"feed_id"`
	Position    int        `db:"position"`
	Title       string     `db:"title"`
	URL         string     `db:"url"`
	FeedName    string     `db:"feed_name"`
	PublishedAt *time.Time `db:"published_at"`
	Summary     string     `db:"summary"`
}

// SaveFeedSnapshot replaces all feed data of the snapshot's day
func (s *Store) SaveFeedSnapshot(ctx context.Context, snap *domain.FeedSnapshot) error {
	if _, err := time.Parse("2006-01-02", snap.Date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", snap.Date, err)
	}
	if err := checkUnique(snap.Feeds, "feed", func(f domain.FeedEntries) string { return f.ID }); err != nil {
		return err
	}

	return s.inTx(ctx, "save feed snapshot", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM feed_items WHERE day = ?", snap.Date); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM feed_channels WHERE day = ?", snap.Date); err != nil {
			return fmt.Errorf("delete feeds: %w", err)
		}

		for i, f := range snap.Feeds {
			row := feedChannelSQL{Day: snap.Date, ID: f.ID, Name: snap.IDToName[f.ID], Position: i}
			query := `INSERT INTO feed_channels (day, id, name, position) VALUES (:day, :id, :name, :position)`
			if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
				return fmt.Errorf("insert feed %s: %w", f.ID, err)
			}

			for j, item := range f.Items {
				itemRow := feedItemSQL{
					Day:         snap.Date,
					FeedID:      f.ID,
					Position:    j,
					Title:       item.Title,
					URL:         item.URL,
					FeedName:    item.FeedName,
					PublishedAt: timePtr(item.PublishedAt),
					Summary:     item.Summary,
				}
				query := `
					INSERT INTO feed_items (day, feed_id, position, title, url, feed_name, published_at, summary)
					VALUES (:day, :feed_id, :position, :title, :url, :feed_name, :published_at, :summary)`
				if _, err := tx.NamedExecContext(ctx, query, itemRow); err != nil {
					return fmt.Errorf("insert feed item %q: %w", item.Title, err)
				}
			}
		}
		return nil
	})
}

// FeedSnapshot returns the feed snapshot of the day, nil if there is no data for it
func (s *Store) FeedSnapshot(ctx context.Context, day string) (*domain.FeedSnapshot, error) {
	var feeds []feedChannelSQL
	err := s.db.SelectContext(ctx, &feeds, "SELECT * FROM feed_channels WHERE day = ? ORDER BY position", day)
	if err != nil {
		return nil, fmt.Errorf("get feeds for %s: %w", day, err)
	}
	if len(feeds) == 0 {
		return nil, nil
	}

	var items []feedItemSQL
	err = s.db.SelectContext(ctx, &items, "SELECT * FROM feed_items WHERE day = ? ORDER BY feed_id, position", day)
	if err != nil {
		return nil, fmt.Errorf("get feed items for %s: %w", day, err)
	}

	byFeed := map[string][]domain.FeedItem{}
	for _, it := range items {
		byFeed[it.FeedID] = append(byFeed[it.FeedID], domain.FeedItem{
			Title:       it.Title,
			URL:         it.URL,
			FeedName:    it.FeedName,
			FeedID:      it.FeedID,
			PublishedAt: timeVal(it.PublishedAt),
			Summary:     it.Summary,
		})
	}

	snap := &domain.FeedSnapshot{Date: day, IDToName: make(map[string]string, len(feeds))}
	for _, f := range feeds {
		if f.Name != "" {
			snap.IDToName[f.ID] = f.Name
		}
		snap.Feeds = append(snap.Feeds, domain.FeedEntries{ID: f.ID, Items: byFeed[f.ID]})
	}
	return snap, nil
}
