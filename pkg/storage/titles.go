package storage

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/briefing/pkg/domain"
)

// titleSourceSQL is a title_sources row
type titleSourceSQL struct {
	Day      string `db:"day"`
	ID       string `db:"id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

// titleItemSQL is a title_items row
type titleItemSQL struct {
	ID           int64       `db:"id"`
	Day          string      `db:"day"`
	SourceID     string      `db:"source_id"`
	Position     int         `db:"position"`
	Title        string      `db:"title"`
	Rank         int         `db:"rank"`
	Ranks        ranksSQL    `db:"ranks"`
	URL          string      `db:"url"`
	MobileURL    string      `db:"mobile_url"`
	Count        int         `db:"count"`
	CrawlTime    *time.Time  `db:"crawl_time"`
	FirstTime    *time.Time  `db:"first_time"`
	LastTime     *time.Time  `db:"last_time"`
	RankTimeline timelineSQL `db:"rank_timeline"`
}

// ranksSQL is a JSON array of ranks
type ranksSQL []int

// Value implements driver.Valuer for database storage
func (r ranksSQL) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(r))
	return string(b), err
}

// Scan implements sql.Scanner for database retrieval
func (r *ranksSQL) Scan(value any) error {
	return scanJSON(value, (*[]int)(r))
}

// timelineSQL is a JSON array of rank points
type timelineSQL []domain.RankPoint

// Value implements driver.Valuer for database storage
func (t timelineSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]domain.RankPoint(t))
	return string(b), err
}

// Scan implements sql.Scanner for database retrieval
func (t *timelineSQL) Scan(value any) error {
	return scanJSON(value, (*[]domain.RankPoint)(t))
}

func scanJSON(value, dest any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// SaveTitleSnapshot replaces all title data of the snapshot's day
func (s *Store) SaveTitleSnapshot(ctx context.Context, snap *domain.TitleSnapshot) error {
	if _, err := time.Parse("2006-01-02", snap.Date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", snap.Date, err)
	}
	if err := checkUnique(snap.Sources, "source", func(src domain.SourceTitles) string { return src.ID }); err != nil {
		return err
	}

	return s.inTx(ctx, "save title snapshot", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM title_items WHERE day = ?", snap.Date); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM title_sources WHERE day = ?", snap.Date); err != nil {
			return fmt.Errorf("delete sources: %w", err)
		}

		for i, src := range snap.Sources {
			row := titleSourceSQL{Day: snap.Date, ID: src.ID, Name: snap.IDToName[src.ID], Position: i}
			query := `INSERT INTO title_sources (day, id, name, position) VALUES (:day, :id, :name, :position)`
			if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
				return fmt.Errorf("insert source %s: %w", src.ID, err)
			}

			for j, item := range src.Items {
				itemRow := titleItemSQL{
					Day:          snap.Date,
					SourceID:     src.ID,
					Position:     j,
					Title:        item.Title,
					Rank:         item.Rank,
					Ranks:        item.Ranks,
					URL:          item.URL,
					MobileURL:    item.MobileURL,
					Count:        item.Count,
					CrawlTime:    timePtr(item.CrawlTime),
					FirstTime:    timePtr(item.FirstTime),
					LastTime:     timePtr(item.LastTime),
					RankTimeline: item.RankTimeline,
				}
				query := `
					INSERT INTO title_items (
						day, source_id, position, title, rank, ranks, url, mobile_url,
						count, crawl_time, first_time, last_time, rank_timeline
					) VALUES (
						:day, :source_id, :position, :title, :rank, :ranks, :url, :mobile_url,
						:count, :crawl_time, :first_time, :last_time, :rank_timeline
					)`
				if _, err := tx.NamedExecContext(ctx, query, itemRow); err != nil {
					return fmt.Errorf("insert title %q: %w", item.Title, err)
				}
			}
		}
		return nil
	})
}

// TitleSnapshot returns the title snapshot of the day, nil if there is no data for it
func (s *Store) TitleSnapshot(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
	var sources []titleSourceSQL
	err := s.db.SelectContext(ctx, &sources, "SELECT * FROM title_sources WHERE day = ? ORDER BY position", day)
	if err != nil {
		return nil, fmt.Errorf("get title sources for %s: %w", day, err)
	}
	if len(sources) == 0 {
		return nil, nil
	}

	var items []titleItemSQL
	err = s.db.SelectContext(ctx, &items, "SELECT * FROM title_items WHERE day = ? ORDER BY source_id, position", day)
	if err != nil {
		return nil, fmt.Errorf("get title items for %s: %w", day, err)
	}

	bySource := map[string][]domain.TitleItem{}
	for _, it := range items {
		bySource[it.SourceID] = append(bySource[it.SourceID], domain.TitleItem{
			Title:        it.Title,
			Rank:         it.Rank,
			Ranks:        []int(it.Ranks),
			URL:          it.URL,
			MobileURL:    it.MobileURL,
			Count:        it.Count,
			CrawlTime:    timeVal(it.CrawlTime),
			FirstTime:    timeVal(it.FirstTime),
			LastTime:     timeVal(it.LastTime),
			RankTimeline: []domain.RankPoint(it.RankTimeline),
		})
	}

	snap := &domain.TitleSnapshot{Date: day, IDToName: make(map[string]string, len(sources))}
	for _, src := range sources {
		if src.Name != "" {
			snap.IDToName[src.ID] = src.Name
		}
		snap.Sources = append(snap.Sources, domain.SourceTitles{ID: src.ID, Items: bySource[src.ID]})
	}
	return snap, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
