package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/briefing/pkg/aggregate/mocks"
	"github.com/umputun/briefing/pkg/domain"
)

func TestAggregator_Feeds(t *testing.T) {
	pub := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	snaps := map[string]*domain.FeedSnapshot{
		"2025-03-01": {
			Feeds: []domain.FeedEntries{
				{ID: "hn", Items: []domain.FeedItem{
					{Title: "Go 1.24 released", URL: "http://go", PublishedAt: pub, Summary: "release notes"},
					{Title: "Rust news", URL: "http://rust", PublishedAt: pub},
				}},
				{ID: "blog", Items: []domain.FeedItem{
					{Title: "Go generics tips", URL: "http://blog/1", FeedName: "Some Blog"},
				}},
				{ID: "raw", Items: []domain.FeedItem{{Title: "Go tooling"}}},
			},
			IDToName: map[string]string{"hn": "Hacker News"},
		},
		"2025-03-03": {
			Feeds: []domain.FeedEntries{
				{ID: "hn", Items: []domain.FeedItem{{Title: "Go 1.24 released", URL: "http://go"}}},
			},
			IDToName: map[string]string{"hn": "Hacker News"},
		},
	}

	src := &mocks.FeedSourceMock{
		FeedSnapshotFunc: func(ctx context.Context, day string) (*domain.FeedSnapshot, error) {
			if day == "2025-03-02" {
				return nil, errors.New("broken day")
			}
			return snaps[day], nil
		},
	}
	agg := New(Config{Feeds: src})

	t.Run("all feeds", func(t *testing.T) {
		res, err := agg.Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
		require.NoError(t, err)
		require.Len(t, res, 5)
		assert.Equal(t, domain.FlatFeedEntry{Title: "Go 1.24 released", URL: "http://go", FeedName: "Hacker News",
			FeedID: "hn", PublishedAt: pub, Summary: "release notes"}, res[0])
		assert.Equal(t, "Rust news", res[1].Title)
		assert.Equal(t, "Some Blog", res[2].FeedName, "item feed name used when snapshot has none")
		assert.Equal(t, "raw", res[3].FeedName, "falls back to feed id")
		assert.Equal(t, "Go 1.24 released", res[4].Title, "duplicates across days are kept")
	})

	t.Run("filtered", func(t *testing.T) {
		res, err := agg.Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03",
			Sources: []string{"hn", "blog"}, Query: "go"})
		require.NoError(t, err)
		require.Len(t, res, 3)
		for _, e := range res {
			assert.Contains(t, e.Title, "Go")
			assert.NotEqual(t, "raw", e.FeedID)
		}
	})

	t.Run("regex", func(t *testing.T) {
		res, err := agg.Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01", IncludeRegex: `\d+\.\d+`})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "hn", res[0].FeedID)
	})

	t.Run("concurrent load keeps order", func(t *testing.T) {
		seq, err := agg.Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
		require.NoError(t, err)
		conc, err := New(Config{Feeds: src, Workers: 3}).Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
		require.NoError(t, err)
		assert.Equal(t, seq, conc)
	})

	t.Run("invalid dates", func(t *testing.T) {
		res, err := agg.Feeds(context.Background(), Request{Start: "2025-13-01", End: "2025-03-03"})
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("no feed source", func(t *testing.T) {
		res, err := New(Config{}).Feeds(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
		require.Error(t, err)
		assert.Empty(t, res)
	})
}
