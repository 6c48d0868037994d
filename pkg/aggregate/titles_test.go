package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/briefing/pkg/aggregate/mocks"
	"github.com/umputun/briefing/pkg/domain"
)

func ts(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

// snapshotsByDay makes a title source serving the given snapshots, missing days have no data
func snapshotsByDay(snaps map[string]*domain.TitleSnapshot) *mocks.TitleSourceMock {
	return &mocks.TitleSourceMock{
		TitleSnapshotFunc: func(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
			return snaps[day], nil
		},
	}
}

func oneSource(day, id, name string, items ...domain.TitleItem) *domain.TitleSnapshot {
	return &domain.TitleSnapshot{
		Date:     day,
		Sources:  []domain.SourceTitles{{ID: id, Items: items}},
		IDToName: map[string]string{id: name},
	}
}

func TestDays(t *testing.T) {
	days, err := Days("2025-02-27", "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, days)

	days, err = Days("2025-03-02", "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-02"}, days)

	days, err = Days("2025-03-05", "2025-03-01")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = Days("2025/03/01", "2025-03-02")
	require.ErrorIs(t, err, ErrInvalidRequest)
	_, err = Days("2025-03-01", "tomorrow")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAggregator_Titles_FirstObservation(t *testing.T) {
	src := snapshotsByDay(map[string]*domain.TitleSnapshot{
		"2025-03-01": oneSource("2025-03-01", "weibo", "Weibo",
			domain.TitleItem{Title: "first", Rank: 4, URL: "http://a", MobileURL: "http://m.a", Count: 2, CrawlTime: ts(1, 9)},
			domain.TitleItem{Title: "second", Rank: 1, Ranks: []int{1, 2}, Count: 1, CrawlTime: ts(1, 9),
				FirstTime: ts(1, 7), LastTime: ts(1, 8),
				RankTimeline: []domain.RankPoint{{Time: ts(1, 7), Rank: 2}, {Time: ts(1, 8), Rank: 1}}},
		),
	})

	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"weibo": "Weibo"}, res.IDToName)
	require.Len(t, res.Titles["weibo"], 2)

	first := res.Titles["weibo"]["first"]
	assert.Equal(t, ts(1, 9), first.FirstTime, "falls back to crawl time")
	assert.Equal(t, ts(1, 9), first.LastTime)
	assert.Equal(t, []int{4}, first.Ranks, "single rank when ranks list is absent")
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, "http://a", first.URL)
	assert.Equal(t, "http://m.a", first.MobileURL)
	assert.Empty(t, first.RankTimeline)

	second := res.Titles["weibo"]["second"]
	assert.Equal(t, ts(1, 7), second.FirstTime)
	assert.Equal(t, ts(1, 8), second.LastTime)
	assert.Equal(t, []int{1, 2}, second.Ranks)
	assert.Len(t, second.RankTimeline, 2)

	assert.Equal(t, domain.TitleSummary{Ranks: []int{4}, URL: "http://a", MobileURL: "http://m.a"}, res.Results["weibo"]["first"])
	assert.Equal(t, "1 sources, 2 titles", res.String())
}

func TestAggregator_Titles_RankOrderPreserved(t *testing.T) {
	src := snapshotsByDay(map[string]*domain.TitleSnapshot{
		"2025-03-01": oneSource("2025-03-01", "s1", "S1", domain.TitleItem{Title: "t", Rank: 3, Count: 1, CrawlTime: ts(1, 10)}),
		"2025-03-02": oneSource("2025-03-02", "s1", "S1", domain.TitleItem{Title: "t", Rank: 3, Ranks: []int{3, 5}, Count: 1, CrawlTime: ts(2, 10)}),
	})

	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)
	rec := res.Titles["s1"]["t"]
	assert.Equal(t, []int{3, 5}, rec.Ranks)
	assert.Equal(t, 2, rec.Count)
	assert.Equal(t, ts(1, 10), rec.FirstTime)
	assert.Equal(t, ts(2, 10), rec.LastTime)
}

func TestAggregator_Titles_TimeBoundsOrderIndependent(t *testing.T) {
	early := domain.TitleItem{Title: "t", Rank: 1, Count: 1, FirstTime: ts(1, 1), LastTime: ts(1, 23)}
	middle := domain.TitleItem{Title: "t", Rank: 2, Count: 1, FirstTime: ts(1, 12), LastTime: ts(1, 12)}

	for name, order := range map[string][]domain.TitleItem{
		"early first":  {early, middle},
		"middle first": {middle, early},
	} {
		t.Run(name, func(t *testing.T) {
			src := snapshotsByDay(map[string]*domain.TitleSnapshot{
				"2025-03-01": oneSource("2025-03-01", "s", "S", order[0]),
				"2025-03-02": oneSource("2025-03-02", "s", "S", order[1]),
			})
			res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-02"})
			require.NoError(t, err)
			rec := res.Titles["s"]["t"]
			assert.Equal(t, ts(1, 1), rec.FirstTime)
			assert.Equal(t, ts(1, 23), rec.LastTime)
		})
	}
}

func TestAggregator_Titles_PartialFailureIsolation(t *testing.T) {
	day1 := oneSource("2025-03-01", "s", "S",
		domain.TitleItem{Title: "a", Rank: 1, Count: 1, CrawlTime: ts(1, 8)},
		domain.TitleItem{Title: "b", Rank: 2, Count: 1, CrawlTime: ts(1, 8)})
	day3 := oneSource("2025-03-03", "s", "S",
		domain.TitleItem{Title: "a", Rank: 7, Count: 3, CrawlTime: ts(3, 8)})

	src := &mocks.TitleSourceMock{
		TitleSnapshotFunc: func(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
			switch day {
			case "2025-03-01":
				return day1, nil
			case "2025-03-02":
				return nil, errors.New("storage failure")
			case "2025-03-03":
				return day3, nil
			}
			return nil, fmt.Errorf("unexpected day %s", day)
		},
	}

	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
	require.NoError(t, err)
	require.Len(t, src.TitleSnapshotCalls(), 3)

	expected, err := New(Config{Titles: snapshotsByDay(map[string]*domain.TitleSnapshot{
		"2025-03-01": day1, "2025-03-03": day3,
	})}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, expected, res)

	assert.Equal(t, []int{1, 7}, res.Titles["s"]["a"].Ranks)
	assert.Equal(t, 4, res.Titles["s"]["a"].Count)
}

func TestAggregator_Titles_PanicInProviderIsIsolated(t *testing.T) {
	src := &mocks.TitleSourceMock{
		TitleSnapshotFunc: func(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
			if day == "2025-03-01" {
				var snap *domain.TitleSnapshot
				_ = snap.Sources // malformed payload
			}
			return oneSource(day, "s", "S", domain.TitleItem{Title: "t", Rank: 1, Count: 1, CrawlTime: ts(2, 1)}), nil
		},
	}
	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Titles["s"]["t"].Count)
}

func TestAggregator_Titles_ReaggregationDoublesCounts(t *testing.T) {
	item := domain.TitleItem{Title: "t", Rank: 2, Ranks: []int{2, 4}, Count: 5, CrawlTime: ts(1, 10),
		RankTimeline: []domain.RankPoint{{Time: ts(1, 9), Rank: 4}, {Time: ts(1, 10), Rank: 2}}}
	src := &mocks.TitleSourceMock{
		TitleSnapshotFunc: func(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
			return oneSource(day, "s", "S", item), nil // same snapshot every day
		},
	}

	agg := New(Config{Titles: src})
	single, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01"})
	require.NoError(t, err)
	double, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)

	s, d := single.Titles["s"]["t"], double.Titles["s"]["t"]
	assert.Equal(t, 2*s.Count, d.Count)
	assert.Len(t, d.RankTimeline, 2*len(s.RankTimeline))
	assert.Equal(t, s.Ranks, d.Ranks)
	assert.Equal(t, []int{2, 4}, d.Ranks)

	// the source item must not be modified by merging
	assert.Equal(t, []int{2, 4}, item.Ranks)
	assert.Len(t, item.RankTimeline, 2)
}

func TestAggregator_Titles_DisplayProjectionNotRefreshed(t *testing.T) {
	src := snapshotsByDay(map[string]*domain.TitleSnapshot{
		"2025-03-01": oneSource("2025-03-01", "s", "S", domain.TitleItem{Title: "t", Rank: 3, URL: "http://old", Count: 1, CrawlTime: ts(1, 1)}),
		"2025-03-02": oneSource("2025-03-02", "s", "S", domain.TitleItem{Title: "t", Rank: 1, URL: "http://new", Count: 1, CrawlTime: ts(2, 1)}),
	})
	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 1}, res.Titles["s"]["t"].Ranks)
	assert.Equal(t, "http://old", res.Titles["s"]["t"].URL, "url is kept from the first observation")
	assert.Equal(t, []int{3}, res.Results["s"]["t"].Ranks, "projection keeps first-seen ranks")
}

func TestAggregator_Titles_SourceFilter(t *testing.T) {
	snap := &domain.TitleSnapshot{
		Sources: []domain.SourceTitles{
			{ID: "a", Items: []domain.TitleItem{{Title: "ta", Rank: 1, Count: 1}}},
			{ID: "b", Items: []domain.TitleItem{{Title: "tb", Rank: 1, Count: 1}}},
		},
		IDToName: map[string]string{"a": "Alpha"},
	}
	src := snapshotsByDay(map[string]*domain.TitleSnapshot{"2025-03-01": snap})
	agg := New(Config{Titles: src})

	t.Run("nil sources admit all", func(t *testing.T) {
		res, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "Alpha", "b": "b"}, res.IDToName, "name falls back to id")
		assert.Len(t, res.Titles, 2)
	})

	t.Run("listed sources only", func(t *testing.T) {
		res, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01", Sources: []string{"b"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"b": "b"}, res.IDToName)
		assert.Contains(t, res.Titles, "b")
		assert.NotContains(t, res.Titles, "a")
	})

	t.Run("empty sources admit nothing", func(t *testing.T) {
		res, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01", Sources: []string{}})
		require.NoError(t, err)
		assert.Empty(t, res.Titles)
		assert.Empty(t, res.IDToName)
	})
}

func TestAggregator_Titles_QueryFilter(t *testing.T) {
	src := snapshotsByDay(map[string]*domain.TitleSnapshot{
		"2025-03-01": oneSource("2025-03-01", "s", "S",
			domain.TitleItem{Title: "New AI chip", Rank: 1, Count: 1},
			domain.TitleItem{Title: "AI policy debate", Rank: 2, Count: 1},
			domain.TitleItem{Title: "Football scores", Rank: 3, Count: 1}),
	})
	agg := New(Config{Titles: src})

	res, err := agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01", Query: "ai"})
	require.NoError(t, err)
	assert.Len(t, res.Titles["s"], 2)

	res, err = agg.Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01", Query: "ai", IncludeRegex: "chip$"})
	require.NoError(t, err)
	require.Len(t, res.Titles["s"], 1)
	assert.Contains(t, res.Titles["s"], "New AI chip")
	assert.Len(t, res.Results["s"], 1)
}

func TestAggregator_Titles_InvalidRequest(t *testing.T) {
	src := snapshotsByDay(nil)
	agg := New(Config{Titles: src})

	tests := []Request{
		{Start: "bad", End: "2025-03-01"},
		{Start: "2025-03-01", End: "03/02/2025"},
		{Start: "2025-03-01", End: "2025-03-02", IncludeRegex: "(["},
	}
	for _, req := range tests {
		res, err := agg.Titles(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidRequest)
		require.NotNil(t, res)
		assert.Empty(t, res.Titles)
		assert.Empty(t, res.Results)
		assert.Empty(t, res.IDToName)
	}
	assert.Empty(t, src.TitleSnapshotCalls())
}

func TestAggregator_Titles_ReversedRange(t *testing.T) {
	src := snapshotsByDay(nil)
	res, err := New(Config{Titles: src}).Titles(context.Background(), Request{Start: "2025-03-05", End: "2025-03-01"})
	require.NoError(t, err)
	assert.Empty(t, res.Titles)
	assert.Empty(t, src.TitleSnapshotCalls())
}

func TestAggregator_Titles_NoSource(t *testing.T) {
	res, err := New(Config{}).Titles(context.Background(), Request{Start: "2025-03-01", End: "2025-03-01"})
	require.Error(t, err)
	assert.Empty(t, res.Titles)
}

func TestAggregator_Titles_ConcurrentLoadKeepsDayOrder(t *testing.T) {
	// later days respond faster, folding must still follow the calendar
	src := &mocks.TitleSourceMock{
		TitleSnapshotFunc: func(ctx context.Context, day string) (*domain.TitleSnapshot, error) {
			d, _ := time.Parse(DateLayout, day)
			time.Sleep(time.Duration(10-d.Day()) * 5 * time.Millisecond)
			return oneSource(day, "s", "S", domain.TitleItem{
				Title: "t", Rank: d.Day(), Count: 1, CrawlTime: d,
				RankTimeline: []domain.RankPoint{{Time: d, Rank: d.Day()}},
			}), nil
		},
	}

	req := Request{Start: "2025-03-01", End: "2025-03-06"}
	sequential, err := New(Config{Titles: src}).Titles(context.Background(), req)
	require.NoError(t, err)
	concurrent, err := New(Config{Titles: src, Workers: 4}).Titles(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
	rec := concurrent.Titles["s"]["t"]
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, rec.Ranks)
	require.Len(t, rec.RankTimeline, 6)
	for i, p := range rec.RankTimeline {
		assert.Equal(t, i+1, p.Rank)
	}
	assert.Equal(t, 6, rec.Count)
}
