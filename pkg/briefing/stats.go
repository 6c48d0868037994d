package briefing

import (
	"sort"
	"time"

	"github.com/umputun/briefing/pkg/aggregate"
	"github.com/umputun/briefing/pkg/domain"
	"github.com/umputun/briefing/pkg/match"
	"github.com/umputun/briefing/pkg/rules"
)

// TitleEntry is an aggregated title assigned to a group
type TitleEntry struct {
	Title      string    `json:"title"`
	SourceID   string    `json:"source_id"`
	SourceName string    `json:"source_name"`
	Count      int       `json:"count"`
	Ranks      []int     `json:"ranks"`
	URL        string    `json:"url"`
	MobileURL  string    `json:"mobile_url"`
	FirstTime  time.Time `json:"first_time"`
	LastTime   time.Time `json:"last_time"`
}

// TitleGroup is a word group with its matched titles. Count includes titles cut by the group's max count.
type TitleGroup struct {
	Word   string       `json:"word"`
	Key    string       `json:"group_key"`
	Count  int          `json:"count"`
	Titles []TitleEntry `json:"titles"`
}

// FeedGroup is a word group with its matched feed entries
type FeedGroup struct {
	Word    string                 `json:"word"`
	Key     string                 `json:"group_key"`
	Count   int                    `json:"count"`
	Entries []domain.FlatFeedEntry `json:"titles"`
}

// titleStats assigns every aggregated title to the first matching group.
// Ranks and links come from the merged record, the display projection only keeps the first day.
func titleStats(tr *aggregate.TitleResult, rs *rules.RuleSet) []TitleGroup {
	if tr == nil || len(rs.Groups) == 0 {
		return []TitleGroup{}
	}

	buckets := make([][]TitleEntry, len(rs.Groups))
	for srcID, titles := range tr.Results {
		for title, summary := range titles {
			idx, ok := match.RuleSet(title, rs)
			if !ok {
				continue
			}
			entry := TitleEntry{
				Title:      title,
				SourceID:   srcID,
				SourceName: tr.IDToName[srcID],
				Ranks:      summary.Ranks,
				URL:        summary.URL,
				MobileURL:  summary.MobileURL,
			}
			if entry.SourceName == "" {
				entry.SourceName = srcID
			}
			if rec := tr.Titles[srcID][title]; rec != nil {
				entry.Count = rec.Count
				entry.Ranks, entry.URL, entry.MobileURL = rec.Ranks, rec.URL, rec.MobileURL
				entry.FirstTime, entry.LastTime = rec.FirstTime, rec.LastTime
			}
			buckets[idx] = append(buckets[idx], entry)
		}
	}

	res := make([]TitleGroup, 0, len(rs.Groups))
	for i, g := range rs.Groups {
		entries := buckets[i]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(a, b int) bool {
			ra, rb := domain.BestRank(entries[a].Ranks), domain.BestRank(entries[b].Ranks)
			if ra != rb {
				return ra < rb
			}
			if entries[a].Count != entries[b].Count {
				return entries[a].Count > entries[b].Count
			}
			if entries[a].SourceID != entries[b].SourceID {
				return entries[a].SourceID < entries[b].SourceID
			}
			return entries[a].Title < entries[b].Title
		})
		res = append(res, TitleGroup{Word: g.DisplayName, Key: g.Key, Count: len(entries), Titles: limit(entries, g.MaxCount)})
	}
	sort.SliceStable(res, func(a, b int) bool { return res[a].Count > res[b].Count })
	return res
}

// feedStats assigns feed entries to the first matching group, newest first within a group
func feedStats(entries []domain.FlatFeedEntry, rs *rules.RuleSet) []FeedGroup {
	if len(rs.Groups) == 0 {
		return []FeedGroup{}
	}

	buckets := make([][]domain.FlatFeedEntry, len(rs.Groups))
	for _, e := range entries {
		if idx, ok := match.RuleSet(e.Title, rs); ok {
			buckets[idx] = append(buckets[idx], e)
		}
	}

	res := make([]FeedGroup, 0, len(rs.Groups))
	for i, g := range rs.Groups {
		matched := buckets[i]
		if len(matched) == 0 {
			continue
		}
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].PublishedAt.After(matched[b].PublishedAt) })
		res = append(res, FeedGroup{Word: g.DisplayName, Key: g.Key, Count: len(matched), Entries: limit(matched, g.MaxCount)})
	}
	sort.SliceStable(res, func(a, b int) bool { return res[a].Count > res[b].Count })
	return res
}

// platforms returns sorted names of the sources present in the result
func platforms(tr *aggregate.TitleResult) []string {
	res := []string{}
	if tr == nil {
		return res
	}
	for id := range tr.Results {
		name := tr.IDToName[id]
		if name == "" {
			name = id
		}
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func limit[T any](items []T, maxCount int) []T {
	if maxCount > 0 && len(items) > maxCount {
		return items[:maxCount]
	}
	return items
}
