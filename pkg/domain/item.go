package domain

import (
	"math"
	"time"
)

// RankPoint is a single rank observation on a title's timeline
type RankPoint struct {
	Time time.Time `json:"time"`
	Rank int       `json:"rank"`
}

// TitleItem represents one ranked title as served in a day snapshot
type TitleItem struct {
	Title        string      `json:"title"`
	Rank         int         `json:"rank"`
	Ranks        []int       `json:"ranks,omitempty"` // all ranks seen during the day
	URL          string      `json:"url"`
	MobileURL    string      `json:"mobile_url"`
	Count        int         `json:"count"`
	CrawlTime    time.Time   `json:"crawl_time"`
	FirstTime    time.Time   `json:"first_time"` // zero if not set
	LastTime     time.Time   `json:"last_time"`  // zero if not set
	RankTimeline []RankPoint `json:"rank_timeline,omitempty"`
}

// SourceTitles is the ordered title list of one source within a snapshot
type SourceTitles struct {
	ID    string      `json:"id"`
	Items []TitleItem `json:"items"`
}

// TitleSnapshot is one day of ranked title lists, keyed by source
type TitleSnapshot struct {
	Date     string            `json:"date"`
	Sources  []SourceTitles    `json:"sources"` // in the order they were served
	IDToName map[string]string `json:"id_to_name"`
}

// AggregatedTitle is the merged record of one title of one source over a date range
type AggregatedTitle struct {
	FirstTime    time.Time   `json:"first_time"`
	LastTime     time.Time   `json:"last_time"`
	Count        int         `json:"count"`
	Ranks        []int       `json:"ranks"`
	URL          string      `json:"url"`
	MobileURL    string      `json:"mobile_url"`
	RankTimeline []RankPoint `json:"rank_timeline"`
}

// BestRank returns the smallest positive rank, math.MaxInt if there is none
func BestRank(ranks []int) int {
	best := math.MaxInt
	for _, r := range ranks {
		if r > 0 && r < best {
			best = r
		}
	}
	return best
}

// TitleSummary is the display projection of an aggregated title.
// It is captured when the title is first observed and is not refreshed by later merges.
type TitleSummary struct {
	Ranks     []int  `json:"ranks"`
	URL       string `json:"url"`
	MobileURL string `json:"mobile_url"`
}
