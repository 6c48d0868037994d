package domain

import "time"

// FeedItem represents a syndicated feed entry as served in a day snapshot
type FeedItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	FeedName    string    `json:"feed_name,omitempty"`
	FeedID      string    `json:"feed_id"`
	PublishedAt time.Time `json:"published_at"`
	Summary     string    `json:"summary,omitempty"`
}

// FeedEntries is the ordered item list of one feed within a snapshot
type FeedEntries struct {
	ID    string     `json:"id"`
	Items []FeedItem `json:"items"`
}

// FeedSnapshot is one day of feed items, keyed by feed
type FeedSnapshot struct {
	Date     string            `json:"date"`
	Feeds    []FeedEntries     `json:"feeds"` // in the order they were served
	IDToName map[string]string `json:"id_to_name"`
}

// FlatFeedEntry is a filtered feed item with its resolved feed name
type FlatFeedEntry struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	FeedName    string    `json:"feed_name"`
	FeedID      string    `json:"feed_id"`
	PublishedAt time.Time `json:"published_at"`
	Summary     string    `json:"summary"`
}
