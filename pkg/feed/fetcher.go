// Package feed fetches live RSS/Atom feeds and converts OPML subscription lists.
package feed

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/briefing/pkg/domain"
)

// Source is a feed to fetch
type Source struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Fetcher fetches RSS/Atom feeds over HTTP
type Fetcher struct {
	client    *http.Client
	userAgent string
	workers   int
	policy    *bluemonday.Policy
}

// NewFetcher creates a new feed fetcher
func NewFetcher(timeout time.Duration, userAgent string, workers int) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		workers:   workers,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves one feed and returns its entries in feed order
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]domain.FlatFeedEntry, error) {
	body, err := f.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.URL, err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	name := src.Name
	if name == "" {
		name = strings.TrimSpace(parsed.Title)
	}
	if name == "" {
		name = src.ID
	}

	res := make([]domain.FlatFeedEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entry := domain.FlatFeedEntry{
			Title:    strings.TrimSpace(item.Title),
			URL:      item.Link,
			FeedName: name,
			FeedID:   src.ID,
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entry.Summary = f.plainText(summary)

		if item.PublishedParsed != nil {
			entry.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.PublishedAt = *item.UpdatedParsed
		}

		res = append(res, entry)
	}
	return res, nil
}

// Result is the outcome of fetching one source
type Result struct {
	Source  Source
	Entries []domain.FlatFeedEntry
	Err     error
}

// FetchEach retrieves all feeds concurrently and returns one result per source, in source order
func (f *Fetcher) FetchEach(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, src := range sources {
		g.Go(func() error {
			entries, err := f.Fetch(ctx, src)
			results[i] = Result{Source: src, Entries: entries, Err: err}
			if err != nil {
				lgr.Printf("[WARN] can't fetch feed %s (%s): %v", src.ID, src.URL, err)
				return nil
			}
			lgr.Printf("[DEBUG] fetched %d entries from %s", len(entries), src.URL)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FetchAll retrieves all feeds concurrently and returns entries grouped in source order.
// A feed that can't be fetched is skipped.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []domain.FlatFeedEntry {
	res := []domain.FlatFeedEntry{}
	for _, r := range f.FetchEach(ctx, sources) {
		res = append(res, r.Entries...)
	}
	return res
}

// plainText strips markup from a feed summary
func (f *Fetcher) plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(f.policy.Sanitize(s))), " ")
}

// fetch retrieves content from a URL
func (f *Fetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	// add browser-like headers
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
