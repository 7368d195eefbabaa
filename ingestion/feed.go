package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is a single syndicated item as fetched from a feed, before any
// rewriting.
type Entry struct {
	Link        string
	Title       string
	Summary     string
	PublishedAt time.Time // zero when the feed carries no usable timestamp
}

// FeedSource fetches and parses syndicated feeds into entries.
// Implementations must be safe for concurrent use.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) ([]Entry, error)
}

// gofeedSource parses RSS and Atom feeds with gofeed.
type gofeedSource struct{}

// NewFeedSource creates a FeedSource backed by an RSS/Atom parser.
func NewFeedSource() FeedSource {
	return &gofeedSource{}
}

func (s *gofeedSource) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	// gofeed.Parser lazily initializes translator state on first parse and
	// is not safe for concurrent use; each Fetch gets its own instance.
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, feedURL, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		entries = append(entries, Entry{
			Link:        item.Link,
			Title:       item.Title,
			Summary:     summary,
			PublishedAt: publishedAt,
		})
	}

	return entries, nil
}
