package urls

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher discovers talk URLs from an RSS/Atom feed
type FeedFetcher struct {
	feedParser *gofeed.Parser
}

// NewFeedFetcher creates a new feed fetcher. userAgent may be empty.
func NewFeedFetcher(userAgent string) *FeedFetcher {
	p := gofeed.NewParser()
	if userAgent != "" {
		p.UserAgent = userAgent
	}
	return &FeedFetcher{feedParser: p}
}

// Fetch fetches and parses the feed at feedURL
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) ([]URL, error) {
	feed, err := f.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	result := make([]URL, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			result = append(result, URL{
				Location: item.Link,
				Title:    item.Title,
			})
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no valid URLs found in feed items")
	}

	return result, nil
}
