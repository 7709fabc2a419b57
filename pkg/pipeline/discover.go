package pipeline

import (
	"context"
	"fmt"
	"log"

	"talk-transcripts/pkg/domain"
	"talk-transcripts/pkg/urls"
)

// LinkSource wraps a URLsFetcher (feed, sitemap, file) and applies filters
// to the locations it returns
type LinkSource struct {
	fetcher urls.URLsFetcher
	filters []urls.UrlFilter
}

// NewLinkSource creates a new link source
func NewLinkSource(fetcher urls.URLsFetcher, filters ...urls.UrlFilter) *LinkSource {
	return &LinkSource{
		fetcher: fetcher,
		filters: filters,
	}
}

// Fetch extracts URLs from location and applies the filters
func (s *LinkSource) Fetch(ctx context.Context, location string) ([]string, error) {
	log.Printf("LinkSource: Fetching URLs from %s", location)
	found, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		log.Printf("LinkSource: ERROR fetching URLs from %s: %v", location, err)
		return nil, fmt.Errorf("failed to fetch URLs: %w", err)
	}

	result := urls.Locations(found)
	log.Printf("LinkSource: Extracted %d URLs with non-empty Location", len(result))

	if len(s.filters) > 0 {
		result, err = urls.FilterURLs(ctx, result, s.filters...)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("LinkSource: Returning %d URLs", len(result))
	return result, nil
}

// DiscoverLinks appends talk links found by an alternative source to
// state.Links and persists the raw state. Only URLs under the profile's talk
// path are kept; extra filters (such as a DedupFilter) run after that.
func (c *Crawler) DiscoverLinks(ctx context.Context, state *domain.CrawlState, source urls.URLsFetcher, location string, filters ...urls.UrlFilter) ([]string, error) {
	all := append([]urls.UrlFilter{
		urls.NewBaseURLFilter(),
		urls.NewContainsPathFilter(c.profile.TalkPathPrefix),
	}, filters...)

	links, err := NewLinkSource(source, all...).Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	state.Links = append(state.Links, links...)
	if err := c.store.SaveRaw(state); err != nil {
		return links, err
	}

	log.Printf("Crawler: Discovered %d talk links from %s (%d total)", len(links), location, len(state.Links))
	return links, nil
}
