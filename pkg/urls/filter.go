package urls

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// FilterURLs applies all filters to a list of URLs, keeping order
func FilterURLs(ctx context.Context, urls []string, filters ...UrlFilter) ([]string, error) {
	filtered := make([]string, 0, len(urls))

	for _, urlStr := range urls {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, urlStr)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", urlStr, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, urlStr)
		}
	}

	return filtered, nil
}

// BaseURLFilter filters out base/root URLs
type BaseURLFilter struct{}

// NewBaseURLFilter creates a new base URL filter
func NewBaseURLFilter() *BaseURLFilter {
	return &BaseURLFilter{}
}

// ShouldKeep returns false if URL is a base/root URL
func (f *BaseURLFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		// If we can't parse it, don't filter it out (let it fail later if needed)
		return true, nil
	}

	path := strings.Trim(parsed.Path, "/")
	return path != "", nil
}

// AlreadyFetchedFilter filters out URLs that already exist in the provided set
type AlreadyFetchedFilter struct {
	fetchedURLs map[string]bool
}

// NewAlreadyFetchedFilter creates a new already-fetched filter
func NewAlreadyFetchedFilter(fetchedURLs map[string]bool) *AlreadyFetchedFilter {
	return &AlreadyFetchedFilter{
		fetchedURLs: fetchedURLs,
	}
}

// ShouldKeep returns false if URL is already in the fetched set
func (f *AlreadyFetchedFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return !f.fetchedURLs[urlStr], nil
}

// ContainsPathFilter keeps URLs whose path starts with a prefix (e.g. "/talks/")
type ContainsPathFilter struct {
	pathPrefix string
}

// NewContainsPathFilter creates a new path filter
func NewContainsPathFilter(pathPrefix string) *ContainsPathFilter {
	return &ContainsPathFilter{
		pathPrefix: pathPrefix,
	}
}

// ShouldKeep returns true if the URL path starts with the prefix
func (f *ContainsPathFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return strings.Contains(urlStr, f.pathPrefix), nil
	}
	return strings.HasPrefix(parsed.Path, f.pathPrefix), nil
}

// DedupFilter keeps the first occurrence of every URL it sees
type DedupFilter struct {
	seen map[string]bool
}

// NewDedupFilter creates a dedup filter that already knows the given URLs
func NewDedupFilter(known ...string) *DedupFilter {
	seen := make(map[string]bool, len(known))
	for _, u := range known {
		seen[u] = true
	}
	return &DedupFilter{seen: seen}
}

// ShouldKeep returns false for URLs seen before
func (f *DedupFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	if f.seen[urlStr] {
		return false, nil
	}
	f.seen[urlStr] = true
	return true, nil
}
