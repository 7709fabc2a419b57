package urls

import "context"

// URL represents a talk URL discovered by a source (listing, feed, sitemap or file)
type URL struct {
	Location string // URL of the talk
	Title    string // Title of the talk (optional)
}

// URLsFetcher defines the interface for talk URL sources (feed, sitemap, file)
type URLsFetcher interface {
	Fetch(ctx context.Context, location string) ([]URL, error)
}

// Locations returns the non-empty Location fields in order
func Locations(found []URL) []string {
	result := make([]string, 0, len(found))
	for _, u := range found {
		if u.Location != "" {
			result = append(result, u.Location)
		}
	}
	return result
}
