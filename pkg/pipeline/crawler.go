package pipeline

import (
	"context"
	"time"

	"talk-transcripts/pkg/content"
	"talk-transcripts/pkg/fetcher"
	"talk-transcripts/pkg/sites"
	"talk-transcripts/pkg/store"
)

// Options configures a crawl session
type Options struct {
	Language string

	// MaxLinkPages bounds the listing pages visited
	MaxLinkPages int

	// MaxWebpages caps the transcript pages fetched; 0 means no cap
	MaxWebpages int

	// Delay is slept after every listing page and every transcript page request
	Delay time.Duration
}

// DefaultOptions returns the defaults of a crawl session
func DefaultOptions() Options {
	return Options{
		Language:     "en",
		MaxLinkPages: 200,
		MaxWebpages:  0,
		Delay:        10 * time.Second,
	}
}

// Crawler drives a crawl one request at a time. State is held in an explicit
// domain.CrawlState passed through every phase and persisted after each mutation.
type Crawler struct {
	fetcher   fetcher.Fetcher
	extractor content.Extractor
	store     *store.Store
	profile   sites.Profile
	opts      Options

	// sleep waits between requests; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCrawler creates a new crawler
func NewCrawler(f fetcher.Fetcher, e content.Extractor, s *store.Store, profile sites.Profile, opts Options) *Crawler {
	if opts.Language == "" {
		opts.Language = DefaultOptions().Language
	}
	return &Crawler{
		fetcher:   f,
		extractor: e,
		store:     s,
		profile:   profile,
		opts:      opts,
		sleep:     fetcher.Sleep,
	}
}

// Options returns the session options
func (c *Crawler) Options() Options {
	return c.opts
}

// pause sleeps the configured delay, returning early if ctx is done
func (c *Crawler) pause(ctx context.Context) error {
	return c.sleep(ctx, c.opts.Delay)
}
