package pipeline

import (
	"context"
	"log"
	"sort"

	"talk-transcripts/pkg/domain"
)

// RunOptions selects where the transcript phase gets its webpages from
type RunOptions struct {
	// Resume loads links and webpages from the raw-state file instead of crawling
	Resume bool

	// Links, when set, are crawled instead of the listing
	Links []string
}

// Run is the transcript phase: it obtains webpages (by crawling or from the
// raw-state file), extracts a transcript from each and saves only the
// transcripts mapping to the transcript file.
func (c *Crawler) Run(ctx context.Context, opts RunOptions) (domain.Summary, *domain.CrawlState, error) {
	var state *domain.CrawlState

	if opts.Resume {
		loaded, err := c.store.LoadRaw()
		if err != nil {
			return domain.Summary{}, nil, err
		}
		state = loaded
		log.Printf("Crawler: Resuming with %d links and %d webpages from %q", len(state.Links), len(state.Webpages), c.store.RawPath)
	} else {
		state = domain.NewCrawlState()
		if _, err := c.FetchWebpages(ctx, state, opts.Links, true); err != nil {
			return domain.Summary{}, state, err
		}
	}

	c.ExtractTranscripts(state)

	summary := state.Summarize()
	if err := c.store.SaveTranscripts(state.Transcripts); err != nil {
		return summary, state, err
	}

	log.Printf("Crawler: saved %d links, %d transcripts, and %d sentences to %q",
		summary.Links, summary.Transcripts, summary.Sentences, c.store.TranscriptPath)
	return summary, state, nil
}

// ExtractTranscripts extracts every stored webpage into state.Transcripts,
// in link order and then any remaining webpages in sorted order
func (c *Crawler) ExtractTranscripts(state *domain.CrawlState) {
	if state.Transcripts == nil {
		state.Transcripts = map[string][]string{}
	}

	for _, link := range webpageOrder(state) {
		state.Transcripts[link] = c.extractor.Extract(state.Webpages[link])
	}
}

// webpageOrder lists webpage keys once each, following state.Links first
func webpageOrder(state *domain.CrawlState) []string {
	order := make([]string, 0, len(state.Webpages))
	seen := make(map[string]bool, len(state.Webpages))

	for _, link := range state.Links {
		if _, ok := state.Webpages[link]; ok && !seen[link] {
			seen[link] = true
			order = append(order, link)
		}
	}

	var rest []string
	for link := range state.Webpages {
		if !seen[link] {
			rest = append(rest, link)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}
