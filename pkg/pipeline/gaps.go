package pipeline

import (
	"context"
	"log"

	"talk-transcripts/pkg/domain"
)

// GapResult reports what a gap fill did
type GapResult struct {
	// Missing are the links that had neither a webpage nor a transcript
	Missing []string

	// Fetched counts the missing webpages retrieved
	Fetched int

	// Committed is true when the merged webpages covered every link and were saved
	Committed bool
}

// FillGaps fetches the webpages of links that have neither a stored webpage
// nor an extracted transcript, and saves the merged raw state only if every
// link then has a webpage. Otherwise the merge is discarded and the raw-state
// file stays untouched.
func (c *Crawler) FillGaps(ctx context.Context) (GapResult, error) {
	var result GapResult

	state, err := c.store.LoadRaw()
	if err != nil {
		return result, err
	}
	transcripts, _, err := c.store.LoadTranscripts()
	if err != nil {
		return result, err
	}

	links := state.UniqueLinks()
	linkSet := state.LinkSet()

	if sameKeys(state.Webpages, linkSet) {
		log.Printf("Crawler: All %d links already have webpages", len(linkSet))
		return result, nil
	}

	for _, link := range links {
		_, hasPage := state.Webpages[link]
		_, hasTranscript := transcripts[link]
		if !hasPage && !hasTranscript {
			result.Missing = append(result.Missing, link)
		}
	}
	log.Printf("Crawler: %d of %d links are missing webpages", len(result.Missing), len(links))

	fetched := map[string]string{}
	if len(result.Missing) > 0 {
		scratch := domain.NewCrawlState()
		fetched, err = c.FetchWebpages(ctx, scratch, result.Missing, false)
		result.Fetched = len(fetched)
		if err != nil {
			return result, err
		}
	}

	merged := make(map[string]string, len(linkSet))
	for _, link := range links {
		if page, ok := fetched[link]; ok {
			merged[link] = page
		} else if page, ok := state.Webpages[link]; ok {
			merged[link] = page
		}
	}

	if !sameKeys(merged, linkSet) {
		log.Printf("Crawler: Gap fill incomplete (%d of %d links have webpages), discarding merge", len(merged), len(linkSet))
		return result, nil
	}

	state.Webpages = merged
	if err := c.store.SaveRaw(state); err != nil {
		return result, err
	}
	result.Committed = true
	log.Printf("Crawler: Gap fill complete, saved %d webpages to %q", len(merged), c.store.RawPath)
	return result, nil
}

func sameKeys(m map[string]string, set map[string]bool) bool {
	if len(m) != len(set) {
		return false
	}
	for k := range m {
		if !set[k] {
			return false
		}
	}
	return true
}
