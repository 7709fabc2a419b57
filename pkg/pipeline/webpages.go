package pipeline

import (
	"context"
	"log"

	"talk-transcripts/pkg/domain"
	"talk-transcripts/pkg/urls"
)

// FetchWebpages fetches the transcript page of every link and stores its raw
// markup in state.Webpages under the talk link.
//
// With a nil links argument the state's links are used, collected from the
// listing first when the state has none. Explicit links replace state.Links.
// Previously stored webpages are dropped so every stored page belongs to a
// current link. When autoSave is set the raw state is persisted after every stored page.
// Failed fetches are logged and skipped. The delay is slept after every attempt.
//
// It returns the webpages fetched by this call.
func (c *Crawler) FetchWebpages(ctx context.Context, state *domain.CrawlState, links []string, autoSave bool) (map[string]string, error) {
	if links == nil {
		if len(state.Links) == 0 {
			if err := c.CollectLinks(ctx, state); err != nil {
				return nil, err
			}
		}
	} else {
		state.Links = links
	}
	state.Webpages = map[string]string{}

	targets := state.Links
	if c.opts.MaxWebpages > 0 && len(targets) > c.opts.MaxWebpages {
		targets = targets[:c.opts.MaxWebpages]
	}

	fetched := make(map[string]string)
	for i, link := range targets {
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		transcriptURL := urls.TranscriptURL(link, c.opts.Language)
		page, err := c.fetcher.Fetch(ctx, transcriptURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fetched, ctxErr
			}
			log.Printf("Crawler: Skipping %s: %v", link, err)
		} else {
			state.Webpages[link] = page.HTML
			fetched[link] = page.HTML
			log.Printf("Crawler: Retrieved webpage %d/%d: %s", i+1, len(targets), transcriptURL)

			if autoSave {
				if err := c.store.SaveRaw(state); err != nil {
					return fetched, err
				}
			}
		}

		if err := c.pause(ctx); err != nil {
			return fetched, err
		}
	}

	log.Printf("Crawler: Fetched %d of %d webpages", len(fetched), len(targets))
	return fetched, nil
}
