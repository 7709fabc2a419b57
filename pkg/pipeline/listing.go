package pipeline

import (
	"context"
	"fmt"
	"log"

	"talk-transcripts/pkg/domain"
	"talk-transcripts/pkg/urls"
)

// CollectLinks walks listing pages 1..MaxLinkPages and appends every talk
// link found to state.Links, persisting the raw state after each page.
//
// A page that cannot be fetched ends the listing and is not an error.
// A page whose markup lacks the expected entries aborts the listing with an
// error wrapping urls.ErrListingMarkup; links gathered before it are kept.
func (c *Crawler) CollectLinks(ctx context.Context, state *domain.CrawlState) error {
	listingURL := c.profile.ListingURL()

	for page := 1; page <= c.opts.MaxLinkPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL := urls.ListingURL(listingURL, c.opts.Language, page)
		listing, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Printf("Crawler: %d links gathered. Invalid link: %s (%v)", len(state.Links), pageURL, err)
			return nil
		}

		links, err := urls.ExtractTalkLinks(listing.Doc, c.profile.LinkBaseURL, c.profile.Listing)
		if err != nil {
			log.Printf("Crawler: %d links gathered. Listing markup changed at %s", len(state.Links), pageURL)
			return fmt.Errorf("listing page %s: %w", pageURL, err)
		}

		state.Links = append(state.Links, links...)
		log.Printf("Crawler: Retrieved %d links (page %d)", len(state.Links), page)

		if err := c.store.SaveRaw(state); err != nil {
			return err
		}
		if err := c.pause(ctx); err != nil {
			return err
		}
	}

	return nil
}
