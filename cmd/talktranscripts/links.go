package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"talk-transcripts/pkg/domain"
	"talk-transcripts/pkg/sitemap"
	"talk-transcripts/pkg/store"
	"talk-transcripts/pkg/urls"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Collect talk links into the raw-state file",
	Long: `Links walks the listing pages (sort=newest) and appends every talk link to
the raw-state file, saving after each page. A page that cannot be fetched ends
the listing. Alternative sources read the site feed, its sitemap or a local
file with one URL per line.`,
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().String("source", "listing", "link source: listing, feed, sitemap or file")
	linksCmd.Flags().String("from", "", "feed/sitemap URL or file path (default: the site's feed or sitemap URL)")
	linksCmd.Flags().Bool("dedupe", false, "drop links already collected or seen twice")
	linksCmd.Flags().Bool("append", false, "add to the links already in the raw-state file")

	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	from, _ := cmd.Flags().GetString("from")
	dedupe, _ := cmd.Flags().GetBool("dedupe")
	appendLinks, _ := cmd.Flags().GetBool("append")

	crawler, err := newCrawler(cfg)
	if err != nil {
		return err
	}

	state := domain.NewCrawlState()
	if appendLinks {
		state, err = loadOrNewState()
		if err != nil {
			return err
		}
	}
	before := len(state.Links)

	ctx := cmd.Context()
	profile := cfg.Profile()

	var filters []urls.UrlFilter
	if dedupe {
		filters = append(filters, urls.NewDedupFilter(state.Links...))
	}

	switch source {
	case "listing":
		err = crawler.CollectLinks(ctx, state)
		if err == nil && dedupe {
			state.Links = state.UniqueLinks()
			err = newStore(cfg).SaveRaw(state)
		}
	case "feed":
		_, err = crawler.DiscoverLinks(ctx, state, urls.NewFeedFetcher(cfg.HTTP.UserAgent), orDefault(from, profile.FeedURL), filters...)
	case "sitemap":
		_, err = crawler.DiscoverLinks(ctx, state, sitemap.NewParser(newHTTPClient(cfg)), orDefault(from, profile.SitemapURL), filters...)
	case "file":
		if from == "" {
			return fmt.Errorf("--from is required with --source file")
		}
		_, err = crawler.DiscoverLinks(ctx, state, urls.NewFileParser(), from, filters...)
	default:
		return fmt.Errorf("unknown link source %q", source)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d links gathered (%d new) in %s\n", len(state.Links), len(state.Links)-before, cfg.RawFile)
	return err
}

// loadOrNewState loads the raw state, starting empty when there is none
func loadOrNewState() (*domain.CrawlState, error) {
	state, err := newStore(cfg).LoadRaw()
	if errors.Is(err, store.ErrNoState) {
		return domain.NewCrawlState(), nil
	}
	return state, err
}

// readLinksFile returns the URLs listed in a file, one per line
func readLinksFile(ctx context.Context, path string) ([]string, error) {
	found, err := urls.NewFileParser().Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return urls.Locations(found), nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
