package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var webpagesCmd = &cobra.Command{
	Use:   "webpages",
	Short: "Fetch the transcript page of every collected link",
	Long: `Webpages fetches <talk>/transcript?language=<lang> for every link in the
raw-state file (collecting links from the listing first when there are none)
and stores the raw markup, saving after each page. Failed pages are skipped.`,
	RunE: runWebpages,
}

func init() {
	webpagesCmd.Flags().String("links-file", "", "fetch the links listed in this file instead")

	rootCmd.AddCommand(webpagesCmd)
}

func runWebpages(cmd *cobra.Command, args []string) error {
	linksFile, _ := cmd.Flags().GetString("links-file")

	crawler, err := newCrawler(cfg)
	if err != nil {
		return err
	}

	state, err := loadOrNewState()
	if err != nil {
		return err
	}

	var links []string
	if linksFile != "" {
		links, err = readLinksFile(cmd.Context(), linksFile)
		if err != nil {
			return err
		}
	}

	fetched, err := crawler.FetchWebpages(cmd.Context(), state, links, true)
	fmt.Fprintf(cmd.OutOrStdout(), "%d webpages fetched, %d stored in %s\n", len(fetched), len(state.Webpages), cfg.RawFile)
	return err
}
