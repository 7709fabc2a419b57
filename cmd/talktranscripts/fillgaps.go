package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fillGapsCmd = &cobra.Command{
	Use:   "fill-gaps",
	Short: "Fetch the webpages missing from the raw-state file",
	Long: `Fill-gaps fetches the transcript pages of links that have neither a stored
webpage nor an extracted transcript. The raw-state file is rewritten only when
every link then has a webpage; otherwise the fetched pages are discarded.`,
	RunE: runFillGaps,
}

func init() {
	rootCmd.AddCommand(fillGapsCmd)
}

func runFillGaps(cmd *cobra.Command, args []string) error {
	crawler, err := newCrawler(cfg)
	if err != nil {
		return err
	}

	result, err := crawler.FillGaps(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Committed:
		fmt.Fprintf(out, "Fetched %d missing webpages, saved %s\n", result.Fetched, cfg.RawFile)
	case len(result.Missing) == 0 && result.Fetched == 0:
		fmt.Fprintln(out, "Nothing to fill")
	default:
		fmt.Fprintf(out, "Fetched %d of %d missing webpages; some links still lack a webpage, %s left unchanged\n",
			result.Fetched, len(result.Missing), cfg.RawFile)
	}
	return nil
}
