package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talk-transcripts/pkg/pipeline"
)

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Crawl (or resume) and extract every transcript",
	Long: `Transcripts crawls the listing and the transcript pages, or with --resume
reads them from the raw-state file, then extracts each transcript into
sentences and writes the transcript file.`,
	RunE: runTranscripts,
}

func init() {
	transcriptsCmd.Flags().Bool("resume", false, "use the webpages in the raw-state file instead of crawling")
	transcriptsCmd.Flags().String("links-file", "", "crawl the links listed in this file instead of the listing")

	bindFlag("resume", transcriptsCmd.Flags().Lookup("resume"))

	rootCmd.AddCommand(transcriptsCmd)
}

func runTranscripts(cmd *cobra.Command, args []string) error {
	linksFile, _ := cmd.Flags().GetString("links-file")

	crawler, err := newCrawler(cfg)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{Resume: cfg.Resume}
	if linksFile != "" {
		if opts.Resume {
			return fmt.Errorf("--links-file cannot be combined with --resume")
		}
		opts.Links, err = readLinksFile(cmd.Context(), linksFile)
		if err != nil {
			return err
		}
	}

	summary, _, err := crawler.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d links, %d transcripts, and %d sentences to %q\n",
		summary.Links, summary.Transcripts, summary.Sentences, cfg.TranscriptFile)
	return nil
}
