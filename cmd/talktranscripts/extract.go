package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"talk-transcripts/pkg/content"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the transcript of a saved transcript page",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().Bool("joined", false, "print the sentences as one line")
	extractCmd.Flags().Bool("title", false, "print the page title first")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	joined, _ := cmd.Flags().GetBool("joined")
	withTitle, _ := cmd.Flags().GetBool("title")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	html := string(data)

	extractor, err := content.NewTranscriptExtractor(cfg.Profile())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if withTitle {
		title, err := content.ExtractTitle(html)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, title)
	}

	if joined {
		fmt.Fprintln(out, extractor.ExtractText(html))
		return nil
	}
	for _, sentence := range extractor.Extract(html) {
		fmt.Fprintln(out, sentence)
	}
	return nil
}
