// Package main is the entry point for the talktranscripts CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"talk-transcripts/pkg/config"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is resolved before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "talktranscripts",
	Short: "Crawl talk listings and extract spoken transcripts",
	Long: `talktranscripts crawls a talk-listing site (TED by default), fetches the
transcript page of every talk and extracts the transcript as sentences.

State is written to a raw-state file after every page so an interrupted crawl
can be resumed with "transcripts --resume" or completed with "fill-gaps".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Setup(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if used != "" {
			log.Printf("Using config file: %s", used)
		}

		cfg, err = config.Load(viper.GetViper())
		return err
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./talktranscripts.yaml or ~/.config/talktranscripts/talktranscripts.yaml)")
	flags.String("language", "", "transcript language code (default en)")
	flags.String("raw-file", "", "raw-state file (default ted_raw.json)")
	flags.String("transcript-file", "", "transcript output file (default ted_transcripts.json)")
	flags.Int("max-pages", 0, "max listing pages to crawl (default 200)")
	flags.Int("max-webpages", 0, "max transcript pages to fetch, 0 for no limit")
	flags.Duration("delay", 0, "delay after every request (default 10s)")

	bindFlag("language", flags.Lookup("language"))
	bindFlag("raw_file", flags.Lookup("raw-file"))
	bindFlag("transcript_file", flags.Lookup("transcript-file"))
	bindFlag("max_link_pages", flags.Lookup("max-pages"))
	bindFlag("max_webpages", flags.Lookup("max-webpages"))
	bindFlag("delay", flags.Lookup("delay"))

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of talktranscripts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "talktranscripts %s\n", version)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
