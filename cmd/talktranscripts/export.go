package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"talk-transcripts/pkg/db"
	"talk-transcripts/pkg/replication"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the transcript file into MongoDB, Postgres or Supabase",
	Long: `Export reads the transcript file, titles each talk from its stored webpage
and upserts the records in batches. Talks already present in the target are
skipped unless --overwrite is given.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("to", "mongo", "export target: mongo, postgres or supabase")
	exportCmd.Flags().Bool("overwrite", false, "re-export talks already present in the target")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("to")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	ctx := cmd.Context()

	sink, closeSink, err := openSink(ctx, target)
	if err != nil {
		return err
	}
	defer closeSink()

	exporter, err := replication.NewExporter(replication.Config{
		Store:     newStore(cfg),
		Sink:      sink,
		Language:  cfg.Language,
		Overwrite: overwrite,
	})
	if err != nil {
		return err
	}

	result, err := exporter.Export(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d transcripts to %s (%d skipped)\n", result.Exported, result.Total, target, result.Skipped)
	return err
}

// openSink connects to the export target and prepares its schema
func openSink(ctx context.Context, target string) (db.TranscriptSaver, func(), error) {
	switch target {
	case "mongo":
		if cfg.Mongo.URI == "" {
			return nil, nil, fmt.Errorf("mongo.uri is not configured")
		}
		client := db.NewClient(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err := client.Connect(ctx); err != nil {
			return nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		return client, func() { _ = client.Close(context.Background()) }, nil

	case "postgres":
		client := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.Postgres.DSN})
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		if err := client.EnsureSchema(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil

	case "supabase":
		client := db.NewSupabaseClient(db.SupabaseConfig{
			ConnectionString: cfg.Supabase.ConnectionString,
			SupabaseURL:      cfg.Supabase.URL,
			SupabaseKey:      cfg.Supabase.Key,
			Password:         cfg.Supabase.Password,
		})
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		if err := client.EnsureSchema(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown export target %q", target)
	}
}
