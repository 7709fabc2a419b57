package db

import (
	"context"
	"database/sql"

	"talk-transcripts/pkg/domain"
)

// DBProvider is an interface for database clients that provide access to a sql.DB handle.
// This allows both PostgresClient and SupabaseClient to share the SQL code path.
type DBProvider interface {
	DB() *sql.DB
}

// TranscriptSaver is an export sink for talk transcripts
type TranscriptSaver interface {
	// SaveTranscripts upserts a batch of transcripts keyed by URL
	SaveTranscripts(ctx context.Context, batch []domain.TalkTranscript) error

	// GetAllURLs returns the set of talk URLs already stored
	GetAllURLs(ctx context.Context) (map[string]bool, error)
}
