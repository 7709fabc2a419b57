package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"talk-transcripts/pkg/domain"
)

const transcriptTableDDL = `
CREATE TABLE IF NOT EXISTS talk_transcript (
  url TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL DEFAULT '',
  sentences JSONB NOT NULL DEFAULT '[]'::jsonb,
  text TEXT NOT NULL DEFAULT '',
  crawled_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const upsertTranscriptQuery = `
INSERT INTO talk_transcript (url, title, language, sentences, text, crawled_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (url) DO UPDATE SET
  title = EXCLUDED.title,
  language = EXCLUDED.language,
  sentences = EXCLUDED.sentences,
  text = EXCLUDED.text,
  crawled_at = EXCLUDED.crawled_at`

func connected(p DBProvider) (*sql.DB, error) {
	if p.DB() == nil {
		return nil, fmt.Errorf("postgres DB not connected")
	}
	return p.DB(), nil
}

func ensureTranscriptSchema(ctx context.Context, p DBProvider) error {
	db, err := connected(p)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, transcriptTableDDL); err != nil {
		return fmt.Errorf("create talk_transcript table: %w", err)
	}
	return nil
}

// upsertTranscriptsTx writes a batch of transcripts within a transaction
func upsertTranscriptsTx(ctx context.Context, p DBProvider, batch []domain.TalkTranscript) error {
	db, err := connected(p)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertTranscriptQuery)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range batch {
		if t.URL == "" {
			continue
		}
		sentences, err := sentencesJSON(t.Sentences)
		if err != nil {
			return fmt.Errorf("encode sentences url=%q: %w", t.URL, err)
		}
		if _, err := stmt.ExecContext(ctx, t.URL, t.Title, t.Language, sentences, t.Text, t.CrawledAt); err != nil {
			return fmt.Errorf("upsert transcript url=%q: %w", t.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func selectTranscriptURLs(ctx context.Context, p DBProvider) (map[string]bool, error) {
	db, err := connected(p)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT url FROM talk_transcript`)
	if err != nil {
		return nil, fmt.Errorf("query existing urls: %w", err)
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		if url != "" {
			set[url] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return set, nil
}

// sentencesJSON renders sentences as a JSON array string for the JSONB column
func sentencesJSON(sentences []string) (string, error) {
	if sentences == nil {
		sentences = []string{}
	}
	data, err := json.Marshal(sentences)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
