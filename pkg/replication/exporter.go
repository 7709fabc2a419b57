package replication

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"talk-transcripts/pkg/content"
	"talk-transcripts/pkg/db"
	"talk-transcripts/pkg/domain"
	"talk-transcripts/pkg/store"
	"talk-transcripts/pkg/urls"
)

const defaultBatchSize = 100

// Config wires the export dependencies.
type Config struct {
	Store *store.Store
	Sink  db.TranscriptSaver

	// Language is recorded on every exported transcript
	Language string

	// Overwrite re-exports transcripts whose URL the sink already holds
	Overwrite bool

	BatchSize int
}

// Result reports what an export did
type Result struct {
	Total    int
	Skipped  int
	Exported int
}

// Exporter copies the transcript file into an export sink.
//
// This is a one-shot, "copy everything" flow: records are built from the
// transcript file, titled from the stored webpages when the raw-state file
// is present, and upserted batch by batch.
type Exporter struct {
	store     *store.Store
	sink      db.TranscriptSaver
	language  string
	overwrite bool
	batchSize int
	now       func() time.Time
}

func NewExporter(cfg Config) (*Exporter, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("state store is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("export sink is required")
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Exporter{
		store:     cfg.Store,
		sink:      cfg.Sink,
		language:  cfg.Language,
		overwrite: cfg.Overwrite,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

// Export reads the transcript file and saves every transcript not yet in the sink
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	var result Result

	transcripts, ok, err := e.store.LoadTranscripts()
	if err != nil {
		return result, err
	}
	if !ok {
		return result, fmt.Errorf("transcript file %q not found", e.store.TranscriptPath)
	}

	webpages, err := e.loadWebpages()
	if err != nil {
		return result, err
	}

	all := make([]string, 0, len(transcripts))
	for link := range transcripts {
		all = append(all, link)
	}
	sort.Strings(all)
	result.Total = len(all)

	toExport, err := e.filterExisting(ctx, all)
	if err != nil {
		return result, err
	}
	result.Skipped = len(all) - len(toExport)

	log.Printf("Exporter: Loaded %d transcripts, %d already exported, processing in batches...", result.Total, result.Skipped)

	crawledAt := e.now().UTC()
	for start := 0; start < len(toExport); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := calculateBatchEnd(start, e.batchSize, len(toExport))
		batch := make([]domain.TalkTranscript, 0, end-start)
		for _, link := range toExport[start:end] {
			batch = append(batch, e.buildRecord(link, transcripts[link], webpages[link], crawledAt))
		}

		if err := e.sink.SaveTranscripts(ctx, batch); err != nil {
			return result, fmt.Errorf("save batch [%d:%d]: %w", start, end, err)
		}
		result.Exported += len(batch)
		log.Printf("Exporter: Progress: exported %d/%d transcripts", result.Exported, len(toExport))
	}

	log.Printf("Exporter: Export complete: %d exported, %d skipped", result.Exported, result.Skipped)
	return result, nil
}

// loadWebpages returns the stored webpages, or none when there is no raw state
func (e *Exporter) loadWebpages() (map[string]string, error) {
	state, err := e.store.LoadRaw()
	if errors.Is(err, store.ErrNoState) {
		log.Printf("Exporter: No raw state at %q, exporting without titles", e.store.RawPath)
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return state.Webpages, nil
}

// filterExisting drops URLs the sink already holds unless overwriting
func (e *Exporter) filterExisting(ctx context.Context, links []string) ([]string, error) {
	if e.overwrite {
		return links, nil
	}

	existing, err := e.sink.GetAllURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing URLs: %w", err)
	}
	return urls.FilterURLs(ctx, links, urls.NewAlreadyFetchedFilter(existing))
}

func (e *Exporter) buildRecord(link string, sentences []string, webpage string, crawledAt time.Time) domain.TalkTranscript {
	if sentences == nil {
		sentences = []string{}
	}

	var title string
	if webpage != "" {
		t, err := content.ExtractTitle(webpage)
		if err == nil {
			title = t
		}
	}

	return domain.TalkTranscript{
		URL:       link,
		Title:     title,
		Language:  e.language,
		Sentences: sentences,
		Text:      strings.Join(sentences, " "),
		CrawledAt: crawledAt,
	}
}

// calculateBatchEnd calculates the end index for a batch, ensuring it doesn't exceed the total length.
func calculateBatchEnd(start, batchSize, totalLen int) int {
	end := start + batchSize
	if end > totalLen {
		return totalLen
	}
	return end
}
