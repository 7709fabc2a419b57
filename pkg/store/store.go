package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"talk-transcripts/pkg/domain"
)

// ErrNoState is returned when the raw-state file does not exist
var ErrNoState = errors.New("no saved crawl state")

// rawState is the on-disk layout of the raw-state file
type rawState struct {
	Links    []string          `json:"all_links"`
	Webpages map[string]string `json:"all_webpages"`
}

// rawStateIn accepts all_links nested to any depth
type rawStateIn struct {
	Links    json.RawMessage   `json:"all_links"`
	Webpages map[string]string `json:"all_webpages"`
}

// Store persists crawl state to two JSON files: the raw state
// (links and webpages) and the extracted transcripts.
// Every save rewrites the whole file.
type Store struct {
	RawPath        string
	TranscriptPath string
}

// New creates a store over the given file paths
func New(rawPath, transcriptPath string) *Store {
	return &Store{RawPath: rawPath, TranscriptPath: transcriptPath}
}

// SaveRaw writes links and webpages to the raw-state file
func (s *Store) SaveRaw(state *domain.CrawlState) error {
	raw := rawState{Links: state.Links, Webpages: state.Webpages}
	if raw.Links == nil {
		raw.Links = []string{}
	}
	if raw.Webpages == nil {
		raw.Webpages = map[string]string{}
	}
	if err := writeJSON(s.RawPath, raw); err != nil {
		return fmt.Errorf("failed to save raw state: %w", err)
	}
	return nil
}

// LoadRaw reads links and webpages from the raw-state file.
// Nested link lists are flattened in order. Transcripts start empty.
func (s *Store) LoadRaw() (*domain.CrawlState, error) {
	data, err := os.ReadFile(s.RawPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.RawPath, ErrNoState)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read raw state: %w", err)
	}

	var in rawStateIn
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to decode raw state %s: %w", s.RawPath, err)
	}

	state := domain.NewCrawlState()
	if len(in.Links) > 0 {
		links, err := flattenLinks(in.Links)
		if err != nil {
			return nil, fmt.Errorf("failed to decode all_links in %s: %w", s.RawPath, err)
		}
		state.Links = links
	}
	if in.Webpages != nil {
		state.Webpages = in.Webpages
	}
	return state, nil
}

// SaveTranscripts writes the transcripts mapping to the transcript file
func (s *Store) SaveTranscripts(transcripts map[string][]string) error {
	out := make(map[string][]string, len(transcripts))
	for link, sentences := range transcripts {
		if sentences == nil {
			sentences = []string{}
		}
		out[link] = sentences
	}
	if err := writeJSON(s.TranscriptPath, out); err != nil {
		return fmt.Errorf("failed to save transcripts: %w", err)
	}
	return nil
}

// LoadTranscripts reads the transcript file. A missing file yields an empty
// mapping and ok == false.
func (s *Store) LoadTranscripts() (transcripts map[string][]string, ok bool, err error) {
	data, err := os.ReadFile(s.TranscriptPath)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read transcripts: %w", err)
	}

	transcripts = map[string][]string{}
	if err := json.Unmarshal(data, &transcripts); err != nil {
		return nil, false, fmt.Errorf("failed to decode transcripts %s: %w", s.TranscriptPath, err)
	}
	return transcripts, true, nil
}

// flattenLinks decodes a JSON array of strings, or of arbitrarily nested
// arrays of strings, into one ordered list
func flattenLinks(raw json.RawMessage) ([]string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return []string{}, nil
	}

	links := []string{}
	var walk func(any) error
	walk = func(node any) error {
		switch n := node.(type) {
		case string:
			links = append(links, n)
		case []any:
			for _, child := range n {
				if err := walk(child); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unexpected %T in link list", node)
		}
		return nil
	}
	if err := walk(v); err != nil {
		return nil, err
	}
	return links, nil
}

// writeJSON encodes v with a 4-space indent, leaves HTML unescaped and
// replaces path atomically through a temp file
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(buf.Bytes())
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
