package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talk-transcripts/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "ted_raw.json"), filepath.Join(dir, "ted_transcripts.json"))
}

func TestRawState_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	state := domain.NewCrawlState()
	state.Links = []string{"https://www.ted.com/talks/a", "https://www.ted.com/talks/b", "https://www.ted.com/talks/a"}
	state.Webpages["https://www.ted.com/talks/a"] = `<div class="Grid Grid--with-gutter d:f@md p-b:4"><p>Hi & "bye" <b>ü</b></p></div>`
	state.Transcripts["https://www.ted.com/talks/a"] = []string{"not written to the raw file"}

	require.NoError(t, s.SaveRaw(state))

	loaded, err := s.LoadRaw()
	require.NoError(t, err)
	assert.Equal(t, state.Links, loaded.Links)
	assert.Equal(t, state.Webpages, loaded.Webpages)
	assert.Empty(t, loaded.Transcripts)
}

func TestSaveRaw_Format(t *testing.T) {
	s := newTestStore(t)

	state := domain.NewCrawlState()
	state.Links = []string{"https://www.ted.com/talks/a"}
	state.Webpages["https://www.ted.com/talks/a"] = "<p>x</p>"
	require.NoError(t, s.SaveRaw(state))

	data, err := os.ReadFile(s.RawPath)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "\n    \"all_links\": [\n        \"https://www.ted.com/talks/a\"\n    ]")
	assert.Contains(t, text, `"<p>x</p>"`)
	assert.True(t, strings.HasPrefix(text, "{\n"))

	entries, err := os.ReadDir(filepath.Dir(s.RawPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSaveRaw_EmptyState(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRaw(&domain.CrawlState{}))

	data, err := os.ReadFile(s.RawPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"all_links": []`)
	assert.Contains(t, string(data), `"all_webpages": {}`)
}

func TestLoadRaw_Missing(t *testing.T) {
	_, err := newTestStore(t).LoadRaw()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestLoadRaw_NestedLinksAreFlattened(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.RawPath, []byte(`{
    "all_links": [["a", "b"], "c", [["d"]]],
    "all_webpages": {"a": "<html></html>"}
}`), 0o644))

	state, err := s.LoadRaw()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, state.Links)
	assert.Equal(t, map[string]string{"a": "<html></html>"}, state.Webpages)
}

func TestLoadRaw_BadLinkType(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.RawPath, []byte(`{"all_links": ["a", 3], "all_webpages": {}}`), 0o644))

	_, err := s.LoadRaw()
	assert.Error(t, err)
}

func TestLoadRaw_InvalidJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.RawPath, []byte(`{"all_links": [`), 0o644))

	_, err := s.LoadRaw()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoState)
}

func TestTranscripts_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.LoadTranscripts()
	require.NoError(t, err)
	assert.False(t, ok)

	in := map[string][]string{
		"https://www.ted.com/talks/a": {"One.", "Two."},
		"https://www.ted.com/talks/b": nil,
	}
	require.NoError(t, s.SaveTranscripts(in))

	out, ok, err := s.LoadTranscripts()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"One.", "Two."}, out["https://www.ted.com/talks/a"])
	assert.Equal(t, []string{}, out["https://www.ted.com/talks/b"])
}
