package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talk-transcripts/pkg/config"
	"talk-transcripts/pkg/fetcher"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "talktranscripts dev\n", out)
}

func TestExtractCommand_Joined(t *testing.T) {
	page := `<html><body><div class="Grid Grid--with-gutter d:f@md p-b:4"><div>
<p>Hello there. How are you?</p>
<p>I am fine.</p>
</div></div></body></html>`
	path := filepath.Join(t.TempDir(), "talk.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	out := execute(t, "extract", path, "--joined")
	assert.Equal(t, "Hello there. How are you? I am fine.\n", out)
}

func TestNewFetcher_Decorators(t *testing.T) {
	c := &config.Config{HTTP: config.HTTP{ClientType: "default", MaxAttempts: 1}}
	client := newHTTPClient(c)

	_, ok := newFetcher(c, client).(*fetcher.HTTPFetcher)
	assert.True(t, ok)

	c.HTTP.RespectRobots = true
	_, ok = newFetcher(c, client).(*fetcher.RobotsFetcher)
	assert.True(t, ok)

	c.HTTP.MaxAttempts = 3
	_, ok = newFetcher(c, client).(*fetcher.RetryFetcher)
	assert.True(t, ok)
}

func TestCrawlOptions(t *testing.T) {
	c := &config.Config{Language: "ro", MaxLinkPages: 5, MaxWebpages: 7, Delay: time.Second}
	opts := crawlOptions(c)

	assert.Equal(t, "ro", opts.Language)
	assert.Equal(t, 5, opts.MaxLinkPages)
	assert.Equal(t, 7, opts.MaxWebpages)
	assert.Equal(t, time.Second, opts.Delay)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "a", orDefault("a", "b"))
	assert.Equal(t, "b", orDefault("", "b"))
}
