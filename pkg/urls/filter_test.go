package urls

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFilter struct{}

func (failingFilter) ShouldKeep(ctx context.Context, url string) (bool, error) {
	return false, errors.New("boom")
}

func TestFilterURLs(t *testing.T) {
	ctx := context.Background()
	in := []string{
		"https://www.ted.com/",
		"https://www.ted.com/talks/a",
		"https://www.ted.com/playlists/1",
		"https://www.ted.com/talks/b",
		"https://www.ted.com/talks/a",
	}

	got, err := FilterURLs(ctx, in,
		NewBaseURLFilter(),
		NewContainsPathFilter("/talks/"),
		NewDedupFilter(),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.ted.com/talks/a", "https://www.ted.com/talks/b"}, got)
}

func TestFilterURLs_Error(t *testing.T) {
	_, err := FilterURLs(context.Background(), []string{"x"}, failingFilter{})
	assert.Error(t, err)
}

func TestAlreadyFetchedFilter(t *testing.T) {
	f := NewAlreadyFetchedFilter(map[string]bool{"a": true})

	keep, err := f.ShouldKeep(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, keep)

	keep, err = f.ShouldKeep(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, keep)
}

func TestDedupFilter_KnownURLs(t *testing.T) {
	f := NewDedupFilter("a")

	got, err := FilterURLs(context.Background(), []string{"a", "b", "b", "c"}, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestBaseURLFilter(t *testing.T) {
	f := NewBaseURLFilter()
	for url, want := range map[string]bool{
		"https://www.ted.com":         false,
		"https://www.ted.com/":        false,
		"https://www.ted.com/talks/a": true,
	} {
		keep, err := f.ShouldKeep(context.Background(), url)
		require.NoError(t, err)
		assert.Equal(t, want, keep, url)
	}
}
