package urls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedFetcher_Fetch(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>TED Talks Daily</title>
		<link>https://www.ted.com/talks</link>
		<item>
			<title>The paradox of efficiency</title>
			<link>https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency</link>
		</item>
		<item>
			<title>No link</title>
		</item>
		<item>
			<title>Why doesn't the leaning tower of Pisa fall over?</title>
			<link>https://www.ted.com/talks/alex_gendler_why_doesn_t_the_leaning_tower_of_pisa_fall_over</link>
		</item>
	</channel>
</rss>`

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssXML))
	}))
	defer server.Close()

	found, err := NewFeedFetcher("talk-transcripts/0.1").Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency", found[0].Location)
	assert.Equal(t, "The paradox of efficiency", found[0].Title)
	assert.Equal(t, "https://www.ted.com/talks/alex_gendler_why_doesn_t_the_leaning_tower_of_pisa_fall_over", found[1].Location)
	assert.Equal(t, "talk-transcripts/0.1", gotUA)
}

func TestFeedFetcher_EmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`))
	}))
	defer server.Close()

	_, err := NewFeedFetcher("").Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFeedFetcher_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewFeedFetcher("").Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestLocations(t *testing.T) {
	got := Locations([]URL{{Location: "a"}, {Title: "empty"}, {Location: "b"}})
	assert.Equal(t, []string{"a", "b"}, got)
}
