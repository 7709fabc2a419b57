package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerEcho(t *testing.T) (*httptest.Server, *http.Header) {
	t.Helper()
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts, &got
}

func TestHTTPClient_BrowserHeaders(t *testing.T) {
	ts, got := headerEcho(t)

	resp, err := NewClient(BrowserClient).Get(context.Background(), ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, browserUserAgent, got.Get("User-Agent"))
	assert.Contains(t, got.Get("Accept"), "text/html")
	assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
}

func TestHTTPClient_CloudflareHeaders(t *testing.T) {
	ts, got := headerEcho(t)

	resp, err := NewClient(CloudflareClient).Get(context.Background(), ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "curl/8.7.1", got.Get("User-Agent"))
	assert.Empty(t, got.Get("Accept-Language"))
}

func TestHTTPClient_UserAgentOverride(t *testing.T) {
	ts, got := headerEcho(t)

	c := NewClient(BrowserClient, WithUserAgent("talk-transcripts/0.1"))
	resp, err := c.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "talk-transcripts/0.1", got.Get("User-Agent"))
	assert.Equal(t, "talk-transcripts/0.1", c.UserAgent())
}

func TestHTTPClient_DefaultUserAgent(t *testing.T) {
	assert.Equal(t, "", NewClient(DefaultClient).UserAgent())
	assert.Equal(t, cloudflareUserAgent, NewClient(CloudflareClient).UserAgent())
}
