package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"talk-transcripts/pkg/httpclient"
)

// Page is a fetched and parsed HTML page
type Page struct {
	URL  string
	HTML string // decoded body exactly as received
	Doc  *goquery.Document
}

// Fetcher retrieves a single page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// FetchError reports a page that could not be retrieved.
// StatusCode is zero for transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDisallowed       = errors.New("disallowed by robots.txt")
)

// HTTPFetcher performs one GET per call, with no retry
type HTTPFetcher struct {
	client *httpclient.HTTPClient
}

// NewHTTPFetcher creates a fetcher on top of the given client
func NewHTTPFetcher(client *httpclient.HTTPClient) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch downloads url and parses it into a document tree
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		utf8Reader = resp.Body
	}

	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	html := string(body)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	return &Page{URL: url, HTML: html, Doc: doc}, nil
}

// StatusCode extracts the HTTP status from a fetch error, or 0
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
