package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"talk-transcripts/pkg/httpclient"
	"talk-transcripts/pkg/urls"
)

// maxIndexDepth bounds how deep sitemap indexes may nest
const maxIndexDepth = 3

var ErrNotSitemap = errors.New("document is neither a urlset nor a sitemapindex")

// Entry represents a single URL entry from a sitemap
type Entry struct {
	Location   string // URL of the talk page
	LastMod    string // Last modification date (optional)
	Priority   string // Priority value (optional)
	ChangeFreq string // Change frequency (optional)
}

// urlSet represents a regular sitemap structure
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location   string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	Priority   string `xml:"priority,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// sitemapIndex represents a sitemap index structure
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}

// Parser handles sitemap parsing operations
type Parser struct {
	client *httpclient.HTTPClient
}

// NewParser creates a new sitemap parser on top of the given client
func NewParser(client *httpclient.HTTPClient) *Parser {
	if client == nil {
		client = httpclient.NewClient(httpclient.DefaultClient)
	}
	return &Parser{client: client}
}

// Fetch implements urls.URLsFetcher
func (p *Parser) Fetch(ctx context.Context, sitemapURL string) ([]urls.URL, error) {
	entries, err := p.ParseFromURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	result := make([]urls.URL, 0, len(entries))
	for _, e := range entries {
		result = append(result, urls.URL{Location: e.Location})
	}
	return result, nil
}

// ParseFromURL fetches and parses a sitemap or a sitemap index from the given URL.
// Child sitemaps of an index that fail to load are logged and skipped.
func (p *Parser) ParseFromURL(ctx context.Context, sitemapURL string) ([]Entry, error) {
	return p.parseFromURL(ctx, sitemapURL, 0)
}

func (p *Parser) parseFromURL(ctx context.Context, sitemapURL string, depth int) ([]Entry, error) {
	body, err := p.download(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	root, err := rootElement(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sitemap %s: %w", sitemapURL, err)
	}

	switch root {
	case "urlset":
		return p.parseSitemap(bytes.NewReader(body))
	case "sitemapindex":
	default:
		return nil, fmt.Errorf("%s: %w", sitemapURL, ErrNotSitemap)
	}

	if depth >= maxIndexDepth {
		return nil, fmt.Errorf("sitemap index %s nested deeper than %d levels", sitemapURL, maxIndexDepth)
	}

	sitemapURLs, err := p.parseSitemapIndex(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap index: %w", err)
	}
	if len(sitemapURLs) == 0 {
		return nil, fmt.Errorf("sitemap index contained no sitemap URLs")
	}

	var allEntries []Entry
	for _, childURL := range sitemapURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := p.parseFromURL(ctx, childURL, depth+1)
		if err != nil {
			log.Printf("Sitemap: skipping %s: %v", childURL, err)
			continue
		}
		allEntries = append(allEntries, entries...)
	}

	if len(allEntries) == 0 {
		return nil, fmt.Errorf("no entries found in any sitemap from index")
	}
	return allEntries, nil
}

func (p *Parser) download(ctx context.Context, sitemapURL string) ([]byte, error) {
	resp, err := p.client.Get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sitemap: %w", err)
	}
	return body, nil
}

// rootElement returns the local name of the first element in the document
func rootElement(body []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// parseSitemapIndex parses a sitemap index file
func (p *Parser) parseSitemapIndex(reader io.Reader) ([]string, error) {
	var index sitemapIndex
	if err := xml.NewDecoder(reader).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap index XML: %w", err)
	}

	locations := make([]string, 0, len(index.Sitemaps))
	for _, ref := range index.Sitemaps {
		if ref.Location != "" {
			locations = append(locations, ref.Location)
		}
	}
	return locations, nil
}

// parseSitemap parses a regular sitemap XML
func (p *Parser) parseSitemap(reader io.Reader) ([]Entry, error) {
	var set urlSet
	if err := xml.NewDecoder(reader).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	entries := make([]Entry, 0, len(set.URLs))
	for _, u := range set.URLs {
		if u.Location != "" {
			entries = append(entries, Entry{
				Location:   u.Location,
				LastMod:    u.LastMod,
				Priority:   u.Priority,
				ChangeFreq: u.ChangeFreq,
			})
		}
	}
	return entries, nil
}
