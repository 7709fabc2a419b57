package urls

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talk-transcripts/pkg/sites"
)

// ErrListingMarkup means the listing page no longer has the structure the
// selectors expect, which usually signals a site redesign.
var ErrListingMarkup = errors.New("listing page markup does not match selectors")

// ListingURL builds the URL of one listing page sorted by newest first.
// listingURL is the site's listing endpoint (e.g. "https://www.ted.com/talks").
func ListingURL(listingURL, language string, page int) string {
	return listingURL + "?sort=newest&language=" + url.QueryEscape(language) + "&page=" + strconv.Itoa(page)
}

// ExtractTalkLinks extracts talk URLs from a listing page.
// It looks for every sel.Entry container and takes the href of the sel.Link
// element inside it, resolved against baseURL. Document order is kept and
// duplicates are not removed.
//
// A page without any entry, or an entry without a usable link, is reported as
// ErrListingMarkup rather than silently skipped.
func ExtractTalkLinks(doc *goquery.Document, baseURL string, sel sites.Selectors) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	entries := doc.Find(sel.Entry)
	if entries.Length() == 0 {
		return nil, fmt.Errorf("%w: no %q entries found", ErrListingMarkup, sel.Entry)
	}

	links := make([]string, 0, entries.Length())
	var extractErr error

	entries.EachWithBreak(func(i int, entry *goquery.Selection) bool {
		link := entry.Find(sel.Link).First()
		if link.Length() == 0 {
			extractErr = fmt.Errorf("%w: entry %d has no %q element", ErrListingMarkup, i, sel.Link)
			return false
		}

		href, exists := link.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			extractErr = fmt.Errorf("%w: entry %d link has no href", ErrListingMarkup, i)
			return false
		}

		ref, err := url.Parse(href)
		if err != nil {
			extractErr = fmt.Errorf("%w: entry %d has invalid href %q: %v", ErrListingMarkup, i, href, err)
			return false
		}

		links = append(links, base.ResolveReference(ref).String())
		return true
	})

	if extractErr != nil {
		return nil, extractErr
	}
	return links, nil
}

// ExtractTalkLinksFromHTML parses html and calls ExtractTalkLinks
func ExtractTalkLinksFromHTML(html, baseURL string, sel sites.Selectors) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return ExtractTalkLinks(doc, baseURL, sel)
}
