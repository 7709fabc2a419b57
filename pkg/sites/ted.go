package sites

// Selectors locates talk entries on a listing page
type Selectors struct {
	Entry string // container denoting one talk entry
	Link  string // link element inside the entry container
}

// Profile holds everything that is specific to one talk-listing site.
// The markup values track the live site and are expected to drift; they are
// overridable from configuration instead of being hard-coded at call sites.
type Profile struct {
	Name string

	// BaseURL is the site root used to build listing URLs (e.g. "https://www.ted.com")
	BaseURL string

	// ListingPath is appended to BaseURL for listing pages
	ListingPath string

	// LinkBaseURL is what relative talk hrefs are resolved against
	LinkBaseURL string

	// TalkPathPrefix identifies talk pages among discovered URLs (feed/sitemap sources)
	TalkPathPrefix string

	Listing Selectors

	// TranscriptMarker must appear verbatim in a transcript page
	TranscriptMarker string

	// ParagraphSelector selects transcript paragraphs in a transcript page
	ParagraphSelector string

	FeedURL    string
	SitemapURL string
}

// TED is the profile for www.ted.com
func TED() Profile {
	return Profile{
		Name:           "ted",
		BaseURL:        "https://www.ted.com",
		ListingPath:    "/talks",
		LinkBaseURL:    "https://www.ted.com/talks",
		TalkPathPrefix: "/talks/",
		Listing: Selectors{
			Entry: "div.talk-link",
			Link:  "h4.h9 a",
		},
		TranscriptMarker:  `<div class="Grid Grid--with-gutter d:f@md p-b:4"`,
		ParagraphSelector: `div[class="Grid Grid--with-gutter d:f@md p-b:4"] p`,
		FeedURL:           "https://www.ted.com/talks/rss",
		SitemapURL:        "https://www.ted.com/sitemap.xml",
	}
}

// ListingURL returns BaseURL joined with ListingPath
func (p Profile) ListingURL() string {
	return p.BaseURL + p.ListingPath
}
