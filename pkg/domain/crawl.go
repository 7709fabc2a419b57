package domain

// CrawlState is everything a crawl session has gathered so far.
// Once a full crawl completes, transcript keys are a subset of webpage keys,
// which are a subset of Links. A resumed crawl may hold fewer.
type CrawlState struct {
	// Links are talk URLs in discovery order, duplicates included
	Links []string

	// Webpages maps a talk URL to the raw markup of its transcript page
	Webpages map[string]string

	// Transcripts maps a talk URL to its sentences; empty when extraction failed
	Transcripts map[string][]string
}

// NewCrawlState returns an empty state with initialized maps
func NewCrawlState() *CrawlState {
	return &CrawlState{
		Links:       []string{},
		Webpages:    map[string]string{},
		Transcripts: map[string][]string{},
	}
}

// LinkSet returns the distinct links
func (s *CrawlState) LinkSet() map[string]bool {
	set := make(map[string]bool, len(s.Links))
	for _, l := range s.Links {
		set[l] = true
	}
	return set
}

// UniqueLinks returns the links with duplicates removed, keeping first occurrence order
func (s *CrawlState) UniqueLinks() []string {
	seen := make(map[string]bool, len(s.Links))
	unique := make([]string, 0, len(s.Links))
	for _, l := range s.Links {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique
}

// Summary reports what a transcript phase produced
type Summary struct {
	Links       int
	Transcripts int
	Sentences   int
}

// Summarize counts links, transcripts and sentences in the state
func (s *CrawlState) Summarize() Summary {
	sentences := 0
	for _, t := range s.Transcripts {
		sentences += len(t)
	}
	return Summary{
		Links:       len(s.Links),
		Transcripts: len(s.Transcripts),
		Sentences:   sentences,
	}
}
