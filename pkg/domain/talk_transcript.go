package domain

import "time"

// TalkTranscript is one exported transcript record
type TalkTranscript struct {
	// URL is the canonical talk URL (not the transcript page URL)
	URL string `bson:"url" json:"url"`

	// Title is the talk title, when it could be extracted from the stored page
	Title string `bson:"title" json:"title"`

	Language string `bson:"language" json:"language"`

	Sentences []string `bson:"sentences" json:"sentences"`

	// Text is the sentences joined by single spaces
	Text string `bson:"text" json:"text"`

	// CrawledAt is when the record was exported
	CrawledAt time.Time `bson:"crawled_at" json:"crawled_at"`
}
