package content

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talk-transcripts/pkg/sites"
)

// Extractor turns a stored transcript page into sentences
type Extractor interface {
	Extract(htmlContent string) []string
	ExtractText(htmlContent string) string
}

// TranscriptExtractor pulls the spoken transcript out of a talk's transcript page
type TranscriptExtractor struct {
	// Marker must be a substring of the page, otherwise the page has no transcript
	Marker string

	// ParagraphSelector selects the transcript paragraphs
	ParagraphSelector string

	Tokenizer SentenceTokenizer
}

// NewTranscriptExtractor builds an extractor for the given site profile
// using the Punkt sentence tokenizer
func NewTranscriptExtractor(profile sites.Profile) (*TranscriptExtractor, error) {
	tokenizer, err := NewPunktTokenizer()
	if err != nil {
		return nil, err
	}
	return &TranscriptExtractor{
		Marker:            profile.TranscriptMarker,
		ParagraphSelector: profile.ParagraphSelector,
		Tokenizer:         tokenizer,
	}, nil
}

// Extract returns the transcript sentences in document order.
// A page without the transcript marker yields an empty slice.
func (e *TranscriptExtractor) Extract(htmlContent string) []string {
	sentences := []string{}

	if !strings.Contains(htmlContent, e.Marker) {
		log.Printf("TranscriptExtractor: page does not contain a transcript")
		return sentences
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.Printf("TranscriptExtractor: failed to parse HTML: %v", err)
		return sentences
	}

	for _, para := range Paragraphs(doc, e.ParagraphSelector) {
		sentences = append(sentences, e.Tokenizer.Tokenize(para)...)
	}
	return sentences
}

// ExtractText returns the transcript sentences joined by single spaces
func (e *TranscriptExtractor) ExtractText(htmlContent string) string {
	return strings.Join(e.Extract(htmlContent), " ")
}

// Paragraphs returns the whitespace-normalized leading text of every element
// matching selector, skipping paragraphs that end up empty
func Paragraphs(doc *goquery.Document, selector string) []string {
	var paras []string
	doc.Find(selector).Each(func(_ int, p *goquery.Selection) {
		if text := normalizeWhitespace(leadingText(p)); text != "" {
			paras = append(paras, text)
		}
	})
	return paras
}

// leadingText returns the text of sel up to its first child element or
// comment. Inline markup such as timestamps ends the paragraph text.
func leadingText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if goquery.NodeName(child) != "#text" {
			return false
		}
		b.WriteString(child.Text())
		return true
	})
	return b.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
