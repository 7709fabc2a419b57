package content

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceTokenizer splits normalized text into sentences
type SentenceTokenizer interface {
	Tokenize(text string) []string
}

// PunktTokenizer is a SentenceTokenizer backed by the Punkt model
// shipped with github.com/neurosnap/sentences. The English model is used
// for every language.
type PunktTokenizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktTokenizer loads the English Punkt model
func NewPunktTokenizer() (*PunktTokenizer, error) {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &PunktTokenizer{tokenizer: t}, nil
}

// Tokenize returns the trimmed, non-empty sentences of text in order
func (p *PunktTokenizer) Tokenize(text string) []string {
	found := p.tokenizer.Tokenize(text)
	result := make([]string, 0, len(found))
	for _, s := range found {
		sentence := strings.TrimSpace(s.Text)
		if sentence != "" {
			result = append(result, sentence)
		}
	}
	return result
}
