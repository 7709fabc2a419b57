package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrawlState_Summarize(t *testing.T) {
	s := NewCrawlState()
	s.Links = []string{"a", "b", "a"}
	s.Transcripts["a"] = []string{"One.", "Two."}
	s.Transcripts["b"] = []string{"Three."}

	assert.Equal(t, Summary{Links: 3, Transcripts: 2, Sentences: 3}, s.Summarize())
}

func TestCrawlState_UniqueLinks(t *testing.T) {
	s := &CrawlState{Links: []string{"b", "a", "b", "c", "a"}}

	assert.Equal(t, []string{"b", "a", "c"}, s.UniqueLinks())
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, s.LinkSet())
}
