package content

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talk-transcripts/pkg/sites"
)

// splitOnPeriod is a predictable tokenizer for structural tests
type splitOnPeriod struct{}

func (splitOnPeriod) Tokenize(text string) []string {
	var out []string
	for _, part := range strings.SplitAfter(text, ".") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func transcriptPage(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="Grid Grid--with-gutter d:f@md p-b:4"><div class="w-full">`)
	for _, p := range paragraphs {
		b.WriteString("<p>" + p + "</p>\n")
	}
	b.WriteString(`</div></div><p>Outside the transcript.</p></body></html>`)
	return b.String()
}

func newTestExtractor(t *testing.T) *TranscriptExtractor {
	t.Helper()
	e, err := NewTranscriptExtractor(sites.TED())
	require.NoError(t, err)
	return e
}

func TestExtract_MissingMarker(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract(`<html><body><p>No transcript here. At all.</p></body></html>`)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "", e.ExtractText(`<html></html>`))
}

func TestExtract_ParagraphsInOrder(t *testing.T) {
	e := &TranscriptExtractor{
		Marker:            sites.TED().TranscriptMarker,
		ParagraphSelector: sites.TED().ParagraphSelector,
		Tokenizer:         splitOnPeriod{},
	}

	page := transcriptPage(
		"  So I want   to talk\n\tabout efficiency.  It matters. ",
		"",
		"Thank   you.",
	)

	got := e.Extract(page)
	assert.Equal(t, []string{
		"So I want to talk about efficiency.",
		"It matters.",
		"Thank you.",
	}, got)
	assert.Equal(t, "So I want to talk about efficiency. It matters. Thank you.", e.ExtractText(page))
}

func TestExtract_LeadingTextOnly(t *testing.T) {
	e := &TranscriptExtractor{
		Marker:            sites.TED().TranscriptMarker,
		ParagraphSelector: sites.TED().ParagraphSelector,
		Tokenizer:         splitOnPeriod{},
	}

	page := transcriptPage(`(Applause) <span class="time">00:12</span>Thanks.`)

	assert.Equal(t, []string{"(Applause)"}, e.Extract(page))

	page = transcriptPage(`Hi <em>there</em>. Bye.`, `<b>Bold start</b> only.`, `Plain text.`)
	assert.Equal(t, []string{"Hi", "Plain text."}, e.Extract(page))
}

func TestExtract_PunktSplitsSentences(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract(transcriptPage("The cat sat on the mat. The dog ran away."))
	assert.Equal(t, []string{"The cat sat on the mat.", "The dog ran away."}, got)
}

func TestExtract_NeverInventsWords(t *testing.T) {
	e := newTestExtractor(t)

	cases := [][]string{
		{"One sentence only."},
		{"Dr. Smith went to Washington. He arrived at 5 p.m. on Monday.", "Then what? Nobody knows!"},
		{"   lots   of \n\n spaces   here   ", "e.g. abbreviations, i.e. tricky ones... And ellipses."},
		{"Numbers like 3.14 and 2.71 stay intact. Really."},
	}

	for i, paras := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			inputWords := 0
			for _, p := range paras {
				inputWords += len(strings.Fields(p))
			}

			got := e.Extract(transcriptPage(paras...))
			require.NotEmpty(t, got)

			outputWords := 0
			for _, s := range got {
				assert.Equal(t, strings.TrimSpace(s), s)
				assert.NotEmpty(t, s)
				outputWords += len(strings.Fields(s))
			}
			assert.LessOrEqual(t, outputWords, inputWords)
		})
	}
}
