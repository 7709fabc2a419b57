package urls

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptURL(t *testing.T) {
	tests := []struct {
		name     string
		talkURL  string
		language string
		want     string
	}{
		{
			"no language parameter",
			"https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency",
			"en",
			"https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency/transcript?language=en",
		},
		{
			"language parameter",
			"https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency?language=en",
			"en",
			"https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency/transcript?language=en",
		},
		{
			"language parameter replaced by requested language",
			"https://www.ted.com/talks/x?language=de",
			"ro",
			"https://www.ted.com/talks/x/transcript?language=ro",
		},
		{
			"trailing slash",
			"https://www.ted.com/talks/x/",
			"en",
			"https://www.ted.com/talks/x/transcript?language=en",
		},
		{
			"already a transcript URL",
			"https://www.ted.com/talks/x/transcript?language=en",
			"en",
			"https://www.ted.com/talks/x/transcript?language=en",
		},
		{
			"other parameters survive",
			"https://www.ted.com/talks/x?language=en&subtitle=on",
			"en",
			"https://www.ted.com/talks/x/transcript?language=en&subtitle=on",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranscriptURL(tt.talkURL, tt.language))
		})
	}
}

func TestTranscriptURL_IdempotentWithLanguageParameter(t *testing.T) {
	talks := []string{
		"https://www.ted.com/talks/edward_tenner_the_paradox_of_efficiency?language=en",
		"https://www.ted.com/talks/alex_gendler_why_doesn_t_the_leaning_tower_of_pisa_fall_over?language=en",
		"https://www.ted.com/talks/x?language=de",
		"https://www.ted.com/talks/x?foo=bar&language=fr",
	}
	for _, talk := range talks {
		once := TranscriptURL(talk, "en")
		twice := TranscriptURL(once, "en")
		assert.Equal(t, once, twice, talk)
		assert.Equal(t, 1, strings.Count(twice, transcriptSegment), talk)
	}
}

func TestTranscriptURL_AppendsExactlyOnce(t *testing.T) {
	talks := []string{
		"https://www.ted.com/talks/a",
		"https://www.ted.com/talks/b_c_d",
		"https://www.ted.com/talks/e?autoplay=true",
	}
	for _, talk := range talks {
		got := TranscriptURL(talk, "en")

		u, err := url.Parse(got)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(u.Path, transcriptSegment), got)
		assert.True(t, strings.HasSuffix(u.Path, transcriptSegment), got)
		assert.Equal(t, []string{"en"}, u.Query()["language"], got)
		assert.Equal(t, TranscriptURL(got, "en"), got)
	}
}

func TestTranscriptURL_Fallback(t *testing.T) {
	// A control character makes net/url reject the URL
	bad := "https://www.ted.com/talks/x\x7f?language=en"
	got := TranscriptURL(bad, "en")
	assert.Equal(t, "https://www.ted.com/talks/x\x7f/transcript?language=en", got)
	assert.Equal(t, got, TranscriptURL(got, "en"))
}
