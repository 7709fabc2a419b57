package urls

import (
	"net/url"
	"strings"
)

const (
	transcriptSegment = "/transcript"
	languageParam     = "language"
)

// TranscriptURL derives the transcript page URL of a talk.
//
//	https://www.ted.com/talks/x               -> https://www.ted.com/talks/x/transcript?language=en
//	https://www.ted.com/talks/x?language=de   -> https://www.ted.com/talks/x/transcript?language=en
//	https://www.ted.com/talks/x/transcript?language=en (unchanged)
//
// The transcript segment is only added when the path does not already end
// with it, so applying TranscriptURL to its own output is a no-op.
func TranscriptURL(talkURL, language string) string {
	u, err := url.Parse(talkURL)
	if err != nil {
		return transcriptURLFallback(talkURL, language)
	}

	if !strings.HasSuffix(u.Path, transcriptSegment) {
		u.Path = strings.TrimSuffix(u.Path, "/") + transcriptSegment
		if u.RawPath != "" {
			u.RawPath = strings.TrimSuffix(u.RawPath, "/") + transcriptSegment
		}
	}

	q := u.Query()
	q.Set(languageParam, language)
	u.RawQuery = q.Encode()

	return u.String()
}

// transcriptURLFallback applies the same rule on the raw string for URLs
// net/url refuses to parse
func transcriptURLFallback(talkURL, language string) string {
	if strings.Contains(talkURL, transcriptSegment+"?") {
		return talkURL
	}
	if i := strings.Index(talkURL, "?"+languageParam+"="); i >= 0 {
		return talkURL[:i] + transcriptSegment + "?" + languageParam + "=" + language
	}
	return talkURL + transcriptSegment + "?" + languageParam + "=" + language
}
