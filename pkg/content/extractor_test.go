package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	html := `<html><head><title>The paradox of efficiency | TED Talk</title></head>
<body><article><h1>The paradox of efficiency</h1>
<p>Edward Tenner talks about efficiency and its unintended consequences for the way we work and live.</p>
</article></body></html>`

	title, err := ExtractTitle(html)
	require.NoError(t, err)
	assert.Contains(t, title, "The paradox of efficiency")
}

func TestExtractTitle_MetaFallback(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Why doesn't the leaning tower of Pisa fall over?"></head><body></body></html>`

	title, err := ExtractTitle(html)
	require.NoError(t, err)
	assert.Equal(t, "Why doesn't the leaning tower of Pisa fall over?", title)
}

func TestExtractTitle_NotFound(t *testing.T) {
	_, err := ExtractTitle(`<html><head></head><body><div></div></body></html>`)
	assert.Error(t, err)
}
