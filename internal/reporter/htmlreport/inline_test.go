package htmlreport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineTestPage = `<!DOCTYPE html>
<html>
<head>
<link href="data:image/png;base64,AAAA" rel="icon" type="image/x-icon" />
<title>Test</title>
<link rel="stylesheet" type="text/css" href="style.css" />
</head>
<body>
<p>content</p>
</body>
</html>`

func TestInlineStylesheetReplacesLink(t *testing.T) {
	css := ".green { color: green; }"

	got, err := inlineStylesheet([]byte(inlineTestPage), css)
	require.NoError(t, err)

	page := string(got)
	assert.Contains(t, page, "<style>.green { color: green; }</style>")
	assert.NotContains(t, page, `rel="stylesheet"`)
	assert.Contains(t, page, `rel="icon"`, "non-stylesheet links must survive")
	assert.Contains(t, page, "<p>content</p>")
}

func TestInlineStylesheetKeepsCSSVerbatim(t *testing.T) {
	css := `body { font-family: "Segoe UI"; } a > code { color: #222; }`

	got, err := inlineStylesheet([]byte(inlineTestPage), css)
	require.NoError(t, err)

	assert.Contains(t, string(got), css, "CSS must not be HTML-escaped inside the style element")
}

func TestInlineStylesheetWithoutStylesheetLink(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>t</title></head><body><p>x</p></body></html>`

	got, err := inlineStylesheet([]byte(page), ".a {}")
	require.NoError(t, err)

	assert.Contains(t, string(got), "<p>x</p>")
	assert.NotContains(t, string(got), "<style>")
}

func TestBuildStylesheet(t *testing.T) {
	css := buildStylesheet()

	assert.Contains(t, css, "table.lineAnalysis")
	assert.Contains(t, css, ".percentagebar0 ")
	assert.Contains(t, css, ".percentagebar100 ")
	assert.Contains(t, css, ".cardpercentagebar42 ")

	// percentagebar30 means 30% uncovered, so the gradient switches at 70%.
	rule := findRule(t, css, ".percentagebar30 ")
	assert.Contains(t, rule, "70%")
}

func findRule(t *testing.T, css, selector string) string {
	t.Helper()
	idx := strings.Index(css, selector)
	require.GreaterOrEqual(t, idx, 0, "selector %s not found", selector)
	end := strings.Index(css[idx:], "}")
	require.GreaterOrEqual(t, end, 0)
	return css[idx : idx+end]
}
