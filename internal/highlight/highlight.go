// Package highlight renders code samples into syntax-highlighted HTML.
package highlight

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Highlighter renders fenced code through goldmark's chroma extension.
// It is safe for concurrent use.
type Highlighter struct {
	md    goldmark.Markdown
	style string
}

// New creates a Highlighter with the given chroma style name.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
	)
	return &Highlighter{md: md, style: style}
}

// Style returns the configured style name.
func (h *Highlighter) Style() string { return h.style }

// Highlight returns code as a highlighted <pre> block. lang may be empty.
func (h *Highlighter) Highlight(code, lang string) (template.HTML, error) {
	fence := fenceFor(code)
	var src strings.Builder
	src.WriteString(fence)
	src.WriteString(lang)
	src.WriteByte('\n')
	src.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		src.WriteByte('\n')
	}
	src.WriteString(fence)
	src.WriteByte('\n')

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src.String()), &buf); err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}
	return template.HTML(buf.String()), nil
}

// Plain returns code HTML-escaped in a bare <pre><code> block.
func Plain(code string) template.HTML {
	return template.HTML("<pre><code>" + html.EscapeString(code) + "</code></pre>")
}

// fenceFor returns a backtick fence longer than any backtick run in code.
func fenceFor(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
