// Package markdown renders tool descriptions to HTML and scrubs markup out of
// user supplied form values.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	// ToHTMLSanitized renders markdown and strips anything outside a UGC policy.
	ToHTMLSanitized(markdown string) (string, error)
	// StripHTML removes all tags from text and returns plain text.
	StripHTML(text string) string
}

type service struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4")

	return &service{
		md:     md,
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *service) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}

// maxStripPasses bounds how many layers of entity encoding StripHTML peels.
const maxStripPasses = 8

// StripHTML drops every tag. The strict policy escapes what it keeps, so the
// result is unescaped again before it lands in a prompt. Unescaping can
// surface tags that were entity encoded, so passes repeat until the text is
// stable. Text still changing after maxStripPasses is returned escaped.
func (s *service) StripHTML(text string) string {
	if !strings.ContainsAny(text, "<>&") {
		return text
	}
	out := text
	for range maxStripPasses {
		next := html.UnescapeString(s.strict.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	return s.strict.Sanitize(out)
}
