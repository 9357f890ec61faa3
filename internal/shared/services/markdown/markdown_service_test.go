package markdown

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("## Overview\n\nBuilds a **SWOT** matrix.<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>SWOT</strong>")
	assert.Contains(t, out, `<h2 id="overview">`)
	assert.NotContains(t, out, "<script>")
}

func TestStripHTML(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Acme Corp", "Acme Corp"},
		{"tags removed", "<b>Acme</b> <img src=x onerror=alert(1)>Corp", "Acme Corp"},
		{"entities survive as text", "R&D budget < 10k", "R&D budget < 10k"},
		{"script content dropped", "hi<script>steal()</script>", "hi"},
		{"entity encoded script dropped", "hi&lt;script&gt;alert(1)&lt;/script&gt;", "hi"},
		{"double encoded tags removed", "&amp;lt;b&amp;gt;Acme&amp;lt;/b&amp;gt;", "Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.StripHTML(tt.in))
		})
	}
}

func TestStripHTML_DeeplyEncodedMarkupStaysInert(t *testing.T) {
	svc := NewService()

	in := "<img src=x onerror=alert(1)>"
	for range 12 {
		in = html.EscapeString(in)
	}

	out := svc.StripHTML(in)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
}
