package tool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{
			name: "json object",
			raw:  `{"strengths":["brand"],"score":7}`,
			want: map[string]any{"strengths": []any{"brand"}, "score": float64(7)},
		},
		{
			name: "json with surrounding whitespace",
			raw:  "\n  [1, 2]\n",
			want: []any{float64(1), float64(2)},
		},
		{
			name: "plain prose",
			raw:  "Here is your analysis: focus on retention.",
			want: map[string]any{"rawAnalysis": "Here is your analysis: focus on retention.", "message": "Analysis completed successfully"},
		},
		{
			name: "fenced json is not unwrapped",
			raw:  "```json\n{\"a\":1}\n```",
			want: map[string]any{"rawAnalysis": "```json\n{\"a\":1}\n```", "message": "Analysis completed successfully"},
		},
		{
			name: "empty text",
			raw:  "",
			want: map[string]any{"rawAnalysis": "", "message": "Analysis completed successfully"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompletion(tt.raw))
		})
	}
}

func TestResultPayload(t *testing.T) {
	r := &Result{
		OutputKey: OutputGuidance,
		Inputs:    Input{"businessName": "Acme"},
		Output:    "Do less, better.",
		Timestamp: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, map[string]any{
		"businessName": "Acme",
		"guidance":     "Do less, better.",
		"timestamp":    "2024-06-01T12:00:00.000Z",
	}, r.Payload())
}
