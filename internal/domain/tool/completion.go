package tool

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/constants"
)

// CompletionRequest is one text-completion call to an external provider.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Completer sends a prompt to a completion provider and returns its text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// BuildRequest renders the prompt for input using the tool's own budget.
func (t *Tool) BuildRequest(input Input) (CompletionRequest, error) {
	prompt, err := t.Render(input)
	if err != nil {
		return CompletionRequest{}, err
	}
	return CompletionRequest{
		System:      t.systemPrompt,
		Prompt:      prompt,
		Model:       t.model,
		Temperature: t.temperature,
		MaxTokens:   t.maxTokens,
	}, nil
}

// ParseCompletion decodes the provider text as JSON. Text that is not a
// single valid JSON value is wrapped as {rawAnalysis, message}.
func ParseCompletion(raw string) any {
	var parsed any
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return parsed
		}
	}
	return map[string]any{
		"rawAnalysis": raw,
		"message":     constants.RawAnalysisMessage,
	}
}

// Result is the outcome of one successful tool run.
type Result struct {
	OutputKey OutputKey
	Inputs    Input
	Output    any
	Timestamp time.Time
}

// Payload flattens the result into the response data object: the echoed
// inputs, the output under the tool's output key and an ISO-8601 timestamp.
func (r *Result) Payload() map[string]any {
	data := make(map[string]any, len(r.Inputs)+2)
	for k, v := range r.Inputs {
		data[k] = v
	}
	data[string(r.OutputKey)] = r.Output
	data["timestamp"] = biztime.Timestamp(r.Timestamp)
	return data
}
