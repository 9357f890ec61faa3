package tool

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Sanitizer strips markup from a user supplied value.
type Sanitizer func(string) string

// Input holds the cleaned value of every declared field. Absent optional
// fields are present with an empty string.
type Input map[string]string

// ParseInput extracts the declared fields from a decoded JSON body. A missing,
// null or blank required field yields a *MissingFieldError. Keys that are not
// declared are ignored.
func (t *Tool) ParseInput(body map[string]any, sanitize Sanitizer) (Input, error) {
	in := make(Input, len(t.fields))
	for _, f := range t.fields {
		value := stringify(body[f.Name])
		if sanitize != nil {
			value = sanitize(value)
		}
		value = truncateRunes(strings.TrimSpace(value), f.MaxLength)

		if f.Required && value == "" {
			return nil, &MissingFieldError{Field: f.Name}
		}
		in[f.Name] = value
	}
	return in, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
