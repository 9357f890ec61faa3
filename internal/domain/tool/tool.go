package tool

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

type OutputKey string

const (
	OutputAnalysis OutputKey = "analysis"
	OutputGuidance OutputKey = "guidance"
)

func (k OutputKey) IsValid() bool {
	return k == OutputAnalysis || k == OutputGuidance
}

const (
	DefaultTemperature    float32 = 0.7
	DefaultMaxTokens              = 2000
	DefaultFieldMaxLength         = 5000
)

var (
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	fieldNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

	// Keys the response envelope owns; a field may not shadow them.
	reservedFieldNames = map[string]bool{
		string(OutputAnalysis): true,
		string(OutputGuidance): true,
		"timestamp":            true,
	}
)

// Field is one form input a tool accepts.
type Field struct {
	Name        string
	Label       string
	Required    bool
	MaxLength   int
	Placeholder string
}

// Definition is the raw, unvalidated description of a tool as it appears in
// a catalog file.
type Definition struct {
	Slug           string
	Name           string
	Category       string
	Description    string
	Tags           []string
	Fields         []Field
	SystemPrompt   string
	PromptTemplate string
	OutputKey      OutputKey
	Temperature    *float32
	MaxTokens      int
	Model          string
	Public         bool
}

// Tool is a validated, ready to run prompt template.
type Tool struct {
	slug         string
	name         string
	category     string
	description  string
	tags         []string
	fields       []Field
	systemPrompt string
	prompt       *template.Template
	outputKey    OutputKey
	temperature  float32
	maxTokens    int
	model        string
	public       bool
}

// NewTool validates def and compiles its prompt template. The template may
// only reference declared fields.
func NewTool(def Definition) (*Tool, error) {
	if !slugPattern.MatchString(def.Slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, def.Slug)
	}
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("tool %s: name is required", def.Slug)
	}
	if strings.TrimSpace(def.Category) == "" {
		return nil, fmt.Errorf("tool %s: category is required", def.Slug)
	}

	fields, err := normalizeFields(def.Slug, def.Fields)
	if err != nil {
		return nil, err
	}

	outputKey := def.OutputKey
	if outputKey == "" {
		outputKey = OutputAnalysis
	}
	if !outputKey.IsValid() {
		return nil, fmt.Errorf("tool %s: invalid output key %q", def.Slug, outputKey)
	}

	temperature := DefaultTemperature
	if def.Temperature != nil {
		temperature = *def.Temperature
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("tool %s: temperature %.2f out of range [0, 2]", def.Slug, temperature)
	}

	maxTokens := def.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	if maxTokens < 0 {
		return nil, fmt.Errorf("tool %s: max tokens cannot be negative", def.Slug)
	}

	prompt, err := compilePrompt(def.Slug, def.PromptTemplate, fields)
	if err != nil {
		return nil, err
	}

	return &Tool{
		slug:         def.Slug,
		name:         strings.TrimSpace(def.Name),
		category:     strings.TrimSpace(def.Category),
		description:  def.Description,
		tags:         append([]string(nil), def.Tags...),
		fields:       fields,
		systemPrompt: def.SystemPrompt,
		prompt:       prompt,
		outputKey:    outputKey,
		temperature:  temperature,
		maxTokens:    maxTokens,
		model:        def.Model,
		public:       def.Public,
	}, nil
}

func normalizeFields(slug string, in []Field) ([]Field, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("tool %s: at least one field is required", slug)
	}

	seen := make(map[string]bool, len(in))
	hasRequired := false
	out := make([]Field, 0, len(in))
	for _, f := range in {
		if !fieldNamePattern.MatchString(f.Name) {
			return nil, fmt.Errorf("tool %s: invalid field name %q", slug, f.Name)
		}
		if reservedFieldNames[f.Name] {
			return nil, fmt.Errorf("tool %s: field name %q is reserved", slug, f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("tool %s: duplicate field %q", slug, f.Name)
		}
		seen[f.Name] = true

		if f.MaxLength <= 0 {
			f.MaxLength = DefaultFieldMaxLength
		}
		if f.Label == "" {
			f.Label = f.Name
		}
		hasRequired = hasRequired || f.Required
		out = append(out, f)
	}

	if !hasRequired {
		return nil, fmt.Errorf("tool %s: at least one field must be required", slug)
	}
	return out, nil
}

func (t *Tool) Slug() string         { return t.slug }
func (t *Tool) Name() string         { return t.name }
func (t *Tool) Category() string     { return t.category }
func (t *Tool) Description() string  { return t.description }
func (t *Tool) SystemPrompt() string { return t.systemPrompt }
func (t *Tool) OutputKey() OutputKey { return t.outputKey }
func (t *Tool) Temperature() float32 { return t.temperature }
func (t *Tool) MaxTokens() int       { return t.maxTokens }
func (t *Tool) Model() string        { return t.model }
func (t *Tool) IsPublic() bool       { return t.public }

func (t *Tool) Tags() []string {
	return append([]string(nil), t.tags...)
}

func (t *Tool) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// RequiredFields returns the names of the fields a run must provide.
func (t *Tool) RequiredFields() []string {
	var names []string
	for _, f := range t.fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
