// Package catalog loads tool definitions from YAML into a tool.Catalog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

//go:embed seed/tools.yaml
var seedCatalog []byte

// Defaults fill in per-tool settings a catalog entry leaves out.
type Defaults struct {
	Temperature float32
	MaxTokens   int
}

type fileFormat struct {
	Tools []toolEntry `yaml:"tools"`
}

type toolEntry struct {
	Slug           string       `yaml:"slug"`
	Name           string       `yaml:"name"`
	Category       string       `yaml:"category"`
	Description    string       `yaml:"description"`
	Tags           []string     `yaml:"tags"`
	Public         bool         `yaml:"public"`
	OutputKey      string       `yaml:"output_key"`
	Temperature    *float32     `yaml:"temperature"`
	MaxTokens      int          `yaml:"max_tokens"`
	Model          string       `yaml:"model"`
	SystemPrompt   string       `yaml:"system_prompt"`
	PromptTemplate string       `yaml:"prompt"`
	Fields         []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Required    bool   `yaml:"required"`
	MaxLength   int    `yaml:"max_length"`
	Placeholder string `yaml:"placeholder"`
}

// Loader reads the built-in seed catalog and an optional override file.
type Loader struct {
	path     string
	defaults Defaults
	logger   logger.Interface
}

// NewLoader creates a loader. path may be empty to use only the seed catalog.
func NewLoader(path string, defaults Defaults, logger logger.Interface) *Loader {
	return &Loader{
		path:     path,
		defaults: defaults,
		logger:   logger,
	}
}

// Load validates every entry and returns the merged catalog. Entries in the
// external file replace seed entries with the same slug. All invalid
// entries are reported together.
func (l *Loader) Load() (*Registry, error) {
	entries, err := parse(seedCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in catalog: %w", err)
	}
	l.logger.Debugw("loaded built-in tool catalog", "count", len(entries))

	if l.path != "" {
		extra, err := l.readFile()
		if err != nil {
			return nil, err
		}
		entries = merge(entries, extra)
	}

	return l.build(entries)
}

func (l *Loader) readFile() ([]toolEntry, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warnw("tool catalog file not found, using built-in catalog", "path", l.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tool catalog %s: %w", l.path, err)
	}

	entries, err := parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tool catalog %s: %w", l.path, err)
	}
	l.logger.Infow("loaded tool catalog file", "file", l.path, "count", len(entries))
	return entries, nil
}

func (l *Loader) build(entries []toolEntry) (*Registry, error) {
	tools := make([]*tool.Tool, 0, len(entries))
	var errs []error

	for _, e := range entries {
		t, err := tool.NewTool(l.definition(e))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tools = append(tools, t)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid tool catalog: %w", errors.Join(errs...))
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("tool catalog is empty")
	}

	l.logger.Infow("tool catalog ready", "tools", len(tools))
	return NewRegistry(tools), nil
}

func (l *Loader) definition(e toolEntry) tool.Definition {
	fields := make([]tool.Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, tool.Field{
			Name:        f.Name,
			Label:       f.Label,
			Required:    f.Required,
			MaxLength:   f.MaxLength,
			Placeholder: f.Placeholder,
		})
	}

	temperature := e.Temperature
	if temperature == nil && l.defaults.Temperature > 0 {
		t := l.defaults.Temperature
		temperature = &t
	}
	maxTokens := e.MaxTokens
	if maxTokens == 0 {
		maxTokens = l.defaults.MaxTokens
	}

	return tool.Definition{
		Slug:           e.Slug,
		Name:           e.Name,
		Category:       e.Category,
		Description:    e.Description,
		Tags:           e.Tags,
		Fields:         fields,
		SystemPrompt:   e.SystemPrompt,
		PromptTemplate: e.PromptTemplate,
		OutputKey:      tool.OutputKey(e.OutputKey),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		Model:          e.Model,
		Public:         e.Public,
	}
}

func parse(content []byte) ([]toolEntry, error) {
	var f fileFormat
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(f.Tools))
	for i, e := range f.Tools {
		if first, ok := seen[e.Slug]; ok {
			return nil, fmt.Errorf("tool #%d: duplicate slug %q (first defined as tool #%d)", i+1, e.Slug, first+1)
		}
		seen[e.Slug] = i
	}
	return f.Tools, nil
}

// merge replaces base entries by slug and appends new ones in file order.
func merge(base, overlay []toolEntry) []toolEntry {
	index := make(map[string]int, len(base))
	for i, e := range base {
		index[e.Slug] = i
	}

	out := append([]toolEntry(nil), base...)
	for _, e := range overlay {
		if i, ok := index[e.Slug]; ok {
			out[i] = e
			continue
		}
		index[e.Slug] = len(out)
		out = append(out, e)
	}
	return out
}
