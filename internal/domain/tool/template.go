package tool

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"text/template/parse"
)

var promptFuncs = template.FuncMap{
	// default returns fallback when value is blank: {{.industry | default "any industry"}}
	"default": func(fallback, value string) string {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		return value
	},
}

func compilePrompt(slug, text string, fields []Field) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("tool %s: prompt template is required", slug)
	}

	tmpl, err := template.New(slug).Funcs(promptFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("tool %s: parse prompt template: %w", slug, err)
	}
	if len(tmpl.Templates()) > 1 {
		return nil, fmt.Errorf("tool %s: prompt template may not define nested templates", slug)
	}

	declared := make(map[string]bool, len(fields))
	sample := make(map[string]string, len(fields))
	for _, f := range fields {
		declared[f.Name] = true
		sample[f.Name] = f.Label
	}

	checker := &refChecker{declared: declared}
	checker.walk(tmpl.Tree.Root, true)
	if len(checker.undeclared) > 0 {
		return nil, fmt.Errorf("tool %s: %w: %s", slug, ErrUndeclaredField, strings.Join(checker.undeclared, ", "))
	}

	// Every branch guarded by a field sees a non-empty value here.
	if err := tmpl.Execute(io.Discard, sample); err != nil {
		return nil, fmt.Errorf("tool %s: prompt template does not execute: %w", slug, err)
	}

	return tmpl, nil
}

// refChecker collects top-level field references that are not declared.
// Inside range and with blocks dot is rebound, so only $-rooted references
// are checked there.
type refChecker struct {
	declared   map[string]bool
	undeclared []string
}

func (c *refChecker) ref(name string) {
	if c.declared[name] {
		return
	}
	for _, u := range c.undeclared {
		if u == name {
			return
		}
	}
	c.undeclared = append(c.undeclared, name)
}

func (c *refChecker) walk(node parse.Node, rootDot bool) {
	switch n := node.(type) {
	case nil:
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			c.walk(child, rootDot)
		}
	case *parse.ActionNode:
		c.walk(n.Pipe, rootDot)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			c.walk(cmd, rootDot)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			c.walk(arg, rootDot)
		}
	case *parse.FieldNode:
		if rootDot {
			c.ref(n.Ident[0])
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			c.ref(n.Ident[1])
		}
	case *parse.ChainNode:
		c.walk(n.Node, rootDot)
	case *parse.IfNode:
		c.walk(n.Pipe, rootDot)
		c.walk(n.List, rootDot)
		c.walk(n.ElseList, rootDot)
	case *parse.RangeNode:
		c.walk(n.Pipe, rootDot)
		c.walk(n.List, false)
		c.walk(n.ElseList, rootDot)
	case *parse.WithNode:
		c.walk(n.Pipe, rootDot)
		c.walk(n.List, false)
		c.walk(n.ElseList, rootDot)
	}
}

// Render fills the prompt template. values must hold every declared field;
// ParseInput guarantees that.
func (t *Tool) Render(values map[string]string) (string, error) {
	var sb strings.Builder
	if err := t.prompt.Execute(&sb, values); err != nil {
		return "", fmt.Errorf("render prompt for %s: %w", t.slug, err)
	}
	return sb.String(), nil
}
