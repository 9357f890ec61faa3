package catalog

import (
	"sort"

	"github.com/consultkit/consultkit/internal/domain/tool"
)

// Registry is an immutable in-memory tool.Catalog.
type Registry struct {
	bySlug  map[string]*tool.Tool
	ordered []*tool.Tool
}

func NewRegistry(tools []*tool.Tool) *Registry {
	ordered := append([]*tool.Tool(nil), tools...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Category() != ordered[j].Category() {
			return ordered[i].Category() < ordered[j].Category()
		}
		return ordered[i].Name() < ordered[j].Name()
	})

	bySlug := make(map[string]*tool.Tool, len(ordered))
	for _, t := range ordered {
		bySlug[t.Slug()] = t
	}
	return &Registry{bySlug: bySlug, ordered: ordered}
}

func (r *Registry) Get(slug string) (*tool.Tool, bool) {
	t, ok := r.bySlug[slug]
	return t, ok
}

func (r *Registry) All() []*tool.Tool {
	return append([]*tool.Tool(nil), r.ordered...)
}

func (r *Registry) Len() int {
	return len(r.ordered)
}
