package usecases

import (
	"sort"

	"github.com/consultkit/consultkit/internal/domain/tool"
)

type CategoryCount struct {
	Name  string
	Count int
}

type ListCategoriesUseCase struct {
	catalog tool.Catalog
}

func NewListCategoriesUseCase(catalog tool.Catalog) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{catalog: catalog}
}

func (uc *ListCategoriesUseCase) Execute() []CategoryCount {
	counts := map[string]int{}
	for _, t := range uc.catalog.All() {
		counts[t.Category()]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
