package usecases

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type ListToolsQuery struct {
	Category string
	Query    string
	Page     int
	PageSize int
}

type ListToolsResult struct {
	Tools    []*tool.Tool
	Total    int64
	Page     int
	PageSize int
}

type ListToolsUseCase struct {
	catalog tool.Catalog
}

func NewListToolsUseCase(catalog tool.Catalog) *ListToolsUseCase {
	return &ListToolsUseCase{catalog: catalog}
}

// Execute filters by category and by every whitespace separated search
// term. Matching uses Unicode case folding over name, description, category
// and tags.
func (uc *ListToolsUseCase) Execute(q ListToolsQuery) *ListToolsResult {
	folder := cases.Fold()
	category := folder.String(strings.TrimSpace(q.Category))
	terms := strings.Fields(folder.String(q.Query))

	var matched []*tool.Tool
	for _, t := range uc.catalog.All() {
		if category != "" && folder.String(t.Category()) != category {
			continue
		}
		if len(terms) > 0 && !matchesAll(folder.String(searchText(t)), terms) {
			continue
		}
		matched = append(matched, t)
	}

	p := utils.ValidatePagination(q.Page, q.PageSize)
	start, end := utils.ApplyPagination(len(matched), p)
	return &ListToolsResult{
		Tools:    matched[start:end],
		Total:    int64(len(matched)),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

func searchText(t *tool.Tool) string {
	parts := append([]string{t.Name(), t.Description(), t.Category()}, t.Tags()...)
	return strings.Join(parts, "\n")
}

func matchesAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
