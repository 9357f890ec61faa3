package usecases

import (
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/services/markdown"
)

type ToolDetail struct {
	Tool            *tool.Tool
	DescriptionHTML string
}

type GetToolUseCase struct {
	catalog  tool.Catalog
	markdown markdown.Service
	logger   logger.Interface
}

func NewGetToolUseCase(catalog tool.Catalog, md markdown.Service, logger logger.Interface) *GetToolUseCase {
	return &GetToolUseCase{
		catalog:  catalog,
		markdown: md,
		logger:   logger,
	}
}

func (uc *GetToolUseCase) Execute(slug string) (*ToolDetail, error) {
	t, ok := uc.catalog.Get(slug)
	if !ok {
		return nil, errors.NewNotFoundError("Tool not found")
	}

	html, err := uc.markdown.ToHTMLSanitized(t.Description())
	if err != nil {
		// The plain description is still usable.
		uc.logger.Warnw("failed to render tool description", "error", err, "tool", slug)
		html = ""
	}

	return &ToolDetail{Tool: t, DescriptionHTML: html}, nil
}
