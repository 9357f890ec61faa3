package dto

import (
	"github.com/consultkit/consultkit/internal/domain/tool"
)

type FieldDTO struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	MaxLength   int    `json:"max_length"`
	Placeholder string `json:"placeholder,omitempty"`
}

type ToolSummaryDTO struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Public      bool     `json:"public"`
	OutputKey   string   `json:"output_key"`
}

type ToolDetailDTO struct {
	ToolSummaryDTO
	DescriptionHTML string     `json:"description_html"`
	Fields          []FieldDTO `json:"fields"`
	RequiredFields  []string   `json:"required_fields"`
}

type CategoryDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func ToToolSummaryDTO(t *tool.Tool) ToolSummaryDTO {
	tags := t.Tags()
	if tags == nil {
		tags = []string{}
	}
	return ToolSummaryDTO{
		Slug:        t.Slug(),
		Name:        t.Name(),
		Category:    t.Category(),
		Description: t.Description(),
		Tags:        tags,
		Public:      t.IsPublic(),
		OutputKey:   string(t.OutputKey()),
	}
}

func ToToolSummaryDTOs(tools []*tool.Tool) []ToolSummaryDTO {
	out := make([]ToolSummaryDTO, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToToolSummaryDTO(t))
	}
	return out
}

func ToToolDetailDTO(t *tool.Tool, descriptionHTML string) ToolDetailDTO {
	fields := t.Fields()
	out := ToolDetailDTO{
		ToolSummaryDTO:  ToToolSummaryDTO(t),
		DescriptionHTML: descriptionHTML,
		Fields:          make([]FieldDTO, 0, len(fields)),
		RequiredFields:  t.RequiredFields(),
	}
	for _, f := range fields {
		out.Fields = append(out.Fields, FieldDTO{
			Name:        f.Name,
			Label:       f.Label,
			Required:    f.Required,
			MaxLength:   f.MaxLength,
			Placeholder: f.Placeholder,
		})
	}
	if out.RequiredFields == nil {
		out.RequiredFields = []string{}
	}
	return out
}
