package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/application/tool/dto"
	"github.com/consultkit/consultkit/internal/application/tool/usecases"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// maxRunBodyBytes caps a tool run request body.
const maxRunBodyBytes = 1 << 20

type ToolHandler struct {
	listToolsUseCase      listToolsUseCase
	listCategoriesUseCase listCategoriesUseCase
	getToolUseCase        getToolUseCase
	runToolUseCase        runToolUseCase
	logger                logger.Interface
}

func NewToolHandler(
	listToolsUC listToolsUseCase,
	listCategoriesUC listCategoriesUseCase,
	getToolUC getToolUseCase,
	runToolUC runToolUseCase,
	logger logger.Interface,
) *ToolHandler {
	return &ToolHandler{
		listToolsUseCase:      listToolsUC,
		listCategoriesUseCase: listCategoriesUC,
		getToolUseCase:        getToolUC,
		runToolUseCase:        runToolUC,
		logger:                logger,
	}
}

// ListTools godoc
// @Summary List tools
// @Description Lists catalog tools, optionally filtered by category and a free text query over name, description and tags.
// @Tags Tools
// @Produce json
// @Param category query string false "Category"
// @Param q query string false "Search terms"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.ToolSummaryDTO}}
// @Router /api/tools [get]
func (h *ToolHandler) ListTools(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	result := h.listToolsUseCase.Execute(usecases.ListToolsQuery{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})

	utils.ListSuccessResponse(c, dto.ToToolSummaryDTOs(result.Tools), result.Total, result.Page, result.PageSize)
}

// ListCategories godoc
// @Summary List tool categories
// @Tags Tools
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.CategoryDTO}
// @Router /api/tools/categories [get]
func (h *ToolHandler) ListCategories(c *gin.Context) {
	counts := h.listCategoriesUseCase.Execute()
	out := make([]dto.CategoryDTO, 0, len(counts))
	for _, cc := range counts {
		out = append(out, dto.CategoryDTO{Name: cc.Name, Count: cc.Count})
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

// GetTool godoc
// @Summary Get a tool
// @Description Returns the tool's metadata, input fields and rendered description.
// @Tags Tools
// @Produce json
// @Param slug path string true "Tool slug"
// @Success 200 {object} utils.APIResponse{data=dto.ToolDetailDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /api/tools/{slug} [get]
func (h *ToolHandler) GetTool(c *gin.Context) {
	detail, err := h.getToolUseCase.Execute(c.Param("slug"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToToolDetailDTO(detail.Tool, detail.DescriptionHTML))
}

// RunTool godoc
// @Summary Run a tool
// @Description Runs the tool against the completion provider. Public tools may be run anonymously, every other tool requires a signed-in user whose plan allows it.
// @Description The response data echoes the inputs and carries the tool's output under its output key plus a timestamp.
// @Tags Tools
// @Accept json
// @Produce json
// @Param slug path string true "Tool slug"
// @Param request body object true "Tool inputs keyed by field name"
// @Success 200 {object} utils.APIResponse{data=object}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/tools/{slug} [post]
func (h *ToolHandler) RunTool(c *gin.Context) {
	body, err := decodeRunBody(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RunToolCommand{Slug: c.Param("slug"), Body: body}
	if userID, ok := middleware.CurrentUserID(c); ok {
		cmd.UserID = &userID
	}

	result, err := h.runToolUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Payload())
}

// decodeRunBody reads the request body as a JSON object. An empty body is
// treated as an empty object so the run reports missing fields.
func decodeRunBody(c *gin.Context) (map[string]any, error) {
	body := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxRunBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if stderrors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errors.NewValidationError("Invalid JSON body")
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
