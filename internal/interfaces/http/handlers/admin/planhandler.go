// Package admin provides HTTP handlers for administrative operations.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/application/plan/usecases"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// PlanHandler handles plan management.
type PlanHandler struct {
	createUseCase    createPlanUseCase
	updateUseCase    updatePlanUseCase
	getUseCase       getPlanUseCase
	listUseCase      listPlansUseCase
	deleteUseCase    deletePlanUseCase
	setStatusUseCase setPlanStatusUseCase
	setToolsUseCase  setPlanToolsUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createUC createPlanUseCase,
	updateUC updatePlanUseCase,
	getUC getPlanUseCase,
	listUC listPlansUseCase,
	deleteUC deletePlanUseCase,
	setStatusUC setPlanStatusUseCase,
	setToolsUC setPlanToolsUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createUseCase:    createUC,
		updateUseCase:    updateUC,
		getUseCase:       getUC,
		listUseCase:      listUC,
		deleteUseCase:    deleteUC,
		setStatusUseCase: setStatusUC,
		setToolsUseCase:  setToolsUC,
		logger:           logger,
	}
}

// PlanRequest is the body for creating and updating a plan.
type PlanRequest struct {
	Slug             string `json:"slug" binding:"required,max=50,slug" example:"pro"`
	Name             string `json:"name" binding:"required,max=100" example:"Pro"`
	Description      string `json:"description" binding:"max=1000"`
	Price            uint64 `json:"price" example:"1900"`
	Currency         string `json:"currency" binding:"omitempty,len=3" example:"USD"`
	Interval         string `json:"interval" binding:"omitempty,oneof=month year" example:"month"`
	IsDefault        bool   `json:"is_default"`
	AllTools         bool   `json:"all_tools"`
	DefaultToolLimit int    `json:"default_tool_limit" binding:"min=0" example:"50"`
	SortOrder        int    `json:"sort_order"`
}

func (r PlanRequest) fields() usecases.PlanFields {
	return usecases.PlanFields{
		Slug:             r.Slug,
		Name:             r.Name,
		Description:      r.Description,
		Price:            r.Price,
		Currency:         r.Currency,
		Interval:         r.Interval,
		IsDefault:        r.IsDefault,
		AllTools:         r.AllTools,
		DefaultToolLimit: r.DefaultToolLimit,
		SortOrder:        r.SortOrder,
	}
}

type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive" example:"inactive"`
}

type PlanToolRequest struct {
	ToolSlug string `json:"tool_slug" binding:"required" example:"swot-analysis"`
	Enabled  bool   `json:"enabled"`
	// MonthlyLimit omitted inherits the plan's default limit, 0 means unlimited.
	MonthlyLimit *int `json:"monthly_limit" example:"20"`
}

type SetPlanToolsRequest struct {
	Tools []PlanToolRequest `json:"tools" binding:"dive"`
}

// List godoc
// @Summary List plans
// @Tags Admin Plans
// @Produce json
// @Security Bearer
// @Param status query string false "active or inactive"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.PlanDTO}}
// @Router /admin/plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListPlansQuery{
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary Get a plan with its tool rules
// @Tags Admin Plans
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create godoc
// @Summary Create a plan
// @Tags Admin Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body PlanRequest true "Plan"
// @Success 201 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreatePlanCommand{PlanFields: req.fields()})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "plan created")
}

// Update godoc
// @Summary Update a plan
// @Tags Admin Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Param request body PlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "error", err, "plan_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdatePlanCommand{ID: id, PlanFields: req.fields()})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan updated", result)
}

// Delete godoc
// @Summary Delete a plan
// @Description The default plan and plans with subscribers cannot be deleted.
// @Tags Admin Plans
// @Security Bearer
// @Param id path int true "Plan ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// UpdateStatus godoc
// @Summary Activate or deactivate a plan
// @Tags Admin Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Param request body UpdatePlanStatusRequest true "Status"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 409 {object} utils.APIResponse
// @Router /admin/plans/{id}/status [patch]
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setStatusUseCase.Execute(c.Request.Context(), usecases.SetPlanStatusCommand{ID: id, Status: req.Status})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan status updated", result)
}

// SetTools godoc
// @Summary Replace a plan's tool rules
// @Tags Admin Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Param request body SetPlanToolsRequest true "Tool rules"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/plans/{id}/tools [put]
func (h *PlanHandler) SetTools(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetPlanToolsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	inputs := make([]usecases.PlanToolInput, 0, len(req.Tools))
	for _, t := range req.Tools {
		inputs = append(inputs, usecases.PlanToolInput{ToolSlug: t.ToolSlug, Enabled: t.Enabled, MonthlyLimit: t.MonthlyLimit})
	}

	result, err := h.setToolsUseCase.Execute(c.Request.Context(), usecases.SetPlanToolsCommand{PlanID: id, Tools: inputs})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan tools updated", result)
}
