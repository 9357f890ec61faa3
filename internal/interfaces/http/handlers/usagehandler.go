package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type UsageHandler struct {
	summaryUseCase usageSummaryUseCase
	quota          quotaEvaluator
	catalog        tool.Catalog
	logger         logger.Interface
}

func NewUsageHandler(summaryUC usageSummaryUseCase, quota quotaEvaluator, catalog tool.Catalog, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		summaryUseCase: summaryUC,
		quota:          quota,
		catalog:        catalog,
		logger:         logger,
	}
}

// GetUsage godoc
// @Summary Usage in the current period
// @Description Lists every tool the caller's plan allows with its limit and usage in the current billing period.
// @Tags Usage
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=UsageSummaryResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /api/usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	summary, err := h.summaryUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := UsageSummaryResponse{
		PeriodStart: summary.Period.Start,
		PeriodEnd:   summary.Period.End,
		Tools:       make([]QuotaResponse, 0, len(summary.Tools)),
	}
	if summary.Plan != nil {
		resp.Plan = &UsagePlanResponse{ID: summary.Plan.ID(), Slug: summary.Plan.Slug(), Name: summary.Plan.Name()}
	}
	for _, tq := range summary.Tools {
		resp.Tools = append(resp.Tools, toQuotaResponse(tq.ToolName, tq.Quota))
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// GetToolUsage godoc
// @Summary Quota for one tool
// @Tags Usage
// @Produce json
// @Security Bearer
// @Param slug path string true "Tool slug"
// @Success 200 {object} utils.APIResponse{data=QuotaResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/usage/tools/{slug} [get]
func (h *UsageHandler) GetToolUsage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	t, found := h.catalog.Get(c.Param("slug"))
	if !found {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("Tool not found"))
		return
	}

	q, err := h.quota.Evaluate(c.Request.Context(), userID, t.Slug())
	if err != nil {
		h.logger.Errorw("failed to evaluate quota", "error", err, "user_id", userID, "tool", t.Slug())
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toQuotaResponse(t.Name(), q))
}
