package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type AnalyticsHandler struct {
	overviewUseCase overviewUseCase
	logger          logger.Interface
}

func NewAnalyticsHandler(overviewUC overviewUseCase, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{overviewUseCase: overviewUC, logger: logger}
}

// Overview godoc
// @Summary Platform run overview
// @Tags Admin Analytics
// @Produce json
// @Security Bearer
// @Param days query int false "Window in days, 1 to 365" default(30)
// @Success 200 {object} utils.APIResponse{data=dto.OverviewDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	days, err := utils.ParseOptionalQueryInt(c, "days")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.overviewUseCase.Execute(c.Request.Context(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
