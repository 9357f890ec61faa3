package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type AnalyticsHandler struct {
	userAnalyticsUseCase userAnalyticsUseCase
	logger               logger.Interface
}

func NewAnalyticsHandler(userAnalyticsUC userAnalyticsUseCase, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{userAnalyticsUseCase: userAnalyticsUC, logger: logger}
}

// GetMyAnalytics godoc
// @Summary Personal run analytics
// @Tags Analytics
// @Produce json
// @Security Bearer
// @Param days query int false "Window in days, 1 to 365" default(30)
// @Success 200 {object} utils.APIResponse{data=dto.UserAnalyticsDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /api/analytics/me [get]
func (h *AnalyticsHandler) GetMyAnalytics(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	days, err := utils.ParseOptionalQueryInt(c, "days")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.userAnalyticsUseCase.Execute(c.Request.Context(), userID, days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
