package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	planusecases "github.com/consultkit/consultkit/internal/application/plan/usecases"
	userusecases "github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/interfaces/http/handlers"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// UserHandler lists users and manages their subscriptions.
type UserHandler struct {
	listUseCase   listUsersUseCase
	assignUseCase assignSubscriptionUseCase
	logger        logger.Interface
}

func NewUserHandler(listUC listUsersUseCase, assignUC assignSubscriptionUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		listUseCase:   listUC,
		assignUseCase: assignUC,
		logger:        logger,
	}
}

type AssignSubscriptionRequest struct {
	PlanID      uint       `json:"plan_id" binding:"required" example:"2"`
	Status      string     `json:"status" binding:"omitempty,oneof=active trialing past_due canceled" example:"active"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
}

// List godoc
// @Summary List users
// @Tags Admin Users
// @Produce json
// @Security Bearer
// @Param email query string false "Email contains"
// @Param role query string false "admin or user"
// @Param status query string false "active or inactive"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]handlers.UserResponse}}
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	result, err := h.listUseCase.Execute(c.Request.Context(), userusecases.ListUsersQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Email:    c.Query("email"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, handlers.ToUserResponses(result.Users), result.Total, result.Page, result.PageSize)
}

// AssignSubscription godoc
// @Summary Assign a plan to a user
// @Description Creates the user's subscription or moves it to another plan. Without period bounds usage resets every calendar month.
// @Tags Admin Users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Param request body AssignSubscriptionRequest true "Subscription"
// @Success 200 {object} utils.APIResponse{data=dto.SubscriptionDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/users/{id}/subscription [put]
func (h *UserHandler) AssignSubscription(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignSubscriptionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := planusecases.AssignSubscriptionCommand{UserID: userID, PlanID: req.PlanID, Status: req.Status}
	if (req.PeriodStart == nil) != (req.PeriodEnd == nil) {
		utils.ErrorResponseWithError(c, errors.NewValidationError("period_start and period_end must be set together"))
		return
	}
	if req.PeriodStart != nil {
		if !req.PeriodEnd.After(*req.PeriodStart) {
			utils.ErrorResponseWithError(c, errors.NewValidationError("period_end must be after period_start"))
			return
		}
		cmd.PeriodStart = req.PeriodStart.UTC()
		cmd.PeriodEnd = req.PeriodEnd.UTC()
	}

	result, err := h.assignUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("subscription assigned", "user_id", userID, "plan_id", req.PlanID)
	utils.SuccessResponse(c, http.StatusOK, "subscription assigned", result)
}
