package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/application/preference/usecases"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type PreferenceHandler struct {
	getUseCase    getPreferencesUseCase
	updateUseCase updatePreferencesUseCase
	logger        logger.Interface
}

func NewPreferenceHandler(getUC getPreferencesUseCase, updateUC updatePreferencesUseCase, logger logger.Interface) *PreferenceHandler {
	return &PreferenceHandler{
		getUseCase:    getUC,
		updateUseCase: updateUC,
		logger:        logger,
	}
}

// UpdatePreferencesRequest is a partial update: omitted fields keep their value.
type UpdatePreferencesRequest struct {
	Theme              *string        `json:"theme" example:"dark"`
	Language           *string        `json:"language" example:"en"`
	EmailNotifications *bool          `json:"email_notifications"`
	DefaultCategory    *string        `json:"default_category" example:"analysis"`
	Settings           map[string]any `json:"settings"`
}

// GetPreferences godoc
// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=PreferencesResponse}
// @Router /api/preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	prefs, err := h.getUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toPreferencesResponse(prefs))
}

// UpdatePreferences godoc
// @Summary Update preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdatePreferencesRequest true "Changes"
// @Success 200 {object} utils.APIResponse{data=PreferencesResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /api/preferences [patch]
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdatePreferencesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	prefs, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdatePreferencesCommand{
		UserID: userID,
		Update: preference.Update{
			Theme:              req.Theme,
			Language:           req.Language,
			EmailNotifications: req.EmailNotifications,
			DefaultCategory:    req.DefaultCategory,
			Settings:           req.Settings,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "preferences updated", toPreferencesResponse(prefs))
}
