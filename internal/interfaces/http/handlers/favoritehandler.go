package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type FavoriteHandler struct {
	addUseCase    addFavoriteUseCase
	removeUseCase removeFavoriteUseCase
	listUseCase   listFavoritesUseCase
	logger        logger.Interface
}

func NewFavoriteHandler(addUC addFavoriteUseCase, removeUC removeFavoriteUseCase, listUC listFavoritesUseCase, logger logger.Interface) *FavoriteHandler {
	return &FavoriteHandler{
		addUseCase:    addUC,
		removeUseCase: removeUC,
		listUseCase:   listUC,
		logger:        logger,
	}
}

// ListFavorites godoc
// @Summary List favorite tools
// @Tags Favorites
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]usecases.FavoriteDTO}
// @Router /api/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	favorites, err := h.listUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", favorites)
}

// AddFavorite godoc
// @Summary Add a favorite tool
// @Description Adding a tool twice is a no-op.
// @Tags Favorites
// @Produce json
// @Security Bearer
// @Param slug path string true "Tool slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/favorites/{slug} [put]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.addUseCase.Execute(c.Request.Context(), userID, c.Param("slug")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "favorite added", nil)
}

// RemoveFavorite godoc
// @Summary Remove a favorite tool
// @Tags Favorites
// @Security Bearer
// @Param slug path string true "Tool slug"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /api/favorites/{slug} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.removeUseCase.Execute(c.Request.Context(), userID, c.Param("slug")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
