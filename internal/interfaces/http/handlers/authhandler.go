package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/config"
	"github.com/consultkit/consultkit/internal/shared/constants"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase      registerUseCase
	loginUseCase         loginUseCase
	refreshTokenUseCase  refreshTokenUseCase
	logoutUseCase        logoutUseCase
	getUserUseCase       getUserUseCase
	initiateOAuthUseCase initiateOAuthUseCase
	handleOAuthUseCase   handleOAuthUseCase
	cookieConfig         config.CookieConfig
	jwtConfig            config.JWTConfig
	frontendCallbackURL  string
	logger               logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	getUserUC getUserUseCase,
	initiateOAuthUC initiateOAuthUseCase,
	handleOAuthUC handleOAuthUseCase,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	frontendCallbackURL string,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:      registerUC,
		loginUseCase:         loginUC,
		refreshTokenUseCase:  refreshTokenUC,
		logoutUseCase:        logoutUC,
		getUserUseCase:       getUserUC,
		initiateOAuthUseCase: initiateOAuthUC,
		handleOAuthUseCase:   handleOAuthUC,
		cookieConfig:         cookieConfig,
		jwtConfig:            jwtConfig,
		frontendCallbackURL:  frontendCallbackURL,
		logger:               logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Name     string `json:"name" binding:"omitempty,max=100" example:"Ada Lovelace"`
	Password string `json:"password" binding:"required,min=8" example:"correct-horse"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Register godoc
// @Summary Register with email and password
// @Description Creates an account, signs it in and sets the auth cookies. The first account becomes admin.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration"
// @Success 201 {object} utils.APIResponse{data=AuthResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterWithPasswordCommand{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	utils.CreatedResponse(c, toAuthResponse(result), "registration successful")
}

// Login godoc
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=AuthResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Errorw("login failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	utils.SuccessResponse(c, http.StatusOK, "login successful", toAuthResponse(result))
}

// RefreshToken godoc
// @Summary Rotate the refresh token
// @Description Reads the refresh_token cookie, or the body when the cookie is absent.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest false "Refresh token"
// @Success 200 {object} utils.APIResponse{data=AuthResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{RefreshToken: refreshToken})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("token refresh failed", "error", err)
		}
		utils.ClearAuthCookies(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result)
	utils.SuccessResponse(c, http.StatusOK, "token refreshed successfully", toAuthResponse(result))
}

// Logout godoc
// @Summary Logout
// @Description Revokes the current session when one is attached and always clears the auth cookies.
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := c.GetString(constants.ContextKeySessionID); sessionID != "" {
		if err := h.logoutUseCase.Execute(c.Request.Context(), usecases.LogoutCommand{SessionID: sessionID}); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// GetCurrentUser godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=UserResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	u, err := h.getUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ToUserResponse(u))
}

// InitiateGoogleOAuth godoc
// @Summary Start Google sign-in
// @Description Redirects to Google's consent screen.
// @Tags Auth
// @Success 307
// @Failure 400 {object} utils.APIResponse
// @Router /auth/oauth/google [get]
func (h *AuthHandler) InitiateGoogleOAuth(c *gin.Context) {
	result, err := h.initiateOAuthUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

// HandleGoogleCallback godoc
// @Summary Google sign-in callback
// @Description Completes sign-in, sets the auth cookies and redirects to the frontend with status=success or error=<code>.
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "State"
// @Success 302
// @Router /auth/oauth/google/callback [get]
func (h *AuthHandler) HandleGoogleCallback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		h.logger.Warnw("oauth provider returned error", "error", providerErr)
		h.redirectToFrontend(c, url.Values{"error": {"access_denied"}})
		return
	}

	result, err := h.handleOAuthUseCase.Execute(c.Request.Context(), usecases.HandleOAuthCallbackCommand{
		Code:      c.Query("code"),
		State:     c.Query("state"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.logger.Warnw("oauth callback failed", "error", err)
		code := string(errors.ErrorTypeInternal)
		if appErr := errors.GetAppError(err); appErr != nil {
			code = string(appErr.Type)
		}
		h.redirectToFrontend(c, url.Values{"error": {code}})
		return
	}

	h.setAuthCookies(c, result)
	params := url.Values{"status": {"success"}}
	if result.IsNewUser {
		params.Set("new_user", "true")
	}
	h.redirectToFrontend(c, params)
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, result *usecases.AuthResult) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, result.AccessToken, result.RefreshToken, accessMaxAge, refreshMaxAge)
}

func (h *AuthHandler) redirectToFrontend(c *gin.Context, params url.Values) {
	target, err := url.Parse(h.frontendCallbackURL)
	if err != nil || h.frontendCallbackURL == "" {
		if params.Get("status") == "success" {
			utils.SuccessResponse(c, http.StatusOK, "login successful", nil)
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "OAuth sign-in failed")
		return
	}

	q := target.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	target.RawQuery = q.Encode()
	c.Redirect(http.StatusFound, target.String())
}
