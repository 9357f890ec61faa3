package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/shared/config"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// SetAuthCookies sets access and refresh token as HttpOnly cookies
func SetAuthCookies(c *gin.Context, cookieConfig config.CookieConfig, accessToken, refreshToken string, accessMaxAge, refreshMaxAge int) {
	setHTTPOnlyCookie(c, cookieConfig, AccessTokenCookie, accessToken, accessMaxAge)
	setHTTPOnlyCookie(c, cookieConfig, RefreshTokenCookie, refreshToken, refreshMaxAge)
}

// ClearAuthCookies clears access and refresh token cookies
func ClearAuthCookies(c *gin.Context, cookieConfig config.CookieConfig) {
	setHTTPOnlyCookie(c, cookieConfig, AccessTokenCookie, "", -1)
	setHTTPOnlyCookie(c, cookieConfig, RefreshTokenCookie, "", -1)
}

// GetTokenFromCookie returns the cookie value or "" when absent.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

func setHTTPOnlyCookie(c *gin.Context, cookieConfig config.CookieConfig, name, value string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(name, value, maxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, true)
}

func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
