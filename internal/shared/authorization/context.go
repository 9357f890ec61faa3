package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// GetRole reads the caller's role from the gin context, defaulting to user.
func GetRole(c *gin.Context) UserRole {
	return ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}
