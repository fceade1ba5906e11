package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/studentlife/taskboard/internal/constants"
	apierrors "github.com/studentlife/taskboard/internal/errors"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/services"
)

// RequireAuth restores the identity behind the session's stored email.
// The email alone is trusted across requests; the password was checked at
// login.
func RequireAuth(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email, ok := session.Get(constants.SessionKeyEmail).(string)
		if !ok || email == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, _, err := identity.RestoreSession(email)
		if err != nil {
			apierrors.Unauthorized(c, "Session user no longer exists")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyRole, user.Role)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || role != models.RoleAdmin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

// GetRole retrieves the current user's role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}
