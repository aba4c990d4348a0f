package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
)

// Context keys set by the session middleware
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "currentUser"
)

// AuthMiddleware resolves the session cookie into the current user
type AuthMiddleware struct {
	authService services.AuthService
	cookieName  string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cookieName:  cookieName,
	}
}

// SessionAuth requires a valid session cookie. On success the user and
// their ID are stored in the gin context.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, err := m.authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			// Expired and unknown sessions look the same to the client.
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeSessionExpired, "Session invalid or expired")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalSession resolves the session when a cookie is present but
// never rejects the request. Public reads use it to personalize output.
func (m *AuthMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err == nil && token != "" {
			if user, err := m.authService.ResolveSession(c.Request.Context(), token); err == nil {
				c.Set(ContextUserIDKey, user.ID)
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
// The second result is false on routes that ran without SessionAuth.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CurrentUser returns the authenticated user from the context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
