package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imagegram/api/internal/config"
	"imagegram/api/internal/httpx"
	"imagegram/api/internal/models"
	"imagegram/api/internal/repository"
	"imagegram/api/internal/security"
)

const currentUserKey = "current_user"

// Auth gates a route on a valid bearer token that resolves to a live
// user. A forged, expired, or deleted-user token all read the same: 401.
func Auth(cfg *config.AppConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveBearer(c, cfg, users)
		if !ok {
			httpx.Abort(c, http.StatusUnauthorized, "invalid or expired token", "unauthenticated")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the requesting user when a valid token is
// present but never rejects the request.
func OptionalAuth(cfg *config.AppConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveBearer(c, cfg, users); ok {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

func resolveBearer(c *gin.Context, cfg *config.AppConfig, users *repository.UserRepository) (models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return models.User{}, false
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := security.ParseToken(tokenStr, cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, false
	}

	user, err := users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return models.User{}, false
	}

	return user, true
}

// CurrentUser returns the authenticated user attached by Auth or
// OptionalAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
