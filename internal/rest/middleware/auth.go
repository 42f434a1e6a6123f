package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk/internal/auth"
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/types"
)

// AuthenticateMiddleware authenticates requests with a JWT bearer token and
// resolves the actor's billing role once, at the boundary. Handlers and
// services read both from the request context and never look them up again.
func AuthenticateMiddleware(cfg *config.Configuration, resolver auth.RoleResolver, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := auth.ValidateToken(cfg, tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), userID)
		if err != nil {
			logger.Errorw("failed to resolve user role", "user_id", userID, "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
		ctx = context.WithValue(ctx, types.CtxUserRole, role)
		ctx = context.WithValue(ctx, types.CtxJWT, tokenString)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
