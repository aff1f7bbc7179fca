package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"github.com/sangkips/laundromart-api/pkg/utils"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	ContextPrincipal = "principal"
)

// RoleResolver looks up the application role of an authenticated user
type RoleResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (enum.AppRole, error)
}

// AuthMiddleware validates the bearer token issued by the auth provider and
// attaches the caller's principal to the request
func AuthMiddleware(jwtManager *utils.JWTManager, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role, err := roles.Resolve(c.Request.Context(), userID)
		if err != nil {
			zap.L().Error("role lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
			response.InternalServerError(c, "Could not resolve user role")
			c.Abort()
			return
		}

		p := access.Principal{UserID: userID, Email: claims.Email, Role: role}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, role)
		c.Set(ContextPrincipal, p)
		c.Request = c.Request.WithContext(access.WithPrincipal(c.Request.Context(), p))

		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := c.Get(ContextPrincipal)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		if principal, _ := p.(access.Principal); !principal.IsAdmin() {
			response.Forbidden(c, "Only administrators can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
