package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/interfaces/http/response"
	"mercato.backend/pkg/jwt"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server-side session id instead of a bearer token
	SessionHeader = "X-Session-ID"
	// UserIDKey is the context key for user ID
	UserIDKey = "user_id"
	// UsernameKey is the context key for the username
	UsernameKey = "username"
	// UserRoleKey is the context key for user role
	UserRoleKey = "user_role"
)

// SessionReader resolves a session id to the stored login.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts either a bearer JWT or a session id issued at login.
// sessions may be nil when Redis is not configured.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, sessions)
		if err != nil {
			logger.Debug(c.Request.Context(), "Authentication failed")
			response.Error(c, err)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "token has expired"
			}
			response.Error(c, domainerrors.Unauthenticated(message))
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Error(c, domainerrors.Unauthenticated("invalid token"))
			c.Abort()
			return
		}
		role := entities.Role(claims.RoleID)
		if !role.IsValid() {
			response.Error(c, domainerrors.Unauthenticated("invalid token"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRoleKey, role)

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractToken(c *gin.Context, sessions SessionReader) (string, error) {
	if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
		session, err := sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, redis.ErrSessionNotFound) {
				return "", domainerrors.Unauthenticated("session not found or expired")
			}
			return "", err
		}
		return session.AccessToken, nil
	}

	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", domainerrors.Unauthenticated("authorization header is required")
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", domainerrors.Unauthenticated("invalid authorization format, use: Bearer <token>")
	}
	return strings.TrimPrefix(authHeader, BearerPrefix), nil
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (entities.Role, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return 0, false
	}
	r, ok := role.(entities.Role)
	return r, ok
}

// GetActor assembles the authenticated caller.
func GetActor(c *gin.Context) (entities.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return entities.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return entities.Actor{}, false
	}
	return entities.Actor{UserID: userID, Username: c.GetString(UsernameKey), Role: role}, true
}

// RequirePermission rejects callers whose role may not perform op.
func RequirePermission(op rbac.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRole(c)
		if !exists {
			response.Error(c, domainerrors.Unauthenticated("user role not found"))
			c.Abort()
			return
		}
		if err := rbac.Authorize(role, op); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
