package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelfmaster/backend/internal/application/identity"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ClaimsKey     = "auth_claims"
	UserIDKey     = "auth_user_id"
	UsernameKey   = "auth_username"
	RoleKey       = "auth_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	AuthService *identity.AuthService
	// SkipPaths are exact paths that do not require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that do not require authentication
	SkipPathPrefixes []string
}

// DefaultAuthConfig returns the default skip lists for the API surface
func DefaultAuthConfig(authService *identity.AuthService) AuthConfig {
	return AuthConfig{
		AuthService: authService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// Auth validates the bearer token and stores its claims in the request
// context
func Auth(authService *identity.AuthService) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(authService))
}

// AuthWithConfig creates the authentication middleware with custom config
func AuthWithConfig(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		token := strings.TrimPrefix(header, BearerPrefix)
		if token == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.AuthService.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. It must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				shared.CodeForbidden,
				"Insufficient role for this operation",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetRole returns the authenticated user's role from the context
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		shared.CodeUnauthorized,
		message,
		GetRequestID(c),
	))
}
