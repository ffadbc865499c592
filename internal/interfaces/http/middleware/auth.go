package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ClaimsKey holds the decoded *jwt.Claims
	ClaimsKey = "claims"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UsernameKey is the context key for the username
	UsernameKey = "username"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// AuthMiddleware requires a valid bearer token on every request it guards.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, jwtService)
	}
}

// RequireAuth lets reads through and demands a valid bearer token for
// every other method.
func RequireAuth(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		authenticate(c, jwtService)
	}
}

func authenticate(c *gin.Context, jwtService *jwt.JWTService) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeNoToken, "Access token required"))
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if tokenString == "" {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeNoToken, "Access token required"))
		return
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			response.Error(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeTokenExpired, "Token has expired", domainerrors.ErrTokenExpired))
			return
		}
		response.Error(c, domainerrors.Forbidden(domainerrors.CodeInvalidToken, "Invalid token"))
		return
	}

	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID)
	c.Set(UsernameKey, claims.Username)
	c.Set(UserRoleKey, claims.Role)

	c.Next()
}

// GetClaims returns the claims set by AuthMiddleware or RequireAuth.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
