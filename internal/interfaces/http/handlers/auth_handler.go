package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/middleware"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/internal/usecases"
)

type authService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login exchanges the admin credential for a bearer token
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	// an empty body is reported as missing credentials, not as bad JSON
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, toValidationError(err))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrMissingCredentials):
			response.Error(c, domainerrors.BadRequest(domainerrors.CodeMissingCredentials, "Username and password are required"))
		case errors.Is(err, domainerrors.ErrInvalidCredentials):
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid credentials", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     authResponse.Token,
		"expiresIn": authResponse.ExpiresIn,
		"user": gin.H{
			"id":       authResponse.User.ID,
			"username": authResponse.User.Username,
			"role":     authResponse.User.Role,
		},
	})
}

// Verify echoes the identity carried by a valid token
// GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized(domainerrors.CodeNoToken, "Access token required"))
		return
	}

	body := gin.H{
		"valid": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"role":     claims.Role,
		},
	}
	if claims.ExpiresAt != nil {
		body["expiresAt"] = claims.ExpiresAt.Time.UTC()
	}
	response.Success(c, http.StatusOK, body)
}
