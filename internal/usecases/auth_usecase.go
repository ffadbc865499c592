package usecases

import (
	"context"
	"crypto/subtle"
	"strings"

	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/pkg/crypto"
	"profile-api.backend/pkg/jwt"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	admin      entities.AdminUser
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase for the single configured admin
func NewAuthUsecase(admin entities.AdminUser, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		admin:      admin,
		jwtService: jwtService,
	}
}

// Login checks the credential against the configured admin and issues a token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	_ = ctx
	if input == nil || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(u.admin.Username)) != 1 {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if u.admin.PasswordHash == "" || !crypto.CheckPassword(input.Password, u.admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(u.admin.ID, u.admin.Username, u.admin.Role)
	if err != nil {
		return nil, err
	}

	user := u.admin
	return &entities.AuthResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.Expiry().Seconds()),
		User:      &user,
	}, nil
}
