package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/mail"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
	"github.com/jhoicas/workforce-analytics-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, cambio de contraseña y logout con revocación por jti.
type AuthUseCase struct {
	users     repository.UserRepository
	revoked   repository.RevokedTokenRepository
	notifier  ports.Notifier
	jwtCfg    JWTConfig
	signinURL string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, revoked repository.RevokedTokenRepository, notifier ports.Notifier, jwtCfg JWTConfig, signinURL string) *AuthUseCase {
	return &AuthUseCase{users: users, revoked: revoked, notifier: notifier, jwtCfg: jwtCfg, signinURL: signinURL}
}

// Login verifica email/password y emite el token. El primer login limpia IsFirstLogin;
// MustReset viaja en el token mientras el usuario no cambie la contraseña temporal.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: your account is inactive, contact your administrator", domain.ErrInactiveAccount)
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	identity := jwt.Identity{
		UserID:       user.ID,
		Email:        user.Email,
		CompanyID:    user.CompanyID,
		Access:       user.AccessLevel,
		IsFirstLogin: user.IsFirstLogin,
		MustReset:    user.IsResetPasswordRequired,
	}
	if bu := strings.TrimSpace(user.BusinessUnit); bu != "" {
		identity.BusinessUnits = []string{bu}
	}
	token, _, expiresAt, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, identity)
	if err != nil {
		return nil, err
	}

	if user.IsFirstLogin {
		user.IsFirstLogin = false
		user.UpdatedAt = time.Now()
		if err := uc.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		MustReset: user.IsResetPasswordRequired,
		User:      *toUserResponse(user),
	}, nil
}

// ResetPassword cambia la contraseña del usuario autenticado y limpia el reset obligatorio.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, userID string, in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if in.NewPassword != in.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: your account is inactive", domain.ErrInactiveAccount)
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.IsResetPasswordRequired = false
	user.IsFirstLogin = false
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}

	msg, buildErr := mail.PasswordChanged(user.Email, user.FullName(), uc.signinURL)
	mail.Deliver(ctx, uc.notifier, "reset_password", msg, buildErr)
	return nil
}

// Logout revoca el jti hasta su vencimiento. Revocar dos veces no falla.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return fmt.Errorf("%w: token without id", domain.ErrUnauthorized)
	}
	err := uc.revoked.Revoke(ctx, &entity.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAtTime(),
		Reason:    "logout",
		RevokedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	log.Info().Str("user_id", claims.UserID).Msg("sesión cerrada")
	return nil
}

// IsRevoked consulta la lista de revocación; lo usa el middleware en cada request.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return uc.revoked.IsRevoked(ctx, jti)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                      u.ID,
		CompanyID:               u.CompanyID,
		EmployeeNumber:          u.EmployeeNumber,
		FirstName:               u.FirstName,
		MiddleName:              u.MiddleName,
		LastName:                u.LastName,
		FullName:                u.FullName(),
		Email:                   u.Email,
		BusinessUnit:            u.BusinessUnit,
		AccessLevel:             u.AccessLevel,
		ContactNumber:           u.ContactNumber,
		Location:                u.Location,
		IsActive:                u.IsActive,
		IsFirstLogin:            u.IsFirstLogin,
		IsResetPasswordRequired: u.IsResetPasswordRequired,
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}
}
