package repository

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas por email no distinguen mayúsculas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListByCompany usuarios ordenados por número de empleado.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// ListActiveSuperUsers superusuarios activos ordenados por número de empleado.
	ListActiveSuperUsers(ctx context.Context, companyID string) ([]*entity.User, error)
	MaxEmployeeNumber(ctx context.Context, companyID string) (int, error)
}

// RevokedTokenRepository lista de revocación de jti.
type RevokedTokenRepository interface {
	// Revoke es idempotente: revocar dos veces el mismo jti no falla.
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
