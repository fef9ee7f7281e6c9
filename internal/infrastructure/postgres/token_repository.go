package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var _ repository.RevokedTokenRepository = (*RevokedTokenRepo)(nil)

// RevokedTokenRepo lista de revocación de tokens (logout).
type RevokedTokenRepo struct {
	db DB
}

// NewRevokedTokenRepository construye el adaptador de revocación.
func NewRevokedTokenRepository(db DB) *RevokedTokenRepo {
	return &RevokedTokenRepo{db: db}
}

// Revoke registra el jti; si ya estaba revocado no hace nada.
func (r *RevokedTokenRepo) Revoke(ctx context.Context, t *entity.RevokedToken) error {
	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, reason, revoked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (jti) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, t.JTI, nullIfEmpty(t.UserID), t.ExpiresAt, t.Reason, t.RevokedAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la lista.
func (r *RevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return ok, nil
}
