package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/postgres"
)

func TestRevokedTokenRepository_RevokeIsIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	exp := time.Now().Add(time.Hour)
	mock.ExpectExec("INSERT INTO revoked_tokens").
		WithArgs("jti-1", "u-1", exp, "User logout", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO revoked_tokens").
		WithArgs("jti-1", "u-1", exp, "User logout", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := postgres.NewRevokedTokenRepository(mock)
	tok := &entity.RevokedToken{JTI: "jti-1", UserID: "u-1", ExpiresAt: exp, Reason: "User logout", RevokedAt: time.Now()}
	require.NoError(t, repo.Revoke(context.Background(), tok))
	require.NoError(t, repo.Revoke(context.Background(), tok))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokedTokenRepository_IsRevoked(t *testing.T) {
	tests := []struct {
		name      string
		jti       string
		mockSetup func(pgxmock.PgxPoolIface)
		want      bool
		wantErr   bool
	}{
		{
			name: "revocado",
			jti:  "jti-1",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM revoked_tokens WHERE jti").WithArgs("jti-1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "vigente",
			jti:  "jti-2",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM revoked_tokens WHERE jti").WithArgs("jti-2").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "error de base",
			jti:  "jti-3",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM revoked_tokens WHERE jti").WithArgs("jti-3").
					WillReturnError(errors.New("conexión cerrada"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			repo := postgres.NewRevokedTokenRepository(mock)
			got, err := repo.IsRevoked(context.Background(), tt.jti)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
