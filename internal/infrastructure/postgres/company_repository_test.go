package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/postgres"
)

var companyCols = []string{"id", "name", "abn", "contact_number", "location", "parent_company_id", "created_at"}

func TestCompanyRepository_GetByID(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func(pgxmock.PgxPoolIface)
		want      *entity.Company
	}{
		{
			name: "subempresa encontrada",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(companyCols).
					AddRow("sub-1", "Acme North", "12345678901", "", "Perth", "parent-1", now)
				mock.ExpectQuery("FROM companies WHERE id").WithArgs("sub-1").WillReturnRows(rows)
			},
			want: &entity.Company{
				ID: "sub-1", Name: "Acme North", ABN: "12345678901", Location: "Perth",
				ParentCompanyID: "parent-1", CreatedAt: now,
			},
		},
		{
			name: "no existe devuelve nil sin error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM companies WHERE id").WithArgs("sub-1").
					WillReturnRows(pgxmock.NewRows(companyCols))
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			repo := postgres.NewCompanyRepository(mock)
			got, err := repo.GetByID(context.Background(), "sub-1")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if got != nil {
				assert.True(t, got.IsSubCompany())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCompanyRepository_Create_RootCompanyHasNullParent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO companies").
		WithArgs("c-1", "Acme", "", "", "", nil, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := postgres.NewCompanyRepository(mock)
	err = repo.Create(context.Background(), &entity.Company{ID: "c-1", Name: "Acme", CreatedAt: now})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_ListChildren(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows(companyCols).
		AddRow("s-a", "Alpha", "", "", "", "p-1", now).
		AddRow("s-b", "Beta", "", "", "", "p-1", now)
	mock.ExpectQuery("WHERE parent_company_id = \\$1 ORDER BY name").WithArgs("p-1").WillReturnRows(rows)

	repo := postgres.NewCompanyRepository(mock)
	list, err := repo.ListChildren(context.Background(), "p-1")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_ListSubCompanyIDsForUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM company_superuser_assignments a").
		WithArgs("u-1", "p-1").
		WillReturnRows(pgxmock.NewRows([]string{"company_id"}).AddRow("s-1").AddRow("s-2"))

	repo := postgres.NewAssignmentRepository(mock)
	ids, err := repo.ListSubCompanyIDsForUser(context.Background(), "u-1", "p-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM company_superuser_assignments WHERE company_id").
		WithArgs("s-1", "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := postgres.NewAssignmentRepository(mock)
	ok, err := repo.Exists(context.Background(), "s-1", "u-1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
