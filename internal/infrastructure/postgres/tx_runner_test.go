package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/postgres"
)

func TestTxRunner_RunWorkforce_ReplaceCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM headcount_rows").WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectCopyFrom(pgx.Identifier{"headcount_rows"}, []string{
		"personnel_number", "last_name", "first_name", "age_of_employee", "gender_key", "country",
		"personnel_subarea", "lv", "personnel_area", "employee_subgroup", "name_of_superior", "date",
		"organizational_key", "organizational_unit", "employee_group", "weekly_hours", "employment_percentage",
		"position_number", "position_title", "cost_centre_number", "cost_centre_description", "salaried_or_waged",
		"location", "status", "tenure", "month", "business_unit",
	}).WillReturnResult(2)
	mock.ExpectCommit()

	rows := []*entity.HeadcountRow{
		{PersonnelNumber: "1", OrganizationalUnit: "Finance"},
		{PersonnelNumber: "2", OrganizationalUnit: "HR"},
	}
	var inserted int64
	runner := postgres.NewTxRunner(mock)
	err = runner.RunWorkforce(context.Background(), func(
		hc repository.HeadcountRepository, _ repository.NHTRepository,
		_ repository.TermsRepository, _ repository.EmployeeRepository,
	) error {
		if err := hc.DeleteAll(context.Background()); err != nil {
			return err
		}
		n, err := hc.InsertMany(context.Background(), rows)
		inserted = n
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RunDirectory_RollbackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO companies").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectRollback()

	boom := errors.New("usuario inválido")
	runner := postgres.NewTxRunner(mock)
	err = runner.RunDirectory(context.Background(), func(
		companies repository.CompanyRepository, _ repository.SubscriptionRepository,
		_ repository.UserRepository, _ repository.AssignmentRepository,
	) error {
		if err := companies.Create(context.Background(), &entity.Company{
			ID: "s-1", Name: "Sub", ParentCompanyID: "p-1", CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
