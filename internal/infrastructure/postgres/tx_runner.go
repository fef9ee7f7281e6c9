package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.DirectoryTxRunner and usecase.WorkforceTxRunner.
var _ usecase.DirectoryTxRunner = (*TxRunner)(nil)
var _ usecase.WorkforceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunDirectory inicia una transacción, ejecuta fn con repos del directorio atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunDirectory(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCompanyRepository(tx),
		NewSubscriptionRepository(tx),
		NewUserRepository(tx),
		NewAssignmentRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWorkforce inicia una transacción con los repos de datasets (reemplazo completo de una carga).
func (r *TxRunner) RunWorkforce(ctx context.Context, fn func(
	headcount repository.HeadcountRepository,
	nht repository.NHTRepository,
	terms repository.TermsRepository,
	employees repository.EmployeeRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewHeadcountRepository(tx),
		NewNHTRepository(tx),
		NewTermsRepository(tx),
		NewEmployeeRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
