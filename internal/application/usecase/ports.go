package usecase

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// DirectoryTxRunner ejecuta fn dentro de una transacción con los repos del directorio de tenants.
// Garantiza que onboarding, alta de subempresa y reasignación de superusuarios sean todo o nada.
type DirectoryTxRunner interface {
	RunDirectory(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		subscriptions repository.SubscriptionRepository,
		users repository.UserRepository,
		assignments repository.AssignmentRepository,
	) error) error
}

// WorkforceTxRunner ejecuta fn dentro de una transacción con los repos de datasets crudos:
// el borrado y la inserción de una carga se confirman juntos.
type WorkforceTxRunner interface {
	RunWorkforce(ctx context.Context, fn func(
		headcount repository.HeadcountRepository,
		nht repository.NHTRepository,
		terms repository.TermsRepository,
		employees repository.EmployeeRepository,
	) error) error
}
