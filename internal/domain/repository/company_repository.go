package repository

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Get* devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// ListChildren subempresas de un padre ordenadas por nombre.
	ListChildren(ctx context.Context, parentID string) ([]*entity.Company, error)
	// ListByIDs empresas con esos ids ordenadas por nombre.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Company, error)
}

// SubscriptionRepository catálogo de planes y suscripciones compradas.
type SubscriptionRepository interface {
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id string) (*entity.SubscriptionPlan, error)
	CreateCompanySubscription(ctx context.Context, sub *entity.CompanySubscription) error
	// GetLatestByCompany suscripción más reciente por fecha de inicio.
	GetLatestByCompany(ctx context.Context, companyID string) (*entity.CompanySubscription, error)
}

// AssignmentRepository aristas superusuario del padre -> subempresa.
type AssignmentRepository interface {
	Exists(ctx context.Context, companyID, userID string) (bool, error)
	// ListSubCompanyIDsForUser subempresas distintas asignadas al usuario que son hijas de parentID.
	ListSubCompanyIDsForUser(ctx context.Context, userID, parentID string) ([]string, error)
	ListUserIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	CreateMany(ctx context.Context, assignments []entity.CompanySuperUserAssignment) error
	DeleteByCompany(ctx context.Context, companyID string) error
}
