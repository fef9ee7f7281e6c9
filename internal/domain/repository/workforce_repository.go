package repository

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// Los datasets crudos son globales y se reemplazan completos en cada carga:
// DeleteAll + InsertMany dentro de la misma transacción.

// HeadcountRepository dataset de plantilla.
type HeadcountRepository interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, rows []*entity.HeadcountRow) (int64, error)
	List(ctx context.Context) ([]*entity.HeadcountRow, error)
}

// NHTRepository dataset de altas y traslados.
type NHTRepository interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, rows []*entity.NHTRow) (int64, error)
	List(ctx context.Context) ([]*entity.NHTRow, error)
}

// TermsRepository dataset de bajas.
type TermsRepository interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, rows []*entity.TermsRow) (int64, error)
	List(ctx context.Context) ([]*entity.TermsRow, error)
}

// EmployeeRepository dataset de compensación.
type EmployeeRepository interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, rows []*entity.EmployeeRecord) (int64, error)
	List(ctx context.Context) ([]*entity.EmployeeRecord, error)
}
