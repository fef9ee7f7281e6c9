package repository

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// SnapshotRepository almacén append-only de snapshots de análisis.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.AnalysisSnapshot) error
	GetByID(ctx context.Context, id string) (*entity.AnalysisSnapshot, error)
	// List resúmenes sin payloads, más recientes primero.
	List(ctx context.Context) ([]*entity.AnalysisSnapshot, error)
	// ListFinal snapshots finales del año con 1 <= month <= throughMonth, por mes y fecha de creación ascendente.
	ListFinal(ctx context.Context, year, throughMonth int) ([]*entity.AnalysisSnapshot, error)
	ExistsFinal(ctx context.Context, year, month int) (bool, error)
}
