package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo almacén append-only de snapshots (tabla global, sin tenant).
type SnapshotRepo struct {
	db DB
}

// NewSnapshotRepository construye el adaptador de snapshots.
func NewSnapshotRepository(db DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Create inserta un snapshot; los payloads vacíos se guardan como NULL.
func (r *SnapshotRepo) Create(ctx context.Context, s *entity.AnalysisSnapshot) error {
	query := `
		INSERT INTO analysis_snapshots (id, year, month, headcount_json, nht_json, terms_json, is_final, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Year, s.Month, nullIfEmpty(s.HeadcountJSON), nullIfEmpty(s.NHTJSON), nullIfEmpty(s.TermsJSON),
		s.IsFinal, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// GetByID obtiene un snapshot con sus payloads.
func (r *SnapshotRepo) GetByID(ctx context.Context, id string) (*entity.AnalysisSnapshot, error) {
	query := `
		SELECT id, year, month, COALESCE(headcount_json, ''), COALESCE(nht_json, ''), COALESCE(terms_json, ''),
			is_final, created_at
		FROM analysis_snapshots WHERE id = $1`
	var s entity.AnalysisSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Year, &s.Month, &s.HeadcountJSON, &s.NHTJSON, &s.TermsJSON, &s.IsFinal, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// List resúmenes sin payloads, más recientes primero.
func (r *SnapshotRepo) List(ctx context.Context) ([]*entity.AnalysisSnapshot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, year, month, is_final, created_at FROM analysis_snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.AnalysisSnapshot
	for rows.Next() {
		var s entity.AnalysisSnapshot
		if err := rows.Scan(&s.ID, &s.Year, &s.Month, &s.IsFinal, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListFinal snapshots finales del año hasta throughMonth, por mes y creación ascendente.
func (r *SnapshotRepo) ListFinal(ctx context.Context, year, throughMonth int) ([]*entity.AnalysisSnapshot, error) {
	query := `
		SELECT id, year, month, COALESCE(headcount_json, ''), COALESCE(nht_json, ''), COALESCE(terms_json, ''),
			is_final, created_at
		FROM analysis_snapshots
		WHERE is_final AND year = $1 AND month BETWEEN 1 AND $2
		ORDER BY month, created_at`
	rows, err := r.db.Query(ctx, query, year, throughMonth)
	if err != nil {
		return nil, fmt.Errorf("list final snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.AnalysisSnapshot
	for rows.Next() {
		var s entity.AnalysisSnapshot
		if err := rows.Scan(&s.ID, &s.Year, &s.Month, &s.HeadcountJSON, &s.NHTJSON, &s.TermsJSON, &s.IsFinal, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsFinal indica si ya hay un snapshot final para el período.
func (r *SnapshotRepo) ExistsFinal(ctx context.Context, year, month int) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM analysis_snapshots WHERE is_final AND year = $1 AND month = $2)`,
		year, month).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check final snapshot: %w", err)
	}
	return ok, nil
}
