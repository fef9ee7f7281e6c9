package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo asignaciones superusuario -> subempresa.
type AssignmentRepo struct {
	db DB
}

// NewAssignmentRepository construye el adaptador de asignaciones.
func NewAssignmentRepository(db DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// Exists indica si el usuario está asignado a la empresa.
func (r *AssignmentRepo) Exists(ctx context.Context, companyID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM company_superuser_assignments WHERE company_id = $1 AND user_id = $2)`
	var ok bool
	if err := r.db.QueryRow(ctx, query, companyID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return ok, nil
}

// ListSubCompanyIDsForUser subempresas distintas asignadas al usuario bajo parentID.
func (r *AssignmentRepo) ListSubCompanyIDsForUser(ctx context.Context, userID, parentID string) ([]string, error) {
	query := `
		SELECT DISTINCT a.company_id
		FROM company_superuser_assignments a
		JOIN companies c ON c.id = a.company_id
		WHERE a.user_id = $1 AND c.parent_company_id = $2
		ORDER BY a.company_id`
	rows, err := r.db.Query(ctx, query, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list assigned sub-companies: %w", err)
	}
	return collectIDs(rows)
}

// ListUserIDsByCompany usuarios asignados a una subempresa.
func (r *AssignmentRepo) ListUserIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM company_superuser_assignments WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list assigned users: %w", err)
	}
	return collectIDs(rows)
}

// CreateMany inserta asignaciones; las repetidas se ignoran.
func (r *AssignmentRepo) CreateMany(ctx context.Context, assignments []entity.CompanySuperUserAssignment) error {
	query := `
		INSERT INTO company_superuser_assignments (company_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, user_id) DO NOTHING`
	for _, a := range assignments {
		if _, err := r.db.Exec(ctx, query, a.CompanyID, a.UserID, a.CreatedAt); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return nil
}

// DeleteByCompany elimina todas las asignaciones de una subempresa.
func (r *AssignmentRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM company_superuser_assignments WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	return nil
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
