package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, abn, contact_number, location, COALESCE(parent_company_id::text, ''), created_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db DB
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, abn, contact_number, location, parent_company_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.ABN, company.ContactNumber, company.Location,
		nullIfEmpty(company.ParentCompanyID), company.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update actualiza los datos editables de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, abn = $3, contact_number = $4, location = $5
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.ABN, company.ContactNumber, company.Location,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// ListChildren subempresas de un padre ordenadas por nombre.
func (r *CompanyRepo) ListChildren(ctx context.Context, parentID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE parent_company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list sub-companies: %w", err)
	}
	return collectCompanies(rows)
}

// ListByIDs empresas con esos ids ordenadas por nombre.
func (r *CompanyRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = ANY($1) ORDER BY name`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list companies by ids: %w", err)
	}
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]*entity.Company, error) {
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.ABN, &c.ContactNumber, &c.Location, &c.ParentCompanyID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
