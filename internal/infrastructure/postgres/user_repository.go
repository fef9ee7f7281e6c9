package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, company_id, employee_number, first_name, middle_name, last_name, email, password_hash,
	business_unit, access_level, contact_number, location, is_active, is_first_login,
	is_reset_password_required, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, employee_number, first_name, middle_name, last_name, email, password_hash,
			business_unit, access_level, contact_number, location, is_active, is_first_login,
			is_reset_password_required, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.CompanyID, user.EmployeeNumber, user.FirstName, user.MiddleName, user.LastName,
		user.Email, user.PasswordHash, user.BusinessUnit, user.AccessLevel, user.ContactNumber, user.Location,
		user.IsActive, user.IsFirstLogin, user.IsResetPasswordRequired, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already exists in this company", domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, "get user by id", id)
}

// GetByIDAndCompany obtiene un usuario por ID acotado a una empresa.
func (r *UserRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND company_id = $2`,
		"get user by id and company", id, companyID)
}

// GetByEmail obtiene un usuario por email (cualquier company). Prefiere cuentas activas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)
		ORDER BY is_active DESC, created_at LIMIT 1`, "get user by email", email)
}

// GetByEmailAndCompany obtiene un usuario por email y company.
func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) AND company_id = $2`,
		"get user by email and company", email, companyID)
}

func (r *UserRepo) findOne(ctx context.Context, query, op string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, middle_name = $3, last_name = $4, email = $5, password_hash = $6,
			business_unit = $7, access_level = $8, contact_number = $9, location = $10, is_active = $11,
			is_first_login = $12, is_reset_password_required = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.MiddleName, user.LastName, user.Email, user.PasswordHash,
		user.BusinessUnit, user.AccessLevel, user.ContactNumber, user.Location, user.IsActive,
		user.IsFirstLogin, user.IsResetPasswordRequired, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already in use by another user", domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany lista usuarios por company ordenados por número de empleado.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY employee_number`, companyID)
}

// ListByIDs usuarios con esos ids ordenados por número de empleado.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY employee_number`, ids)
}

// ListActiveSuperUsers superusuarios activos de una empresa.
func (r *UserRepo) ListActiveSuperUsers(ctx context.Context, companyID string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users
		WHERE company_id = $1 AND is_active AND lower(access_level) = lower($2)
		ORDER BY employee_number`, companyID, entity.AccessLevelSuperUser)
}

// MaxEmployeeNumber mayor número de empleado de la empresa (0 si no hay usuarios).
func (r *UserRepo) MaxEmployeeNumber(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(employee_number), 0) FROM users WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max employee number: %w", err)
	}
	return n, nil
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.EmployeeNumber, &u.FirstName, &u.MiddleName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.BusinessUnit, &u.AccessLevel, &u.ContactNumber, &u.Location, &u.IsActive, &u.IsFirstLogin,
		&u.IsResetPasswordRequired, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
