package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/auth"
	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/mail"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/application/tenant"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios sobre la empresa resuelta por el Resolver.
type UserUseCase struct {
	companies   repository.CompanyRepository
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	resolver    *tenant.Resolver
	guard       *tenant.Guard
	importer    ports.WorkforceImporter
	notifier    ports.Notifier
	signinURL   string
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
	resolver *tenant.Resolver,
	guard *tenant.Guard,
	importer ports.WorkforceImporter,
	notifier ports.Notifier,
	signinURL string,
) *UserUseCase {
	return &UserUseCase{
		companies:   companies,
		users:       users,
		assignments: assignments,
		resolver:    resolver,
		guard:       guard,
		importer:    importer,
		notifier:    notifier,
		signinURL:   signinURL,
	}
}

// Create alta de un usuario en la empresa efectiva con contraseña temporal.
func (uc *UserUseCase) Create(ctx context.Context, caller tenant.Caller, requestedID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	company, err := uc.managedCompany(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	user, tempPassword, err := uc.createInCompany(ctx, company, in)
	if err != nil {
		return nil, err
	}
	uc.sendWelcome(ctx, user, company, tempPassword)
	return entityToUserResponse(user), nil
}

// ────────────────────────────────────────────────────────────────
// Importación masiva
// ────────────────────────────────────────────────────────────────

// Alias de cabecera por campo, ya normalizados (sin espacios ni guiones bajos, minúsculas).
var userColumnAliases = map[string][]string{
	"first_name":     {"firstname", "first", "givenname"},
	"middle_name":    {"middlename", "middle"},
	"last_name":      {"lastname", "last", "surname", "familyname"},
	"email":          {"email", "emailaddress", "mail"},
	"business_unit":  {"businessunit", "unit", "department"},
	"access_level":   {"accesslevel", "access", "role"},
	"contact_number": {"contactnumber", "contact", "phone", "phonenumber", "mobile"},
	"location":       {"location", "office", "city"},
}

// BulkImport crea un usuario por fila. Cada fila es independiente: las filas sin nombre o email,
// los duplicados y los errores se acumulan y la importación continúa.
func (uc *UserUseCase) BulkImport(ctx context.Context, caller tenant.Caller, requestedID string, r io.Reader) (*dto.BulkImportResult, error) {
	company, err := uc.managedCompany(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.importer.ReadUserSheet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read spreadsheet: %v", domain.ErrValidation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: the spreadsheet is empty", domain.ErrValidation)
	}
	cols := mapUserColumns(rows[0])
	if _, ok := cols["email"]; !ok {
		return nil, fmt.Errorf("%w: missing required column: email", domain.ErrValidation)
	}
	if _, ok := cols["first_name"]; !ok {
		return nil, fmt.Errorf("%w: missing required column: first name", domain.ErrValidation)
	}

	result := &dto.BulkImportResult{Errors: []dto.BulkRowError{}}
	seen := map[string]struct{}{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		cell := func(field string) string {
			idx, ok := cols[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		in := dto.CreateUserRequest{
			FirstName:     cell("first_name"),
			MiddleName:    cell("middle_name"),
			LastName:      cell("last_name"),
			Email:         cell("email"),
			BusinessUnit:  cell("business_unit"),
			AccessLevel:   cell("access_level"),
			ContactNumber: cell("contact_number"),
			Location:      cell("location"),
		}
		skip := func(msg string) {
			result.SkippedCount++
			result.Errors = append(result.Errors, dto.BulkRowError{Row: rowNum, Email: in.Email, Message: msg})
		}
		if in.FirstName == "" || in.Email == "" {
			skip("first name and email are required")
			continue
		}
		key := strings.ToLower(in.Email)
		if _, dup := seen[key]; dup {
			skip("duplicate email in file")
			continue
		}
		seen[key] = struct{}{}

		user, tempPassword, err := uc.createInCompany(ctx, company, in)
		switch {
		case errors.Is(err, domain.ErrConflict):
			skip("a user with this email already exists")
			continue
		case err != nil:
			skip(errorMessage(err))
			continue
		}
		result.CreatedCount++
		uc.sendWelcome(ctx, user, company, tempPassword)
	}

	log.Info().Str("company_id", company.ID).Int("created", result.CreatedCount).Int("skipped", result.SkippedCount).Msg("importación de usuarios")
	return result, nil
}

func mapUserColumns(header []string) map[string]int {
	byAlias := map[string]string{}
	for field, aliases := range userColumnAliases {
		for _, a := range aliases {
			byAlias[a] = field
		}
	}
	cols := map[string]int{}
	for i, h := range header {
		norm := strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(strings.TrimSpace(h)))
		if field, ok := byAlias[norm]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = i
			}
		}
	}
	return cols
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// errorMessage mensaje de un error de regla (sin el prefijo del sentinel).
func errorMessage(err error) string {
	var rule *domain.RuleError
	if errors.As(err, &rule) {
		return rule.Msg
	}
	return err.Error()
}

// ────────────────────────────────────────────────────────────────
// Consultas y cambios
// ────────────────────────────────────────────────────────────────

// List usuarios de la empresa efectiva. En una subempresa incluye además los superusuarios
// del padre asignados a ella. Orden por número de empleado.
func (uc *UserUseCase) List(ctx context.Context, caller tenant.Caller, requestedID string) ([]dto.UserResponse, error) {
	targetID, err := uc.resolver.ResolveTarget(ctx, caller.CompanyID, caller.UserID, requestedID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company not found", domain.ErrNotFound)
	}
	users, err := uc.users.ListByCompany(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if company.IsSubCompany() {
		ids, err := uc.assignments.ListUserIDsByCompany(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			delegated, err := uc.users.ListByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			users = append(users, delegated...)
		}
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].EmployeeNumber < users[j].EmployeeNumber })

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Get un usuario de la empresa efectiva.
func (uc *UserUseCase) Get(ctx context.Context, caller tenant.Caller, requestedID, userID string) (*dto.UserResponse, error) {
	targetID, err := uc.resolver.ResolveTarget(ctx, caller.CompanyID, caller.UserID, requestedID)
	if err != nil {
		return nil, err
	}
	user, err := uc.loadInTenant(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update modifica los campos indicados. Un email ya usado en la empresa es ErrConflict.
func (uc *UserUseCase) Update(ctx context.Context, caller tenant.Caller, requestedID, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	company, err := uc.managedCompany(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	user, err := uc.loadInTenant(ctx, userID, company.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
		}
		if !strings.EqualFold(email, user.Email) {
			other, err := uc.users.GetByEmailAndCompany(ctx, email, user.CompanyID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
			}
		}
		user.Email = email
	}
	if in.AccessLevel != nil {
		access := strings.TrimSpace(*in.AccessLevel)
		if err := tenant.ForbidSuperUserCreationInSubCompany(company, access); err != nil {
			return nil, err
		}
		user.AccessLevel = access
	}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", domain.ErrValidation)
		}
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	applyString(&user.MiddleName, in.MiddleName)
	applyString(&user.LastName, in.LastName)
	applyString(&user.BusinessUnit, in.BusinessUnit)
	applyString(&user.ContactNumber, in.ContactNumber)
	applyString(&user.Location, in.Location)
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Activate reactiva un usuario.
func (uc *UserUseCase) Activate(ctx context.Context, caller tenant.Caller, requestedID, userID string) (*dto.UserResponse, error) {
	return uc.setActive(ctx, caller, requestedID, userID, true)
}

// Inactivate desactiva un usuario; nadie puede desactivarse a sí mismo.
func (uc *UserUseCase) Inactivate(ctx context.Context, caller tenant.Caller, requestedID, userID string) (*dto.UserResponse, error) {
	if userID == caller.UserID {
		return nil, fmt.Errorf("%w: you cannot inactivate your own account", domain.ErrInvalidOperation)
	}
	return uc.setActive(ctx, caller, requestedID, userID, false)
}

func (uc *UserUseCase) setActive(ctx context.Context, caller tenant.Caller, requestedID, userID string, active bool) (*dto.UserResponse, error) {
	company, err := uc.managedCompany(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	user, err := uc.loadInTenant(ctx, userID, company.ID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// ────────────────────────────────────────────────────────────────
// Internos
// ────────────────────────────────────────────────────────────────

// managedCompany exige superusuario de la empresa de origen y resuelve la empresa destino.
func (uc *UserUseCase) managedCompany(ctx context.Context, caller tenant.Caller, requestedID string) (*entity.Company, error) {
	if _, err := uc.guard.RequireSuperUserOfHome(ctx, caller.UserID, caller.CompanyID); err != nil {
		return nil, err
	}
	targetID, err := uc.resolver.ResolveTarget(ctx, caller.CompanyID, caller.UserID, requestedID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company not found", domain.ErrNotFound)
	}
	return company, nil
}

func (uc *UserUseCase) loadInTenant(ctx context.Context, userID, targetID string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	if err := tenant.RequireSameTenant(user, targetID); err != nil {
		return nil, err
	}
	return user, nil
}

// createInCompany valida, numera y persiste el usuario. Devuelve la contraseña temporal en claro
// para el correo de bienvenida.
func (uc *UserUseCase) createInCompany(ctx context.Context, company *entity.Company, in dto.CreateUserRequest) (*entity.User, string, error) {
	firstName := strings.TrimSpace(in.FirstName)
	email := strings.TrimSpace(in.Email)
	if firstName == "" || email == "" {
		return nil, "", fmt.Errorf("%w: first name and email are required", domain.ErrValidation)
	}
	access := strings.TrimSpace(in.AccessLevel)
	if access == "" {
		access = entity.AccessLevelEmployee
	}
	if err := tenant.ForbidSuperUserCreationInSubCompany(company, access); err != nil {
		return nil, "", err
	}

	existing, err := uc.users.GetByEmailAndCompany(ctx, email, company.ID)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
	}
	maxNumber, err := uc.users.MaxEmployeeNumber(ctx, company.ID)
	if err != nil {
		return nil, "", err
	}
	tempPassword, err := auth.GenerateTemporaryPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &entity.User{
		ID:                      uuid.New().String(),
		CompanyID:               company.ID,
		EmployeeNumber:          maxNumber + 1,
		FirstName:               firstName,
		MiddleName:              strings.TrimSpace(in.MiddleName),
		LastName:                strings.TrimSpace(in.LastName),
		Email:                   email,
		PasswordHash:            hash,
		BusinessUnit:            strings.TrimSpace(in.BusinessUnit),
		AccessLevel:             access,
		ContactNumber:           strings.TrimSpace(in.ContactNumber),
		Location:                strings.TrimSpace(in.Location),
		IsActive:                true,
		IsFirstLogin:            true,
		IsResetPasswordRequired: true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	return user, tempPassword, nil
}

func (uc *UserUseCase) sendWelcome(ctx context.Context, user *entity.User, company *entity.Company, tempPassword string) {
	msg, err := mail.Welcome(user.Email, user.FullName(), company.Name, tempPassword, uc.signinURL)
	mail.Deliver(ctx, uc.notifier, "create_user", msg, err)
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
