package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/auth"
	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/mail"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/application/tenant"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

const onboardBusinessUnit = "Management"

// CompanyUseCase onboarding, empresa efectiva y ciclo de vida de subempresas.
type CompanyUseCase struct {
	companies     repository.CompanyRepository
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	assignments   repository.AssignmentRepository
	tx            DirectoryTxRunner
	resolver      *tenant.Resolver
	guard         *tenant.Guard
	notifier      ports.Notifier
	signinURL     string
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
	tx DirectoryTxRunner,
	resolver *tenant.Resolver,
	guard *tenant.Guard,
	notifier ports.Notifier,
	signinURL string,
) *CompanyUseCase {
	return &CompanyUseCase{
		companies:     companies,
		subscriptions: subscriptions,
		users:         users,
		assignments:   assignments,
		tx:            tx,
		resolver:      resolver,
		guard:         guard,
		notifier:      notifier,
		signinURL:     signinURL,
	}
}

// ────────────────────────────────────────────────────────────────
// Onboarding
// ────────────────────────────────────────────────────────────────

// Onboard crea empresa, suscripción y primer superusuario en una sola transacción.
// El correo de bienvenida se envía después; si falla solo se registra.
func (uc *CompanyUseCase) Onboard(ctx context.Context, in dto.OnboardCompanyRequest) (*dto.OnboardCompanyResponse, error) {
	name := strings.TrimSpace(in.CompanyName)
	email := strings.TrimSpace(in.SuperUser.Email)
	firstName := strings.TrimSpace(in.SuperUser.FirstName)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: company name is required", domain.ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: super user email is required", domain.ErrValidation)
	case firstName == "":
		return nil, fmt.Errorf("%w: super user first name is required", domain.ErrValidation)
	case !entity.ValidABN(strings.TrimSpace(in.ABN)):
		return nil, fmt.Errorf("%w: ABN must be exactly 11 digits", domain.ErrValidation)
	case in.AdditionalSeats < 0:
		return nil, fmt.Errorf("%w: additional seats cannot be negative", domain.ErrValidation)
	}

	plan, err := uc.subscriptions.GetPlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: invalid subscription plan", domain.ErrValidation)
	}
	if in.AdditionalSeats > 0 && !plan.AdditionalSeatsAllowed {
		return nil, fmt.Errorf("%w: plan %s does not allow additional seats", domain.ErrValidation, plan.Name)
	}
	if plan.MaxHC != nil && plan.BaseSeats != 0 && plan.BaseSeats+in.AdditionalSeats > *plan.MaxHC {
		return nil, fmt.Errorf("%w: total seats exceed the plan limit of %d", domain.ErrValidation, *plan.MaxHC)
	}
	if !plan.Price.Valid || plan.Price.Decimal.IsZero() {
		return nil, fmt.Errorf("%w: plan %s requires a custom contract, please contact sales", domain.ErrValidation, plan.Name)
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
	}

	tempPassword, err := auth.GenerateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          name,
		ABN:           strings.TrimSpace(in.ABN),
		ContactNumber: in.ContactNumber,
		Location:      in.Location,
		CreatedAt:     now,
	}
	seats := decimal.NewFromInt(int64(in.AdditionalSeats))
	subscription := &entity.CompanySubscription{
		ID:                  uuid.New().String(),
		CompanyID:           company.ID,
		PlanID:              plan.ID,
		PlanName:            plan.Name,
		BaseSeats:           plan.BaseSeats,
		AdditionalSeats:     in.AdditionalSeats,
		AdditionalSeatPrice: plan.AdditionalSeatPrice,
		TotalMonthlyPrice:   plan.Price.Decimal.Add(plan.AdditionalSeatPrice.Mul(seats)),
		StartDate:           now,
	}
	superUser := &entity.User{
		ID:                      uuid.New().String(),
		CompanyID:               company.ID,
		EmployeeNumber:          1,
		FirstName:               firstName,
		MiddleName:              in.SuperUser.MiddleName,
		LastName:                in.SuperUser.LastName,
		Email:                   email,
		PasswordHash:            hash,
		BusinessUnit:            onboardBusinessUnit,
		AccessLevel:             entity.AccessLevelSuperUser,
		ContactNumber:           firstNonEmpty(in.SuperUser.ContactNumber, company.ContactNumber),
		Location:                firstNonEmpty(in.SuperUser.Location, company.Location),
		IsActive:                true,
		IsFirstLogin:            true,
		IsResetPasswordRequired: true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	err = uc.tx.RunDirectory(ctx, func(
		companies repository.CompanyRepository,
		subscriptions repository.SubscriptionRepository,
		users repository.UserRepository,
		_ repository.AssignmentRepository,
	) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		if err := subscriptions.CreateCompanySubscription(ctx, subscription); err != nil {
			return err
		}
		return users.Create(ctx, superUser)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("company_id", company.ID).Str("plan", plan.Name).Msg("empresa registrada")
	msg, buildErr := mail.Welcome(superUser.Email, superUser.FullName(), company.Name, tempPassword, uc.signinURL)
	mail.Deliver(ctx, uc.notifier, "onboard", msg, buildErr)

	return &dto.OnboardCompanyResponse{
		CompanyID:         company.ID,
		SubscriptionID:    subscription.ID,
		SuperUserID:       superUser.ID,
		TotalMonthlyPrice: subscription.TotalMonthlyPrice,
		Message:           "Company registered successfully. Login credentials were sent to " + superUser.Email,
	}, nil
}

// ────────────────────────────────────────────────────────────────
// Empresa efectiva
// ────────────────────────────────────────────────────────────────

// GetEffective empresa contra la que opera el usuario.
func (uc *CompanyUseCase) GetEffective(ctx context.Context, caller tenant.Caller, requestedID string) (*dto.CompanyResponse, error) {
	company, err := uc.effective(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// UpdateEffective actualiza nombre, ABN, contacto y ubicación de la empresa efectiva.
// Solo un superusuario activo de la empresa de origen.
func (uc *CompanyUseCase) UpdateEffective(ctx context.Context, caller tenant.Caller, requestedID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := uc.guard.RequireSuperUserOfHome(ctx, caller.UserID, caller.CompanyID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	abn := strings.TrimSpace(in.ABN)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrValidation)
	}
	if !entity.ValidABN(abn) {
		return nil, fmt.Errorf("%w: ABN must be exactly 11 digits", domain.ErrValidation)
	}
	company, err := uc.effective(ctx, caller, requestedID)
	if err != nil {
		return nil, err
	}
	company.Name = name
	company.ABN = abn
	company.ContactNumber = in.ContactNumber
	company.Location = in.Location
	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func (uc *CompanyUseCase) effective(ctx context.Context, caller tenant.Caller, requestedID string) (*entity.Company, error) {
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

// ────────────────────────────────────────────────────────────────
// Subempresas
// ────────────────────────────────────────────────────────────────

// CreateSubCompany crea una subempresa bajo parentID. El plan activo del padre debe permitirlo.
// Los superusuarios indicados se validan todos antes de escribir nada.
func (uc *CompanyUseCase) CreateSubCompany(ctx context.Context, caller tenant.Caller, parentID string, in dto.CreateSubCompanyRequest) (*dto.SubCompanyResponse, error) {
	if err := uc.requireParentSuperUser(ctx, caller, parentID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	abn := strings.TrimSpace(in.ABN)
	if name == "" {
		return nil, fmt.Errorf("%w: sub-company name is required", domain.ErrValidation)
	}
	if !entity.ValidABN(abn) {
		return nil, fmt.Errorf("%w: ABN must be exactly 11 digits", domain.ErrValidation)
	}

	parent, err := uc.companies.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: parent company not found", domain.ErrNotFound)
	}
	if parent.IsSubCompany() {
		return nil, fmt.Errorf("%w: a sub-company cannot own sub-companies", domain.ErrInvalidOperation)
	}
	if err := uc.requireSubCompanyPlan(ctx, parentID); err != nil {
		return nil, err
	}

	userIDs := uniqueIDs(in.SuperUserIDs)
	if err := uc.validateParentSuperUsers(ctx, parentID, userIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	child := &entity.Company{
		ID:              uuid.New().String(),
		Name:            name,
		ABN:             abn,
		ContactNumber:   in.ContactNumber,
		Location:        in.Location,
		ParentCompanyID: parentID,
		CreatedAt:       now,
	}
	err = uc.tx.RunDirectory(ctx, func(
		companies repository.CompanyRepository,
		_ repository.SubscriptionRepository,
		_ repository.UserRepository,
		assignments repository.AssignmentRepository,
	) error {
		if err := companies.Create(ctx, child); err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		return assignments.CreateMany(ctx, buildAssignments(child.ID, userIDs, now))
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("parent_id", parentID).Str("company_id", child.ID).Int("super_users", len(userIDs)).Msg("subempresa creada")
	return &dto.SubCompanyResponse{CompanyResponse: *entityToCompanyResponse(child), SuperUserIDs: userIDs}, nil
}

// AssignSuperUsers delega superusuarios del padre sobre una subempresa. Con ReplaceExisting
// las asignaciones previas se borran en la misma transacción.
func (uc *CompanyUseCase) AssignSuperUsers(ctx context.Context, caller tenant.Caller, parentID, subCompanyID string, in dto.AssignSuperUsersRequest) (*dto.SubCompanyResponse, error) {
	if err := uc.requireParentSuperUser(ctx, caller, parentID); err != nil {
		return nil, err
	}
	child, err := uc.companies.GetByID(ctx, subCompanyID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, fmt.Errorf("%w: sub-company not found", domain.ErrNotFound)
	}
	if child.ParentCompanyID != parentID {
		return nil, fmt.Errorf("%w: company is not a sub-company of this parent", domain.ErrInvalidOperation)
	}

	userIDs := uniqueIDs(in.UserIDs)
	if err := uc.validateParentSuperUsers(ctx, parentID, userIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.tx.RunDirectory(ctx, func(
		_ repository.CompanyRepository,
		_ repository.SubscriptionRepository,
		_ repository.UserRepository,
		assignments repository.AssignmentRepository,
	) error {
		if in.ReplaceExisting {
			if err := assignments.DeleteByCompany(ctx, child.ID); err != nil {
				return err
			}
		}
		if len(userIDs) == 0 {
			return nil
		}
		return assignments.CreateMany(ctx, buildAssignments(child.ID, userIDs, now))
	})
	if err != nil {
		return nil, err
	}

	assigned, err := uc.assignments.ListUserIDsByCompany(ctx, child.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SubCompanyResponse{CompanyResponse: *entityToCompanyResponse(child), SuperUserIDs: assigned}, nil
}

// ListSubCompanies subempresas del padre ordenadas por nombre.
func (uc *CompanyUseCase) ListSubCompanies(ctx context.Context, caller tenant.Caller, parentID string) ([]dto.CompanyResponse, error) {
	if err := requireHomeParent(caller, parentID); err != nil {
		return nil, err
	}
	children, err := uc.companies.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(children))
	for _, c := range children {
		out = append(out, *entityToCompanyResponse(c))
	}
	return out, nil
}

// GetSubCompany una subempresa del padre con sus superusuarios asignados.
func (uc *CompanyUseCase) GetSubCompany(ctx context.Context, caller tenant.Caller, parentID, subCompanyID string) (*dto.SubCompanyResponse, error) {
	if err := requireHomeParent(caller, parentID); err != nil {
		return nil, err
	}
	child, err := uc.companies.GetByID(ctx, subCompanyID)
	if err != nil {
		return nil, err
	}
	if child == nil || child.ParentCompanyID != parentID {
		return nil, fmt.Errorf("%w: sub-company not found", domain.ErrNotFound)
	}
	assigned, err := uc.assignments.ListUserIDsByCompany(ctx, child.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SubCompanyResponse{CompanyResponse: *entityToCompanyResponse(child), SuperUserIDs: assigned}, nil
}

// ListParentSuperUsers superusuarios activos del padre, por número de empleado.
func (uc *CompanyUseCase) ListParentSuperUsers(ctx context.Context, caller tenant.Caller, parentID string) ([]dto.SuperUserOption, error) {
	if err := requireHomeParent(caller, parentID); err != nil {
		return nil, err
	}
	users, err := uc.users.ListActiveSuperUsers(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuperUserOption, 0, len(users))
	for _, u := range users {
		out = append(out, dto.SuperUserOption{ID: u.ID, EmployeeNumber: u.EmployeeNumber, FullName: u.FullName(), Email: u.Email})
	}
	return out, nil
}

// ListUserCompanyOptions empresas entre las que puede cambiar un usuario del padre:
// primero el padre, luego las subempresas que tiene asignadas.
func (uc *CompanyUseCase) ListUserCompanyOptions(ctx context.Context, caller tenant.Caller, parentID, userID string) ([]dto.CompanyOption, error) {
	if err := requireHomeParent(caller, parentID); err != nil {
		return nil, err
	}
	parent, err := uc.companies.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: company not found", domain.ErrNotFound)
	}
	user, err := uc.users.GetByIDAndCompany(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	subIDs, err := uc.assignments.ListSubCompanyIDsForUser(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	options := []dto.CompanyOption{{ID: parent.ID, Name: parent.Name, Label: parent.Name + " (Parent)", IsParent: true}}
	if len(subIDs) == 0 {
		return options, nil
	}
	children, err := uc.companies.ListByIDs(ctx, uniqueIDs(subIDs))
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		options = append(options, dto.CompanyOption{ID: c.ID, Name: c.Name, Label: c.Name})
	}
	return options, nil
}

// ────────────────────────────────────────────────────────────────
// Reglas compartidas
// ────────────────────────────────────────────────────────────────

func requireHomeParent(caller tenant.Caller, parentID string) error {
	if parentID == "" || parentID != caller.CompanyID {
		return fmt.Errorf("%w: you can only manage sub-companies of your own company", domain.ErrAccessDenied)
	}
	return nil
}

func (uc *CompanyUseCase) requireParentSuperUser(ctx context.Context, caller tenant.Caller, parentID string) error {
	if err := requireHomeParent(caller, parentID); err != nil {
		return err
	}
	_, err := uc.guard.RequireSuperUserOfHome(ctx, caller.UserID, caller.CompanyID)
	return err
}

// requireSubCompanyPlan la suscripción vigente del padre debe ser del plan que admite subempresas.
func (uc *CompanyUseCase) requireSubCompanyPlan(ctx context.Context, parentID string) error {
	sub, err := uc.subscriptions.GetLatestByCompany(ctx, parentID)
	if err != nil {
		return err
	}
	if !sub.IsActive(time.Now()) {
		return fmt.Errorf("%w: parent company has no active subscription", domain.ErrInvalidOperation)
	}
	if sub.PlanID == entity.PlanEnterprisePlusID || strings.EqualFold(strings.TrimSpace(sub.PlanName), entity.PlanEnterprisePlusName) {
		return nil
	}
	plan, err := uc.subscriptions.GetPlan(ctx, sub.PlanID)
	if err != nil {
		return err
	}
	if !plan.PermitsSubCompanies() {
		return fmt.Errorf("%w: sub-companies are only available on the %s plan", domain.ErrInvalidOperation, entity.PlanEnterprisePlusName)
	}
	return nil
}

// validateParentSuperUsers todos los ids deben ser superusuarios activos del padre; si alguno
// no lo es, falla listando los inválidos.
func (uc *CompanyUseCase) validateParentSuperUsers(ctx context.Context, parentID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	var invalid []string
	for _, id := range ids {
		u, ok := byID[id]
		if !ok || u.CompanyID != parentID || !u.IsActive || !u.IsSuperUser() {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: users are not active super users of the parent company: %s",
			domain.ErrInvalidOperation, strings.Join(invalid, ", "))
	}
	return nil
}

func buildAssignments(companyID string, userIDs []string, now time.Time) []entity.CompanySuperUserAssignment {
	out := make([]entity.CompanySuperUserAssignment, 0, len(userIDs))
	for _, id := range userIDs {
		out = append(out, entity.CompanySuperUserAssignment{CompanyID: companyID, UserID: id, CreatedAt: now})
	}
	return out
}

// uniqueIDs recorta, descarta vacíos y duplicados conservando el orden.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
