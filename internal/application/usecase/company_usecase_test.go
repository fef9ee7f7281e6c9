package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

var ctx = context.Background()

func onboardRequest() dto.OnboardCompanyRequest {
	return dto.OnboardCompanyRequest{
		CompanyName:     "Globex",
		ABN:             "12345678901",
		ContactNumber:   "0299",
		Location:        "Perth",
		PlanID:          entity.PlanBusinessID,
		AdditionalSeats: 2,
		SuperUser:       dto.OnboardSuperUser{FirstName: "Hank", LastName: "Scorpio", Email: "hank@globex.test"},
	}
}

// ────────────────────────────────────────────────────────────────
// Onboarding
// ────────────────────────────────────────────────────────────────

func TestOnboard_CreatesCompanySubscriptionAndSuperUser(t *testing.T) {
	e := newEnv()

	out, err := e.companyUseCase().Onboard(ctx, onboardRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, e.tx.calls)
	assert.Equal(t, "539", out.TotalMonthlyPrice.String())

	company := e.s.companies[out.CompanyID]
	require.NotNil(t, company)
	assert.Equal(t, "Globex", company.Name)
	assert.False(t, company.IsSubCompany())

	user := e.s.users[out.SuperUserID]
	require.NotNil(t, user)
	assert.Equal(t, 1, user.EmployeeNumber)
	assert.Equal(t, entity.AccessLevelSuperUser, user.AccessLevel)
	assert.Equal(t, "Management", user.BusinessUnit)
	assert.Equal(t, "0299", user.ContactNumber)
	assert.Equal(t, "Perth", user.Location)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsFirstLogin)
	assert.True(t, user.IsResetPasswordRequired)
	assert.NotEmpty(t, user.PasswordHash)

	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, "hank@globex.test", e.notifier.sent[0].to)
	assert.Contains(t, e.notifier.sent[0].body, "Temporary password")
}

func TestOnboard_NotificationFailureIsSwallowed(t *testing.T) {
	e := newEnv()
	e.notifier.err = errors.New("smtp down")

	out, err := e.companyUseCase().Onboard(ctx, onboardRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, out.CompanyID)
}

func TestOnboard_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.OnboardCompanyRequest)
		want   error
	}{
		{"sin nombre", func(r *dto.OnboardCompanyRequest) { r.CompanyName = "  " }, domain.ErrValidation},
		{"sin email", func(r *dto.OnboardCompanyRequest) { r.SuperUser.Email = "" }, domain.ErrValidation},
		{"abn corto", func(r *dto.OnboardCompanyRequest) { r.ABN = "123" }, domain.ErrValidation},
		{"abn con letras", func(r *dto.OnboardCompanyRequest) { r.ABN = "1234567890A" }, domain.ErrValidation},
		{"asientos negativos", func(r *dto.OnboardCompanyRequest) { r.AdditionalSeats = -1 }, domain.ErrValidation},
		{"plan inexistente", func(r *dto.OnboardCompanyRequest) { r.PlanID = "nope" }, domain.ErrValidation},
		{"supera el tope", func(r *dto.OnboardCompanyRequest) { r.AdditionalSeats = 3 }, domain.ErrValidation},
		{"plan a medida", func(r *dto.OnboardCompanyRequest) {
			r.PlanID = entity.PlanEnterpriseID
			r.AdditionalSeats = 0
		}, domain.ErrValidation},
		{"asientos no permitidos", func(r *dto.OnboardCompanyRequest) { r.PlanID = entity.PlanEnterprisePlusID }, domain.ErrValidation},
		{"email existente", func(r *dto.OnboardCompanyRequest) { r.SuperUser.Email = "BOSS@acme.test" }, domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			in := onboardRequest()
			tt.mutate(&in)

			_, err := e.companyUseCase().Onboard(ctx, in)

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, e.tx.calls)
			assert.Empty(t, e.notifier.sent)
		})
	}
}

// ────────────────────────────────────────────────────────────────
// Subempresas
// ────────────────────────────────────────────────────────────────

func TestCreateSubCompany_WithSuperUsers(t *testing.T) {
	e := newEnv()

	out, err := e.companyUseCase().CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{
		Name:         "Beta",
		SuperUserIDs: []string{"su2", "boss", "su2"},
	})

	require.NoError(t, err)
	assert.Equal(t, parentID, out.ParentCompanyID)
	assert.True(t, out.IsSubCompany)
	assert.Equal(t, []string{"su2", "boss"}, out.SuperUserIDs)
	assert.True(t, e.s.assignments[[2]string{out.ID, "su2"}])
	assert.True(t, e.s.assignments[[2]string{out.ID, "boss"}])
}

func TestCreateSubCompany_InvalidSuperUsersAbortEverything(t *testing.T) {
	e := newEnv()

	_, err := e.companyUseCase().CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{
		Name:         "Beta",
		SuperUserIDs: []string{"su2", "emp", "inactive-su", "rival-su", "ghost"},
	})

	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	for _, id := range []string{"emp", "inactive-su", "rival-su", "ghost"} {
		assert.Contains(t, err.Error(), id)
	}
	assert.NotContains(t, err.Error(), "su2,")
	assert.Len(t, e.s.companies, 3)
	assert.Zero(t, e.tx.calls)
}

func TestCreateSubCompany_PlanGate(t *testing.T) {
	e := newEnv()
	e.s.subs = append(e.s.subs, &entity.CompanySubscription{
		ID: "sub-2", CompanyID: parentID, PlanID: entity.PlanBusinessID, PlanName: "Business", StartDate: time.Now().Add(time.Minute),
	})

	_, err := e.companyUseCase().CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{Name: "Beta"})

	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestCreateSubCompany_ExpiredSubscription(t *testing.T) {
	e := newEnv()
	ended := time.Now().Add(-time.Hour)
	e.s.subs[0].EndDate = &ended

	_, err := e.companyUseCase().CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{Name: "Beta"})

	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestCreateSubCompany_AccessAndValidation(t *testing.T) {
	e := newEnv()
	uc := e.companyUseCase()

	_, err := uc.CreateSubCompany(ctx, employee, parentID, dto.CreateSubCompanyRequest{Name: "Beta"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = uc.CreateSubCompany(ctx, boss, rivalID, dto.CreateSubCompanyRequest{Name: "Beta"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = uc.CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{Name: "Beta", ABN: "12"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateSubCompany_RollsBackWhenAssignmentsFail(t *testing.T) {
	e := newEnv()
	e.s.failAssignmentsCreate = true

	_, err := e.companyUseCase().CreateSubCompany(ctx, boss, parentID, dto.CreateSubCompanyRequest{
		Name: "Beta", SuperUserIDs: []string{"su2"},
	})

	require.ErrorIs(t, err, errBoom)
	assert.Len(t, e.s.companies, 3)
}

func TestAssignSuperUsers_ReplaceAndMerge(t *testing.T) {
	e := newEnv()
	e.assign(subAID, "boss")
	uc := e.companyUseCase()

	out, err := uc.AssignSuperUsers(ctx, boss, parentID, subAID, dto.AssignSuperUsersRequest{UserIDs: []string{"su2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"boss", "su2"}, out.SuperUserIDs)

	out, err = uc.AssignSuperUsers(ctx, boss, parentID, subAID, dto.AssignSuperUsersRequest{UserIDs: []string{"su2"}, ReplaceExisting: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"su2"}, out.SuperUserIDs)
}

func TestAssignSuperUsers_Errors(t *testing.T) {
	e := newEnv()
	e.assign(subAID, "boss")
	uc := e.companyUseCase()

	_, err := uc.AssignSuperUsers(ctx, boss, parentID, "ghost", dto.AssignSuperUsersRequest{UserIDs: []string{"su2"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AssignSuperUsers(ctx, boss, parentID, rivalID, dto.AssignSuperUsersRequest{UserIDs: []string{"su2"}})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	_, err = uc.AssignSuperUsers(ctx, boss, parentID, subAID, dto.AssignSuperUsersRequest{UserIDs: []string{"emp"}, ReplaceExisting: true})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	// La validación falla antes de borrar: la asignación previa sigue.
	assert.True(t, e.s.assignments[[2]string{subAID, "boss"}])
}

func TestSubCompanyReads(t *testing.T) {
	e := newEnv()
	e.s.companies["sub-0"] = &entity.Company{ID: "sub-0", Name: "Aardvark", ParentCompanyID: parentID}
	e.assign(subAID, "boss")
	uc := e.companyUseCase()

	subs, err := uc.ListSubCompanies(ctx, boss, parentID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Aardvark", subs[0].Name)
	assert.Equal(t, "Alpha", subs[1].Name)

	one, err := uc.GetSubCompany(ctx, boss, parentID, subAID)
	require.NoError(t, err)
	assert.Equal(t, []string{"boss"}, one.SuperUserIDs)

	_, err = uc.GetSubCompany(ctx, boss, parentID, rivalID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListSubCompanies(ctx, boss, rivalID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestListParentSuperUsers_ActiveOnlyByEmployeeNumber(t *testing.T) {
	e := newEnv()

	got, err := e.companyUseCase().ListParentSuperUsers(ctx, boss, parentID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "boss", got[0].ID)
	assert.Equal(t, "su2", got[1].ID)
}

func TestListUserCompanyOptions_ParentFirst(t *testing.T) {
	e := newEnv()
	e.assign(subAID, "su2")

	got, err := e.companyUseCase().ListUserCompanyOptions(ctx, boss, parentID, "su2")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, dto.CompanyOption{ID: parentID, Name: "Acme", Label: "Acme (Parent)", IsParent: true}, got[0])
	assert.Equal(t, subAID, got[1].ID)
	assert.False(t, got[1].IsParent)

	_, err = e.companyUseCase().ListUserCompanyOptions(ctx, boss, parentID, "rival-su")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ────────────────────────────────────────────────────────────────
// Empresa efectiva
// ────────────────────────────────────────────────────────────────

func TestGetEffective(t *testing.T) {
	e := newEnv()
	uc := e.companyUseCase()

	home, err := uc.GetEffective(ctx, boss, "")
	require.NoError(t, err)
	assert.Equal(t, parentID, home.ID)

	e.assign(subAID, "boss")
	implicit, err := uc.GetEffective(ctx, boss, "")
	require.NoError(t, err)
	assert.Equal(t, subAID, implicit.ID)

	_, err = uc.GetEffective(ctx, boss, rivalID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdateEffective(t *testing.T) {
	e := newEnv()
	uc := e.companyUseCase()

	out, err := uc.UpdateEffective(ctx, boss, "", dto.UpdateCompanyRequest{Name: "Acme Pty", ABN: "98765432109", Location: "Hobart"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Pty", out.Name)
	assert.Equal(t, "Acme Pty", e.s.companies[parentID].Name)
	assert.Equal(t, "98765432109", e.s.companies[parentID].ABN)

	_, err = uc.UpdateEffective(ctx, boss, "", dto.UpdateCompanyRequest{Name: "Acme", ABN: "1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateEffective(ctx, employee, "", dto.UpdateCompanyRequest{Name: "Hacked"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Equal(t, "Acme Pty", e.s.companies[parentID].Name)
}
