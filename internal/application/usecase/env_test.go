package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/tenant"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

const (
	parentID = "parent"
	rivalID  = "rival"
	subAID   = "sub-a"
)

var (
	boss     = tenant.Caller{UserID: "boss", CompanyID: parentID, Access: entity.AccessLevelSuperUser}
	employee = tenant.Caller{UserID: "emp", CompanyID: parentID, Access: entity.AccessLevelEmployee}
)

type env struct {
	s        *memStore
	tx       *memTx
	notifier *fakeNotifier
	importer *fakeImporter
	resolver *tenant.Resolver
	guard    *tenant.Guard
}

func intPtr(v int) *int { return &v }

// newEnv padre "Acme" con Enterprise Plus, una subempresa "Alpha" y una empresa ajena.
func newEnv() *env {
	s := newMemStore()
	now := time.Now()

	s.plans[entity.PlanBusinessID] = &entity.SubscriptionPlan{
		ID: entity.PlanBusinessID, Name: "Business",
		Price:                  decimal.NewNullDecimal(decimal.NewFromInt(499)),
		AdditionalSeatPrice:    decimal.NewFromInt(20),
		BaseSeats:              10,
		MaxHC:                  intPtr(12),
		AdditionalSeatsAllowed: true,
	}
	s.plans[entity.PlanEnterpriseID] = &entity.SubscriptionPlan{
		ID: entity.PlanEnterpriseID, Name: "Enterprise", BaseSeats: 50,
	}
	s.plans[entity.PlanEnterprisePlusID] = &entity.SubscriptionPlan{
		ID: entity.PlanEnterprisePlusID, Name: entity.PlanEnterprisePlusName,
		Price:              decimal.NewNullDecimal(decimal.NewFromInt(1999)),
		BaseSeats:          100,
		AllowsSubCompanies: true,
	}

	s.companies[parentID] = &entity.Company{ID: parentID, Name: "Acme", ContactNumber: "0400", Location: "Sydney", CreatedAt: now}
	s.companies[rivalID] = &entity.Company{ID: rivalID, Name: "Rival", CreatedAt: now}
	s.companies[subAID] = &entity.Company{ID: subAID, Name: "Alpha", ParentCompanyID: parentID, CreatedAt: now}
	s.subs = append(s.subs, &entity.CompanySubscription{
		ID: "sub-1", CompanyID: parentID, PlanID: entity.PlanEnterprisePlusID, PlanName: entity.PlanEnterprisePlusName, StartDate: now,
	})

	addUser := func(id, company string, number int, access string, active bool) {
		s.users[id] = &entity.User{
			ID: id, CompanyID: company, EmployeeNumber: number, FirstName: id, Email: id + "@acme.test",
			AccessLevel: access, IsActive: active,
		}
	}
	addUser("boss", parentID, 1, entity.AccessLevelSuperUser, true)
	addUser("su2", parentID, 2, "SUPERUSER", true)
	addUser("emp", parentID, 3, entity.AccessLevelEmployee, true)
	addUser("inactive-su", parentID, 4, entity.AccessLevelSuperUser, false)
	addUser("rival-su", rivalID, 1, entity.AccessLevelSuperUser, true)
	addUser("alpha-emp", subAID, 1, entity.AccessLevelEmployee, true)

	return &env{
		s:        s,
		tx:       &memTx{s: s},
		notifier: &fakeNotifier{},
		importer: &fakeImporter{},
		resolver: tenant.NewResolver(memCompanies{s}, memAssignments{s}),
		guard:    tenant.NewGuard(memUsers{s}),
	}
}

func (e *env) assign(companyID, userID string) {
	e.s.assignments[[2]string{companyID, userID}] = true
}

func (e *env) companyUseCase() *usecase.CompanyUseCase {
	return usecase.NewCompanyUseCase(memCompanies{e.s}, memSubscriptions{e.s}, memUsers{e.s}, memAssignments{e.s},
		e.tx, e.resolver, e.guard, e.notifier, "http://app.test/signin")
}

func (e *env) userUseCase() *usecase.UserUseCase {
	return usecase.NewUserUseCase(memCompanies{e.s}, memUsers{e.s}, memAssignments{e.s},
		e.resolver, e.guard, e.importer, e.notifier, "http://app.test/signin")
}

func (e *env) workforceUseCase() *usecase.WorkforceUseCase {
	return usecase.NewWorkforceUseCase(memHeadcount{e.s}, memNHT{e.s}, memTerms{e.s}, memEmployees{e.s}, e.tx, e.importer)
}

func (e *env) snapshotUseCase(rejectDuplicate bool, renderer *fakeRenderer) *usecase.SnapshotUseCase {
	return usecase.NewSnapshotUseCase(memSnapshots{e.s}, renderer, usecase.SnapshotOptions{
		RejectDuplicateFinal:  rejectDuplicate,
		AssumeEvenGenderSplit: true,
	})
}
