package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

func hcRow(key, unit, month, gender string) *entity.HeadcountRow {
	return &entity.HeadcountRow{OrganizationalKey: key, OrganizationalUnit: unit, Month: month, GenderKey: gender}
}

func TestUploadHeadcount_ReplacesDataset(t *testing.T) {
	e := newEnv()
	e.s.headcount = []*entity.HeadcountRow{hcRow("Old", "", "", "")}
	e.importer.headcount = []*entity.HeadcountRow{hcRow("Sales", "", "", "male"), hcRow("Sales", "", "", "female")}

	res, err := e.workforceUseCase().UploadHeadcount(ctx, "Headcount.XLSX", emptyBody())

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)
	assert.Equal(t, "2 headcount records successfully uploaded (old data replaced)", res.Message)
	require.Len(t, e.s.headcount, 2)
	assert.Equal(t, "Sales", e.s.headcount[0].OrganizationalKey)
	assert.Equal(t, 1, e.tx.calls)
}

func TestUpload_Messages(t *testing.T) {
	e := newEnv()
	e.importer.nht = []*entity.NHTRow{{OrganizationalKey: "A"}}
	e.importer.terms = []*entity.TermsRow{{OrganizationalKey: "A"}, {OrganizationalKey: "B"}}
	e.importer.employees = []*entity.EmployeeRecord{{EmployeeID: "1"}}
	uc := e.workforceUseCase()

	res, err := uc.UploadNHT(ctx, "nht.xltx", emptyBody())
	require.NoError(t, err)
	assert.Equal(t, "1 NHT records successfully uploaded (old data replaced)", res.Message)

	res, err = uc.UploadTerms(ctx, "terms.xlsx", emptyBody())
	require.NoError(t, err)
	assert.Equal(t, "2 terms records successfully uploaded (old data replaced)", res.Message)

	res, err = uc.UploadEmployees(ctx, "employees.xlsx", emptyBody())
	require.NoError(t, err)
	assert.Equal(t, "1 employee records successfully uploaded (old data replaced)", res.Message)
}

func TestUpload_RejectsBadInput(t *testing.T) {
	e := newEnv()
	uc := e.workforceUseCase()

	_, err := uc.UploadHeadcount(ctx, "headcount.csv", emptyBody())
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UploadHeadcount(ctx, "headcount.xlsx", emptyBody())
	assert.ErrorIs(t, err, domain.ErrValidation, "sin filas")

	e.importer.err = errBoom
	_, err = uc.UploadTerms(ctx, "terms.xlsx", emptyBody())
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, e.tx.calls)
}

func TestUploadHeadcount_FailedInsertKeepsOldData(t *testing.T) {
	e := newEnv()
	e.s.headcount = []*entity.HeadcountRow{hcRow("Old", "", "", "")}
	e.s.failHeadcountInsert = true
	e.importer.headcount = []*entity.HeadcountRow{hcRow("New", "", "", "")}

	_, err := e.workforceUseCase().UploadHeadcount(ctx, "headcount.xlsx", emptyBody())

	require.ErrorIs(t, err, errBoom)
	require.Len(t, e.s.headcount, 1)
	assert.Equal(t, "Old", e.s.headcount[0].OrganizationalKey)
}

func TestAnalyses_ReadCurrentDatasets(t *testing.T) {
	e := newEnv()
	e.s.headcount = []*entity.HeadcountRow{
		hcRow("Finance", "Payroll", "March", "male"),
		hcRow("Finance", "Payroll", "March", "female"),
		hcRow("Finance", "Accounts", "April", "female"),
		hcRow("Sales", "Retail", "March", "male"),
	}
	e.s.terms = []*entity.TermsRow{{OrganizationalKey: "Finance", OrganizationalUnit: "Payroll", Month: "March"}}
	uc := e.workforceUseCase()

	hc, err := uc.HeadcountAnalysis(ctx)
	require.NoError(t, err)
	require.Len(t, hc, 2)
	assert.Equal(t, "Finance", hc[0].Department)
	assert.Equal(t, 3, hc[0].Headcount)

	fin, err := uc.FinanceHeadcount(ctx, dto.FinanceAnalysisQuery{Month: "March"})
	require.NoError(t, err)
	require.Len(t, fin, 1)
	assert.Equal(t, "Payroll", fin[0].Department)
	assert.Equal(t, 2, fin[0].Headcount)

	terms, err := uc.TermsAnalysis(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Finance", terms[0].Department)

	finTerms, err := uc.FinanceTerms(ctx, dto.FinanceAnalysisQuery{OrganizationalKey: "finance", Month: "march"})
	require.NoError(t, err)
	require.Len(t, finTerms, 1)
	assert.Equal(t, "Payroll", finTerms[0].Department)
}
