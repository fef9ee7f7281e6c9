package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/analytics"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

func headcountFixture() []*entity.HeadcountRow {
	return []*entity.HeadcountRow{
		{OrganizationalKey: "Finance", OrganizationalUnit: "Accounts", GenderKey: "Male", Status: "Permanent", AgeOfEmployee: 30, Tenure: "5", Month: "January"},
		{OrganizationalKey: "Finance", OrganizationalUnit: "Accounts", GenderKey: "Female", Status: "Temporary", AgeOfEmployee: 40, Tenure: "abc", Month: "January"},
		{OrganizationalKey: "Finance", OrganizationalUnit: "Payroll", GenderKey: "female", Status: "Permanent", AgeOfEmployee: 50, Tenure: "3", Month: "February"},
		{OrganizationalKey: " FINANCE ", OrganizationalUnit: "Payroll", GenderKey: "MALE", Status: "Temporary contract", AgeOfEmployee: 20, Tenure: "", Month: "january"},
		{OrganizationalKey: "HR", OrganizationalUnit: "People", GenderKey: "Female", Status: "Permanent", AgeOfEmployee: 33, Tenure: "2", Month: "January"},
	}
}

// ────────────────────────────────────────────────────────────────
// Headcount
// ────────────────────────────────────────────────────────────────

func TestAnalyzeHeadcount_Composition(t *testing.T) {
	out := analytics.AnalyzeHeadcount(headcountFixture(), analytics.ByOrganizationalKey)

	require.Len(t, out, 2)
	fin := out[0]
	assert.Equal(t, "Finance", fin.Department)
	assert.Equal(t, 4, fin.Headcount)
	assert.Equal(t, 2, fin.TempCount)
	assert.Equal(t, 2, fin.MaleCount)
	assert.Equal(t, 2, fin.FemaleCount)
	assertDec(t, "50", fin.HeadcountPercentage)
	assertDec(t, "50", fin.TempPercentage)
	assertDec(t, "50", fin.MalePercentage)
	assertDec(t, "50", fin.FemalePercentage)
	assertDec(t, "35", fin.AverageAge)
	// "abc" y "" no cuentan en la antigüedad media.
	assertDec(t, "4", fin.AverageTenure)

	assert.Equal(t, "HR", out[1].Department)
	assert.Equal(t, 1, out[1].Headcount)
	assertDec(t, "100", out[1].HeadcountPercentage)
}

func TestAnalyzeHeadcount_PercentagesWithinHundred(t *testing.T) {
	for _, a := range analytics.AnalyzeHeadcount(headcountFixture(), analytics.ByOrganizationalKey) {
		assert.True(t, a.HeadcountPercentage.Add(a.TempPercentage).LessThanOrEqual(analyticsHundred()), a.Department)
		assert.True(t, a.MalePercentage.Add(a.FemalePercentage).LessThanOrEqual(analyticsHundred()), a.Department)
	}
}

func TestAnalyzeHeadcount_NoNumericTenure(t *testing.T) {
	rows := []*entity.HeadcountRow{{OrganizationalKey: "Ops", Tenure: "n/a", AgeOfEmployee: 41}}

	out := analytics.AnalyzeHeadcount(rows, analytics.ByOrganizationalKey)

	require.Len(t, out, 1)
	assertDec(t, "0", out[0].AverageTenure)
	assertDec(t, "41", out[0].AverageAge)
	assertDec(t, "0", out[0].MalePercentage)
}

func TestAnalyzeHeadcount_Empty(t *testing.T) {
	assert.Empty(t, analytics.AnalyzeHeadcount(nil, analytics.ByOrganizationalKey))
}

func TestAnalyzeHeadcount_ByOrganizationalUnit(t *testing.T) {
	out := analytics.AnalyzeHeadcount(headcountFixture(), analytics.ByOrganizationalUnit)

	require.Len(t, out, 3)
	// Accounts y Payroll empatan con 2; desempate alfabético.
	assert.Equal(t, "Accounts", out[0].Department)
	assert.Equal(t, "Payroll", out[1].Department)
	assert.Equal(t, "People", out[2].Department)
}

func TestAnalyzeHeadcount_BlankKeyGoesToUnknown(t *testing.T) {
	out := analytics.AnalyzeHeadcount([]*entity.HeadcountRow{{OrganizationalKey: "  "}}, analytics.ByOrganizationalKey)

	require.Len(t, out, 1)
	assert.Equal(t, "Unknown", out[0].Department)
}

// ────────────────────────────────────────────────────────────────
// Altas y traslados
// ────────────────────────────────────────────────────────────────

func TestAnalyzeNHT_CountsAndInternalHireRate(t *testing.T) {
	rows := []*entity.NHTRow{
		{OrganizationalKey: "Sales", GenderKey: "Male", ActionType: "New Hire"},
		{OrganizationalKey: "Sales", GenderKey: "Female", ActionType: "Hire Employee"},
		{OrganizationalKey: "sales", GenderKey: "Male", ActionType: "Promotion"},
		{OrganizationalKey: "Sales", GenderKey: "Female", ActionType: "Lateral Move"},
		{OrganizationalKey: "Admin", GenderKey: "Male", ActionType: "Rehire"},
	}

	out := analytics.AnalyzeNHT(rows, analytics.ByOrganizationalKey)

	require.Len(t, out, 2)
	assert.Equal(t, "Admin", out[0].Department)
	assert.Zero(t, out[0].NewHireTotal)
	assertDec(t, "0", out[0].InternalHireRate)

	sales := out[1]
	assert.Equal(t, "Sales", sales.Department)
	assert.Equal(t, 2, sales.NewHireTotal)
	assert.Equal(t, 1, sales.NewHireMale)
	assert.Equal(t, 1, sales.NewHireFemale)
	assert.Equal(t, 2, sales.TransferTotal)
	assert.Equal(t, 1, sales.TransferMale)
	assert.Equal(t, 1, sales.TransferFemale)
	assertDec(t, "50", sales.InternalHireRate)
}

// ────────────────────────────────────────────────────────────────
// Bajas
// ────────────────────────────────────────────────────────────────

func TestAnalyzeTerms_RatesAgainstSameKeyHeadcount(t *testing.T) {
	terms := []*entity.TermsRow{
		{OrganizationalKey: "finance", GenderKey: "Male", Action: "", ReasonForAction: "Resignation"},
		{OrganizationalKey: "Finance", GenderKey: "Female", Action: "Involuntary"},
		{OrganizationalKey: "Marketing", GenderKey: "Female", Action: "Voluntary"},
	}

	out := analytics.AnalyzeTerms(terms, headcountFixture(), analytics.ByOrganizationalKey)

	require.Len(t, out, 2)
	fin := out[0]
	// La etiqueta sale de la plantilla, no de la primera fila de bajas.
	assert.Equal(t, "Finance", fin.Department)
	assertDec(t, "4", fin.HeadcountBase)
	assert.Equal(t, 1, fin.VoluntaryTotalCount)
	assert.Equal(t, 1, fin.VoluntaryMaleCount)
	assert.Equal(t, 0, fin.VoluntaryFemaleCount)
	assertDec(t, "25", fin.VoluntaryTotalRate)
	assertDec(t, "50", fin.VoluntaryMaleRate)
	assertDec(t, "0", fin.VoluntaryFemaleRate)
	assert.Equal(t, 1, fin.InvoluntaryTotalCount)
	assertDec(t, "25", fin.InvoluntaryTotalRate)
	assertDec(t, "50", fin.InvoluntaryFemaleRate)

	// Sin headcount para la clave: conteos sí, tasas en cero.
	mkt := out[1]
	assert.Equal(t, "Marketing", mkt.Department)
	assert.Equal(t, 1, mkt.VoluntaryTotalCount)
	assertDec(t, "0", mkt.VoluntaryTotalRate)
	assertDec(t, "0", mkt.VoluntaryFemaleRate)
}

func TestAnalyzeTerms_LabelMatchesHeadcount(t *testing.T) {
	headcount := []*entity.HeadcountRow{
		{OrganizationalKey: "Finance", GenderKey: "Male"},
		{OrganizationalKey: "Finance", GenderKey: "Female"},
	}
	terms := []*entity.TermsRow{
		{OrganizationalKey: "FINANCE", GenderKey: "Female", Action: "Voluntary"},
		{OrganizationalKey: "Legal", GenderKey: "Male", Action: "Voluntary"},
	}

	hc := analytics.AnalyzeHeadcount(headcount, analytics.ByOrganizationalKey)
	out := analytics.AnalyzeTerms(terms, headcount, analytics.ByOrganizationalKey)

	require.Len(t, hc, 1)
	require.Len(t, out, 2)
	assert.Equal(t, hc[0].Department, out[0].Department)
	assert.Equal(t, "Finance", out[0].Department)
	assertDec(t, "50", out[0].VoluntaryTotalRate)
	// Sin plantilla se conserva la etiqueta de bajas.
	assert.Equal(t, "Legal", out[1].Department)
}

func TestAnalyzeTerms_InconsistentRowCountsInBoth(t *testing.T) {
	terms := []*entity.TermsRow{{OrganizationalKey: "HR", GenderKey: "Female", Action: "Voluntary", ReasonForAction: "Termination"}}

	out := analytics.AnalyzeTerms(terms, headcountFixture(), analytics.ByOrganizationalKey)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].VoluntaryTotalCount)
	assert.Equal(t, 1, out[0].InvoluntaryTotalCount)
	assertDec(t, "100", out[0].VoluntaryFemaleRate)
}

// ────────────────────────────────────────────────────────────────
// Filtro por período
// ────────────────────────────────────────────────────────────────

func TestPeriodFilter_HeadcountCaseInsensitive(t *testing.T) {
	f := analytics.PeriodFilter{OrganizationalKey: "finance", Month: "JANUARY"}

	got := f.FilterHeadcount(headcountFixture())

	require.Len(t, got, 3)
	for _, r := range got {
		assert.NotEqual(t, "February", r.Month)
	}
}

func TestPeriodFilter_NHTAndTerms(t *testing.T) {
	f := analytics.PeriodFilter{OrganizationalKey: "Finance", Month: "March"}

	nht := f.FilterNHT([]*entity.NHTRow{
		{OrganizationalKey: "Finance", Month: "March"},
		{OrganizationalKey: "Finance", Month: "April"},
	})
	terms := f.FilterTerms([]*entity.TermsRow{
		{OrganizationalKey: "Sales", Month: "March"},
	})

	assert.Len(t, nht, 1)
	assert.Empty(t, terms)
}

func TestSafeRate(t *testing.T) {
	assertDec(t, "0", analytics.SafeRateInt(5, 0))
	assertDec(t, "33.33", analytics.SafeRateInt(1, 3))
	assertDec(t, "66.67", analytics.SafeRateInt(2, 3))
}
