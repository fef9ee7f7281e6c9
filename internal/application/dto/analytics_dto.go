package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HeadcountAnalysis composición de plantilla por departamento (o unidad en el drill-down).
// Porcentajes sobre el tamaño del grupo, redondeados a 2 decimales.
type HeadcountAnalysis struct {
	Department          string          `json:"department"`
	Headcount           int             `json:"headcount"`
	HeadcountPercentage decimal.Decimal `json:"headcount_percentage"` // permanentes / total
	TempPercentage      decimal.Decimal `json:"temp_percentage"`
	MaleCount           int             `json:"male_count"`
	MalePercentage      decimal.Decimal `json:"male_percentage"`
	FemaleCount         int             `json:"female_count"`
	FemalePercentage    decimal.Decimal `json:"female_percentage"`
	TempCount           int             `json:"temp_count"`
	AverageAge          decimal.Decimal `json:"average_age"`
	AverageTenure       decimal.Decimal `json:"average_tenure"`
}

// NHTAnalysis altas y traslados por departamento.
type NHTAnalysis struct {
	Department       string          `json:"department"`
	NewHireTotal     int             `json:"new_hire_total"`
	NewHireMale      int             `json:"new_hire_male"`
	NewHireFemale    int             `json:"new_hire_female"`
	TransferTotal    int             `json:"transfer_total"`
	TransferMale     int             `json:"transfer_male"`
	TransferFemale   int             `json:"transfer_female"`
	InternalHireRate decimal.Decimal `json:"internal_hire_rate"`
}

// TermsAnalysis bajas por departamento con tasas sobre el headcount del mismo departamento.
type TermsAnalysis struct {
	Department             string          `json:"department"`
	HeadcountBase          decimal.Decimal `json:"headcount_base"`
	VoluntaryTotalCount    int             `json:"voluntary_total_count"`
	VoluntaryTotalRate     decimal.Decimal `json:"voluntary_total_rate"`
	VoluntaryMaleCount     int             `json:"voluntary_male_count"`
	VoluntaryMaleRate      decimal.Decimal `json:"voluntary_male_rate"`
	VoluntaryFemaleCount   int             `json:"voluntary_female_count"`
	VoluntaryFemaleRate    decimal.Decimal `json:"voluntary_female_rate"`
	InvoluntaryTotalCount  int             `json:"involuntary_total_count"`
	InvoluntaryTotalRate   decimal.Decimal `json:"involuntary_total_rate"`
	InvoluntaryMaleCount   int             `json:"involuntary_male_count"`
	InvoluntaryMaleRate    decimal.Decimal `json:"involuntary_male_rate"`
	InvoluntaryFemaleCount int             `json:"involuntary_female_count"`
	InvoluntaryFemaleRate  decimal.Decimal `json:"involuntary_female_rate"`
}

// FinanceAnalysisQuery filtros del drill-down (organizational key + mes).
type FinanceAnalysisQuery struct {
	OrganizationalKey string `query:"organizationalKey"`
	Month             string `query:"month"`
}

// UploadResult respuesta de una carga de dataset.
type UploadResult struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// ────────────────────────────────────────────────────────────────
// Acumulado anual (YTD)
// ────────────────────────────────────────────────────────────────

// YTDHeadcount fila representativa del último mes más el promedio del período.
// Detail es la fila original del snapshot; nil cuando el departamento no aparece en el último mes.
type YTDHeadcount struct {
	HeadcountAnalysis
	AverageHeadcount decimal.Decimal `json:"average_headcount"`
	MonthsReported   int             `json:"months_reported"`
	Detail           map[string]any  `json:"detail,omitempty"`
}

// YTDSkippedField campo de un snapshot que no se pudo interpretar.
type YTDSkippedField struct {
	Month  int    `json:"month"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// YTDReport acumulado de snapshots finales de un año hasta ThroughMonth.
type YTDReport struct {
	Year           int               `json:"year"`
	ThroughMonth   int               `json:"through_month"`
	MonthsIncluded []int             `json:"months_included"`
	LatestMonth    int               `json:"latest_month"`
	Headcount      []YTDHeadcount    `json:"headcount"`
	NHT            []NHTAnalysis     `json:"nht"`
	Terms          []TermsAnalysis   `json:"terms"`
	Skipped        []YTDSkippedField `json:"skipped,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// YTDQuery parámetros del acumulado.
type YTDQuery struct {
	Year         int `query:"year" validate:"required,min=2000,max=2100"`
	ThroughMonth int `query:"month" validate:"required,min=1,max=12"`
}

// ────────────────────────────────────────────────────────────────
// Compensación
// ────────────────────────────────────────────────────────────────

// GenderByDepartment conteo por departamento y género.
type GenderByDepartment struct {
	Department string `json:"department"`
	Gender     string `json:"gender"`
	Count      int    `json:"count"`
}

// GenderByLocation conteo por ubicación y género.
type GenderByLocation struct {
	Location string `json:"location"`
	Gender   string `json:"gender"`
	Count    int    `json:"count"`
}

// GenderByManager conteo por manager y género.
type GenderByManager struct {
	ManagerEmployeeID string `json:"manager_employee_id"`
	Gender            string `json:"gender"`
	Count             int    `json:"count"`
}

// AverageTenure antigüedad media en años.
type AverageTenure struct {
	AverageTenureInYears decimal.Decimal `json:"average_tenure_in_years"`
}

// PositionSalaryGap brecha salarial (hombres - mujeres) por puesto.
type PositionSalaryGap struct {
	PositionTitle       string          `json:"position_title"`
	MaleAverageSalary   decimal.Decimal `json:"male_average_salary"`
	FemaleAverageSalary decimal.Decimal `json:"female_average_salary"`
	SalaryGap           decimal.Decimal `json:"salary_gap"`
}

// ManagerSalaryGap brecha salarial (hombres - mujeres) por manager.
type ManagerSalaryGap struct {
	ManagerEmployeeID   string          `json:"manager_employee_id"`
	AverageSalaryMale   decimal.Decimal `json:"average_salary_male"`
	AverageSalaryFemale decimal.Decimal `json:"average_salary_female"`
	SalaryGap           decimal.Decimal `json:"salary_gap"`
}
