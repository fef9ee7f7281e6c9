package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HeadcountRow fila plana del dataset de plantilla de un período.
type HeadcountRow struct {
	ID                    string
	PersonnelNumber       string
	LastName              string
	FirstName             string
	AgeOfEmployee         int
	GenderKey             string
	Country               string
	PersonnelSubarea      string
	Lv                    string
	PersonnelArea         string
	EmployeeSubgroup      string
	NameOfSuperior        string
	Date                  string
	OrganizationalKey     string
	OrganizationalUnit    string
	EmployeeGroup         string
	WeeklyHours           string
	EmploymentPercentage  string
	PositionNumber        string
	PositionTitle         string
	CostCentreNumber      string
	CostCentreDescription string
	SalariedOrWaged       string
	Location              string
	Status                string
	Tenure                string
	Month                 string
	BusinessUnit          string
}

// NHTRow fila del dataset de altas y traslados.
type NHTRow struct {
	ID                    string
	PersonnelNumber       string
	LastName              string
	FirstName             string
	AgeOfEmployee         int
	GenderKey             string
	NameOfSuperior        string
	OrganizationalKey     string
	OrganizationalUnit    string
	PersonnelArea         string
	PersonnelSubarea      string
	EmployeeGroup         string
	EmployeeSubgroup      string
	Lv                    string
	Date                  string
	EmploymentPercentage  string
	PositionNumber        string
	PositionTitle         string
	ActionType            string
	CostCentreNumber      string
	CostCentreDescription string
	SalariedOrWaged       string
	Location              string
	BusinessUnit          string
	Month                 string
}

// TermsRow fila del dataset de bajas; Action y ReasonForAction alimentan la clasificación.
type TermsRow struct {
	ID                    string
	PersonnelNumber       string
	LastName              string
	FirstName             string
	AgeOfEmployee         int
	GenderKey             string
	OrganizationalKey     string
	OrganizationalUnit    string
	PersonnelArea         string
	PersonnelSubarea      string
	EmployeeGroup         string
	EmployeeSubgroup      string
	Lv                    string
	Date                  string
	EmploymentPercentage  string
	ActionType            string
	StartDateAction       string
	ReasonForAction       string
	CostCentreNumber      string
	CostCentreDescription string
	SalariedOrWaged       string
	Manager               string
	Action                string
	Location              string
	BusinessUnit          string
	GradeGrouping         string
	Month                 string
}

// EmployeeRecord fila del dataset de compensación.
type EmployeeRecord struct {
	ID                 string
	EmployeeID         string
	Gender             string
	BaseSalary         decimal.Decimal
	TotalRemuneration  decimal.Decimal
	SuperPercentage    decimal.Decimal
	BusinessUnit       string
	Department         string
	OrgUnit            string
	Location           string
	DateOfBirth        *time.Time
	HireDate           *time.Time
	PositionTitle      string
	ManagerEmployeeID  string
	FTE                decimal.Decimal
	HoursPerWeek       decimal.Decimal
	Level              string
}
