package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var (
	_ repository.HeadcountRepository = (*HeadcountRepo)(nil)
	_ repository.NHTRepository       = (*NHTRepo)(nil)
	_ repository.TermsRepository     = (*TermsRepo)(nil)
	_ repository.EmployeeRepository  = (*EmployeeRepo)(nil)
)

// Los datasets crudos se insertan con COPY; el id lo genera la base (gen_random_uuid).

var headcountColumns = []string{
	"personnel_number", "last_name", "first_name", "age_of_employee", "gender_key", "country",
	"personnel_subarea", "lv", "personnel_area", "employee_subgroup", "name_of_superior", "date",
	"organizational_key", "organizational_unit", "employee_group", "weekly_hours", "employment_percentage",
	"position_number", "position_title", "cost_centre_number", "cost_centre_description", "salaried_or_waged",
	"location", "status", "tenure", "month", "business_unit",
}

var nhtColumns = []string{
	"personnel_number", "last_name", "first_name", "age_of_employee", "gender_key", "name_of_superior",
	"organizational_key", "organizational_unit", "personnel_area", "personnel_subarea", "employee_group",
	"employee_subgroup", "lv", "date", "employment_percentage", "position_number", "position_title",
	"action_type", "cost_centre_number", "cost_centre_description", "salaried_or_waged", "location",
	"business_unit", "month",
}

var termsColumns = []string{
	"personnel_number", "last_name", "first_name", "age_of_employee", "gender_key", "organizational_key",
	"organizational_unit", "personnel_area", "personnel_subarea", "employee_group", "employee_subgroup", "lv",
	"date", "employment_percentage", "action_type", "start_date_action", "reason_for_action",
	"cost_centre_number", "cost_centre_description", "salaried_or_waged", "manager", "action", "location",
	"business_unit", "grade_grouping", "month",
}

var employeeColumns = []string{
	"employee_id", "gender", "base_salary", "total_remuneration", "super_percentage", "business_unit",
	"department", "org_unit", "location", "date_of_birth", "hire_date", "position_title",
	"manager_employee_id", "fte", "hours_per_week", "level",
}

func selectAll(table string, columns []string) string {
	return "SELECT id, " + strings.Join(columns, ", ") + " FROM " + table + " ORDER BY seq"
}

func deleteAll(ctx context.Context, db DB, table string) error {
	if _, err := db.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Headcount
// ────────────────────────────────────────────────────────────────

// HeadcountRepo dataset de plantilla.
type HeadcountRepo struct {
	db DB
}

// NewHeadcountRepository construye el adaptador del dataset de plantilla.
func NewHeadcountRepository(db DB) *HeadcountRepo {
	return &HeadcountRepo{db: db}
}

// DeleteAll vacía la tabla.
func (r *HeadcountRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "headcount_rows")
}

// InsertMany inserta las filas con COPY.
func (r *HeadcountRepo) InsertMany(ctx context.Context, rows []*entity.HeadcountRow) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"headcount_rows"}, headcountColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			h := rows[i]
			return []any{
				h.PersonnelNumber, h.LastName, h.FirstName, h.AgeOfEmployee, h.GenderKey, h.Country,
				h.PersonnelSubarea, h.Lv, h.PersonnelArea, h.EmployeeSubgroup, h.NameOfSuperior, h.Date,
				h.OrganizationalKey, h.OrganizationalUnit, h.EmployeeGroup, h.WeeklyHours, h.EmploymentPercentage,
				h.PositionNumber, h.PositionTitle, h.CostCentreNumber, h.CostCentreDescription, h.SalariedOrWaged,
				h.Location, h.Status, h.Tenure, h.Month, h.BusinessUnit,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy headcount rows: %w", err)
	}
	return n, nil
}

// List devuelve todas las filas en orden de carga.
func (r *HeadcountRepo) List(ctx context.Context) ([]*entity.HeadcountRow, error) {
	rows, err := r.db.Query(ctx, selectAll("headcount_rows", headcountColumns))
	if err != nil {
		return nil, fmt.Errorf("list headcount rows: %w", err)
	}
	defer rows.Close()
	var list []*entity.HeadcountRow
	for rows.Next() {
		var h entity.HeadcountRow
		err := rows.Scan(&h.ID,
			&h.PersonnelNumber, &h.LastName, &h.FirstName, &h.AgeOfEmployee, &h.GenderKey, &h.Country,
			&h.PersonnelSubarea, &h.Lv, &h.PersonnelArea, &h.EmployeeSubgroup, &h.NameOfSuperior, &h.Date,
			&h.OrganizationalKey, &h.OrganizationalUnit, &h.EmployeeGroup, &h.WeeklyHours, &h.EmploymentPercentage,
			&h.PositionNumber, &h.PositionTitle, &h.CostCentreNumber, &h.CostCentreDescription, &h.SalariedOrWaged,
			&h.Location, &h.Status, &h.Tenure, &h.Month, &h.BusinessUnit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan headcount row: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// ────────────────────────────────────────────────────────────────
// Altas y traslados
// ────────────────────────────────────────────────────────────────

// NHTRepo dataset de altas y traslados.
type NHTRepo struct {
	db DB
}

// NewNHTRepository construye el adaptador del dataset de altas y traslados.
func NewNHTRepository(db DB) *NHTRepo {
	return &NHTRepo{db: db}
}

// DeleteAll vacía la tabla.
func (r *NHTRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "nht_rows")
}

// InsertMany inserta las filas con COPY.
func (r *NHTRepo) InsertMany(ctx context.Context, rows []*entity.NHTRow) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"nht_rows"}, nhtColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			h := rows[i]
			return []any{
				h.PersonnelNumber, h.LastName, h.FirstName, h.AgeOfEmployee, h.GenderKey, h.NameOfSuperior,
				h.OrganizationalKey, h.OrganizationalUnit, h.PersonnelArea, h.PersonnelSubarea, h.EmployeeGroup,
				h.EmployeeSubgroup, h.Lv, h.Date, h.EmploymentPercentage, h.PositionNumber, h.PositionTitle,
				h.ActionType, h.CostCentreNumber, h.CostCentreDescription, h.SalariedOrWaged, h.Location,
				h.BusinessUnit, h.Month,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy nht rows: %w", err)
	}
	return n, nil
}

// List devuelve todas las filas en orden de carga.
func (r *NHTRepo) List(ctx context.Context) ([]*entity.NHTRow, error) {
	rows, err := r.db.Query(ctx, selectAll("nht_rows", nhtColumns))
	if err != nil {
		return nil, fmt.Errorf("list nht rows: %w", err)
	}
	defer rows.Close()
	var list []*entity.NHTRow
	for rows.Next() {
		var h entity.NHTRow
		err := rows.Scan(&h.ID,
			&h.PersonnelNumber, &h.LastName, &h.FirstName, &h.AgeOfEmployee, &h.GenderKey, &h.NameOfSuperior,
			&h.OrganizationalKey, &h.OrganizationalUnit, &h.PersonnelArea, &h.PersonnelSubarea, &h.EmployeeGroup,
			&h.EmployeeSubgroup, &h.Lv, &h.Date, &h.EmploymentPercentage, &h.PositionNumber, &h.PositionTitle,
			&h.ActionType, &h.CostCentreNumber, &h.CostCentreDescription, &h.SalariedOrWaged, &h.Location,
			&h.BusinessUnit, &h.Month,
		)
		if err != nil {
			return nil, fmt.Errorf("scan nht row: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// ────────────────────────────────────────────────────────────────
// Bajas
// ────────────────────────────────────────────────────────────────

// TermsRepo dataset de bajas.
type TermsRepo struct {
	db DB
}

// NewTermsRepository construye el adaptador del dataset de bajas.
func NewTermsRepository(db DB) *TermsRepo {
	return &TermsRepo{db: db}
}

// DeleteAll vacía la tabla.
func (r *TermsRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "terms_rows")
}

// InsertMany inserta las filas con COPY.
func (r *TermsRepo) InsertMany(ctx context.Context, rows []*entity.TermsRow) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"terms_rows"}, termsColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			t := rows[i]
			return []any{
				t.PersonnelNumber, t.LastName, t.FirstName, t.AgeOfEmployee, t.GenderKey, t.OrganizationalKey,
				t.OrganizationalUnit, t.PersonnelArea, t.PersonnelSubarea, t.EmployeeGroup, t.EmployeeSubgroup, t.Lv,
				t.Date, t.EmploymentPercentage, t.ActionType, t.StartDateAction, t.ReasonForAction,
				t.CostCentreNumber, t.CostCentreDescription, t.SalariedOrWaged, t.Manager, t.Action, t.Location,
				t.BusinessUnit, t.GradeGrouping, t.Month,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy terms rows: %w", err)
	}
	return n, nil
}

// List devuelve todas las filas en orden de carga.
func (r *TermsRepo) List(ctx context.Context) ([]*entity.TermsRow, error) {
	rows, err := r.db.Query(ctx, selectAll("terms_rows", termsColumns))
	if err != nil {
		return nil, fmt.Errorf("list terms rows: %w", err)
	}
	defer rows.Close()
	var list []*entity.TermsRow
	for rows.Next() {
		var t entity.TermsRow
		err := rows.Scan(&t.ID,
			&t.PersonnelNumber, &t.LastName, &t.FirstName, &t.AgeOfEmployee, &t.GenderKey, &t.OrganizationalKey,
			&t.OrganizationalUnit, &t.PersonnelArea, &t.PersonnelSubarea, &t.EmployeeGroup, &t.EmployeeSubgroup, &t.Lv,
			&t.Date, &t.EmploymentPercentage, &t.ActionType, &t.StartDateAction, &t.ReasonForAction,
			&t.CostCentreNumber, &t.CostCentreDescription, &t.SalariedOrWaged, &t.Manager, &t.Action, &t.Location,
			&t.BusinessUnit, &t.GradeGrouping, &t.Month,
		)
		if err != nil {
			return nil, fmt.Errorf("scan terms row: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ────────────────────────────────────────────────────────────────
// Compensación
// ────────────────────────────────────────────────────────────────

// EmployeeRepo dataset de compensación.
type EmployeeRepo struct {
	db DB
}

// NewEmployeeRepository construye el adaptador del dataset de compensación.
func NewEmployeeRepository(db DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// DeleteAll vacía la tabla.
func (r *EmployeeRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "employees")
}

// InsertMany inserta las filas con COPY.
func (r *EmployeeRepo) InsertMany(ctx context.Context, rows []*entity.EmployeeRecord) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"employees"}, employeeColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			e := rows[i]
			return []any{
				e.EmployeeID, e.Gender, e.BaseSalary, e.TotalRemuneration, e.SuperPercentage, e.BusinessUnit,
				e.Department, e.OrgUnit, e.Location, e.DateOfBirth, e.HireDate, e.PositionTitle,
				e.ManagerEmployeeID, e.FTE, e.HoursPerWeek, e.Level,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy employees: %w", err)
	}
	return n, nil
}

// List devuelve todas las filas en orden de carga.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.EmployeeRecord, error) {
	rows, err := r.db.Query(ctx, selectAll("employees", employeeColumns))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmployeeRecord
	for rows.Next() {
		var e entity.EmployeeRecord
		err := rows.Scan(&e.ID,
			&e.EmployeeID, &e.Gender, &e.BaseSalary, &e.TotalRemuneration, &e.SuperPercentage, &e.BusinessUnit,
			&e.Department, &e.OrgUnit, &e.Location, &e.DateOfBirth, &e.HireDate, &e.PositionTitle,
			&e.ManagerEmployeeID, &e.FTE, &e.HoursPerWeek, &e.Level,
		)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
