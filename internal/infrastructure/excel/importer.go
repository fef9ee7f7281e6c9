package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// Importer lee la primera hoja de un libro xlsx. Las plantillas de headcount, NHT y terms
// tienen columnas en posición fija; la de compensación se mapea por cabecera.
type Importer struct{}

var _ ports.WorkforceImporter = (*Importer)(nil)

// NewImporter construye el adaptador de importación.
func NewImporter() *Importer {
	return &Importer{}
}

// sheet filas de datos (sin cabecera) con acceso seguro por columna 1-based.
type sheet struct {
	header []string
	rows   [][]string
}

type row []string

// col valor recortado de la columna n (1-based); "" si la fila es más corta.
func (r row) col(n int) string {
	if n < 1 || n > len(r) {
		return ""
	}
	return strings.TrimSpace(r[n-1])
}

func (r row) num(n int) int {
	v, err := strconv.Atoi(r.col(n))
	if err != nil {
		return 0
	}
	return v
}

func readFirstSheet(r io.Reader) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir libro: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("excel: el libro no tiene hojas")
	}
	all, err := f.GetRows(names[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %s: %w", names[0], err)
	}
	s := &sheet{}
	if len(all) > 0 {
		s.header = all[0]
		s.rows = all[1:]
	}
	return s, nil
}

// ReadHeadcount plantilla de headcount: 27 columnas, la primera es el número de personal.
func (i *Importer) ReadHeadcount(r io.Reader) ([]*entity.HeadcountRow, error) {
	s, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.HeadcountRow, 0, len(s.rows))
	for _, raw := range s.rows {
		c := row(raw)
		if c.col(1) == "" {
			continue
		}
		out = append(out, &entity.HeadcountRow{
			PersonnelNumber:       c.col(1),
			LastName:              c.col(2),
			FirstName:             c.col(3),
			AgeOfEmployee:         c.num(4),
			GenderKey:             c.col(5),
			Country:               c.col(6),
			PersonnelSubarea:      c.col(7),
			Lv:                    c.col(8),
			PersonnelArea:         c.col(9),
			EmployeeSubgroup:      c.col(10),
			NameOfSuperior:        c.col(11),
			Date:                  c.col(12),
			OrganizationalKey:     c.col(13),
			OrganizationalUnit:    c.col(14),
			EmployeeGroup:         c.col(15),
			WeeklyHours:           c.col(16),
			EmploymentPercentage:  c.col(17),
			PositionNumber:        c.col(18),
			PositionTitle:         c.col(19),
			CostCentreNumber:      c.col(20),
			CostCentreDescription: c.col(21),
			SalariedOrWaged:       c.col(22),
			Location:              c.col(23),
			Status:                c.col(24),
			Tenure:                c.col(25),
			Month:                 c.col(26),
			BusinessUnit:          c.col(27),
		})
	}
	return out, nil
}

// ReadNHT plantilla de altas y traslados: 24 columnas.
func (i *Importer) ReadNHT(r io.Reader) ([]*entity.NHTRow, error) {
	s, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.NHTRow, 0, len(s.rows))
	for _, raw := range s.rows {
		c := row(raw)
		if c.col(1) == "" {
			continue
		}
		out = append(out, &entity.NHTRow{
			PersonnelNumber:       c.col(1),
			LastName:              c.col(2),
			FirstName:             c.col(3),
			AgeOfEmployee:         c.num(4),
			GenderKey:             c.col(5),
			NameOfSuperior:        c.col(6),
			OrganizationalKey:     c.col(7),
			OrganizationalUnit:    c.col(8),
			PersonnelArea:         c.col(9),
			PersonnelSubarea:      c.col(10),
			EmployeeGroup:         c.col(11),
			EmployeeSubgroup:      c.col(12),
			Lv:                    c.col(13),
			Date:                  c.col(14),
			EmploymentPercentage:  c.col(15),
			PositionNumber:        c.col(16),
			PositionTitle:         c.col(17),
			ActionType:            c.col(18),
			CostCentreNumber:      c.col(19),
			CostCentreDescription: c.col(20),
			SalariedOrWaged:       c.col(21),
			Location:              c.col(22),
			BusinessUnit:          c.col(23),
			Month:                 c.col(24),
		})
	}
	return out, nil
}

// ReadTerms plantilla de bajas: 26 columnas.
func (i *Importer) ReadTerms(r io.Reader) ([]*entity.TermsRow, error) {
	s, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.TermsRow, 0, len(s.rows))
	for _, raw := range s.rows {
		c := row(raw)
		if c.col(1) == "" {
			continue
		}
		out = append(out, &entity.TermsRow{
			PersonnelNumber:       c.col(1),
			LastName:              c.col(2),
			FirstName:             c.col(3),
			AgeOfEmployee:         c.num(4),
			GenderKey:             c.col(5),
			OrganizationalKey:     c.col(6),
			OrganizationalUnit:    c.col(7),
			PersonnelArea:         c.col(8),
			PersonnelSubarea:      c.col(9),
			EmployeeGroup:         c.col(10),
			EmployeeSubgroup:      c.col(11),
			Lv:                    c.col(12),
			Date:                  c.col(13),
			EmploymentPercentage:  c.col(14),
			ActionType:            c.col(15),
			StartDateAction:       c.col(16),
			ReasonForAction:       c.col(17),
			CostCentreNumber:      c.col(18),
			CostCentreDescription: c.col(19),
			SalariedOrWaged:       c.col(20),
			Manager:               c.col(21),
			Action:                c.col(22),
			Location:              c.col(23),
			BusinessUnit:          c.col(24),
			GradeGrouping:         c.col(25),
			Month:                 c.col(26),
		})
	}
	return out, nil
}

// Cabeceras aceptadas para la hoja de compensación (normalizadas: minúsculas, sin espacios ni guiones bajos).
var employeeColumns = map[string][]string{
	"employee_id":        {"employeeid", "id", "employeenumber"},
	"gender":             {"gender", "sex"},
	"base_salary":        {"basesalary", "salary"},
	"total_remuneration": {"totalremuneration", "totalpackage"},
	"super_percentage":   {"superpercentage", "super", "super%"},
	"business_unit":      {"businessunit"},
	"department":         {"department"},
	"org_unit":           {"orgunit", "organizationalunit"},
	"location":           {"location"},
	"date_of_birth":      {"dateofbirth", "dob"},
	"hire_date":          {"hiredate", "startdate"},
	"position_title":     {"positiontitle", "position", "title"},
	"manager_id":         {"manageremployeeid", "managerid", "manager"},
	"fte":                {"fte"},
	"hours_per_week":     {"hoursperweek", "weeklyhours"},
	"level":              {"level", "grade"},
}

// ReadEmployees hoja de compensación; requiere la columna de id de empleado.
func (i *Importer) ReadEmployees(r io.Reader) ([]*entity.EmployeeRecord, error) {
	s, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	cols := mapColumns(s.header, employeeColumns)
	if _, ok := cols["employee_id"]; !ok {
		return nil, fmt.Errorf("excel: falta la columna EmployeeID")
	}

	out := make([]*entity.EmployeeRecord, 0, len(s.rows))
	for _, raw := range s.rows {
		c := row(raw)
		get := func(field string) string { return c.col(cols[field]) }
		if get("employee_id") == "" {
			continue
		}
		out = append(out, &entity.EmployeeRecord{
			EmployeeID:        get("employee_id"),
			Gender:            get("gender"),
			BaseSalary:        parseDecimal(get("base_salary")),
			TotalRemuneration: parseDecimal(get("total_remuneration")),
			SuperPercentage:   parseDecimal(get("super_percentage")),
			BusinessUnit:      get("business_unit"),
			Department:        get("department"),
			OrgUnit:           get("org_unit"),
			Location:          get("location"),
			DateOfBirth:       parseDate(get("date_of_birth")),
			HireDate:          parseDate(get("hire_date")),
			PositionTitle:     get("position_title"),
			ManagerEmployeeID: get("manager_id"),
			FTE:               parseDecimal(get("fte")),
			HoursPerWeek:      parseDecimal(get("hours_per_week")),
			Level:             get("level"),
		})
	}
	return out, nil
}

// ReadUserSheet primera hoja completa como texto; la interpretación es del caso de uso.
func (i *Importer) ReadUserSheet(r io.Reader) ([][]string, error) {
	s, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	if s.header == nil {
		return nil, nil
	}
	return append([][]string{s.header}, s.rows...), nil
}

// mapColumns índice 1-based de cada campo según su primera cabecera coincidente.
func mapColumns(header []string, aliases map[string][]string) map[string]int {
	byAlias := map[string]string{}
	for field, list := range aliases {
		for _, a := range list {
			byAlias[a] = field
		}
	}
	cols := map[string]int{}
	for idx, h := range header {
		norm := strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(strings.TrimSpace(h)))
		if field, ok := byAlias[norm]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = idx + 1
			}
		}
	}
	return cols
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{"2006-01-02", "2/1/2006", "02/01/2006", "2006-01-02 15:04:05", "01-02-06", "1/2/06"}

// parseDate acepta texto en varios formatos o el serial numérico de Excel; nil si no se reconoce.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}
	return nil
}
