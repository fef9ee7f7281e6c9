package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/workforce"
)

type pairKey struct{ group, gender string }

// countByGender cuenta registros por (grupo, género); ignora grupo o género vacíos.
func countByGender(records []*entity.EmployeeRecord, groupOf func(*entity.EmployeeRecord) string) ([]pairKey, map[pairKey]int) {
	counts := map[pairKey]int{}
	var order []pairKey
	for _, e := range records {
		g, gender := strings.TrimSpace(groupOf(e)), strings.TrimSpace(e.Gender)
		if g == "" || gender == "" {
			continue
		}
		k := pairKey{g, gender}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].group != order[j].group {
			return order[i].group < order[j].group
		}
		return order[i].gender < order[j].gender
	})
	return order, counts
}

// GenderByDepartment conteos por departamento y género.
func GenderByDepartment(records []*entity.EmployeeRecord) []dto.GenderByDepartment {
	order, counts := countByGender(records, func(e *entity.EmployeeRecord) string { return e.Department })
	out := make([]dto.GenderByDepartment, 0, len(order))
	for _, k := range order {
		out = append(out, dto.GenderByDepartment{Department: k.group, Gender: k.gender, Count: counts[k]})
	}
	return out
}

// GenderByLocation conteos por ubicación y género.
func GenderByLocation(records []*entity.EmployeeRecord) []dto.GenderByLocation {
	order, counts := countByGender(records, func(e *entity.EmployeeRecord) string { return e.Location })
	out := make([]dto.GenderByLocation, 0, len(order))
	for _, k := range order {
		out = append(out, dto.GenderByLocation{Location: k.group, Gender: k.gender, Count: counts[k]})
	}
	return out
}

// GenderByManager conteos por manager y género.
func GenderByManager(records []*entity.EmployeeRecord) []dto.GenderByManager {
	order, counts := countByGender(records, func(e *entity.EmployeeRecord) string { return e.ManagerEmployeeID })
	out := make([]dto.GenderByManager, 0, len(order))
	for _, k := range order {
		out = append(out, dto.GenderByManager{ManagerEmployeeID: k.group, Gender: k.gender, Count: counts[k]})
	}
	return out
}

// AverageTenureYears antigüedad media en años (días desde el alta / 365). Sin fecha de alta no cuenta.
func AverageTenureYears(records []*entity.EmployeeRecord, now time.Time) dto.AverageTenure {
	var years []decimal.Decimal
	days365 := decimal.NewFromInt(365)
	for _, e := range records {
		if e.HireDate == nil {
			continue
		}
		days := int64(now.Sub(*e.HireDate).Hours() / 24)
		years = append(years, decimal.NewFromInt(days).Div(days365))
	}
	return dto.AverageTenure{AverageTenureInYears: mean(years).Round(2)}
}

// salaryGap promedio de salario base de hombres y mujeres por grupo; un lado ausente vale 0.
func salaryGap(records []*entity.EmployeeRecord, groupOf func(*entity.EmployeeRecord) string) ([]string, map[string][2]decimal.Decimal) {
	type acc struct{ male, female []decimal.Decimal }
	groups := map[string]*acc{}
	for _, e := range records {
		g := strings.TrimSpace(groupOf(e))
		if g == "" || strings.TrimSpace(e.Gender) == "" {
			continue
		}
		a, ok := groups[g]
		if !ok {
			a = &acc{}
			groups[g] = a
		}
		switch {
		case workforce.IsMale(e.Gender):
			a.male = append(a.male, e.BaseSalary)
		case workforce.IsFemale(e.Gender):
			a.female = append(a.female, e.BaseSalary)
		}
	}
	names := make([]string, 0, len(groups))
	out := make(map[string][2]decimal.Decimal, len(groups))
	for g, a := range groups {
		names = append(names, g)
		out[g] = [2]decimal.Decimal{mean(a.male).Round(2), mean(a.female).Round(2)}
	}
	sort.Strings(names)
	return names, out
}

// PositionSalaryGaps brecha hombres - mujeres por puesto.
func PositionSalaryGaps(records []*entity.EmployeeRecord) []dto.PositionSalaryGap {
	names, avgs := salaryGap(records, func(e *entity.EmployeeRecord) string { return e.PositionTitle })
	out := make([]dto.PositionSalaryGap, 0, len(names))
	for _, n := range names {
		m, f := avgs[n][0], avgs[n][1]
		out = append(out, dto.PositionSalaryGap{
			PositionTitle: n, MaleAverageSalary: m, FemaleAverageSalary: f, SalaryGap: m.Sub(f),
		})
	}
	return out
}

// ManagerSalaryGaps brecha hombres - mujeres por manager.
func ManagerSalaryGaps(records []*entity.EmployeeRecord) []dto.ManagerSalaryGap {
	names, avgs := salaryGap(records, func(e *entity.EmployeeRecord) string { return e.ManagerEmployeeID })
	out := make([]dto.ManagerSalaryGap, 0, len(names))
	for _, n := range names {
		m, f := avgs[n][0], avgs[n][1]
		out = append(out, dto.ManagerSalaryGap{
			ManagerEmployeeID: n, AverageSalaryMale: m, AverageSalaryFemale: f, SalaryGap: m.Sub(f),
		})
	}
	return out
}
