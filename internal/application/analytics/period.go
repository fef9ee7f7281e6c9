package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/workforce"
)

// GroupBy elige la columna de agrupación de un análisis.
type GroupBy int

const (
	ByOrganizationalKey GroupBy = iota
	ByOrganizationalUnit
)

func (g GroupBy) pick(orgKey, orgUnit string) string {
	if g == ByOrganizationalUnit {
		return orgUnit
	}
	return orgKey
}

// group acumula filas por clave normalizada conservando la primera etiqueta vista.
type group[T any] struct {
	label string
	rows  []T
}

func groupRows[T any](rows []T, keyOf func(T) string) (map[workforce.OrgKey]*group[T], []workforce.OrgKey) {
	groups := make(map[workforce.OrgKey]*group[T])
	var order []workforce.OrgKey
	for _, r := range rows {
		raw := keyOf(r)
		k := workforce.NewOrgKey(raw)
		g, ok := groups[k]
		if !ok {
			g = &group[T]{label: workforce.Label(raw)}
			groups[k] = g
			order = append(order, k)
		}
		g.rows = append(g.rows, r)
	}
	return groups, order
}

// ────────────────────────────────────────────────────────────────
// Headcount
// ────────────────────────────────────────────────────────────────

// AnalyzeHeadcount composición por grupo, ordenada por headcount descendente.
// La antigüedad media solo considera filas cuyo Tenure es un entero.
func AnalyzeHeadcount(rows []*entity.HeadcountRow, by GroupBy) []dto.HeadcountAnalysis {
	groups, order := groupRows(rows, func(r *entity.HeadcountRow) string {
		return by.pick(r.OrganizationalKey, r.OrganizationalUnit)
	})

	out := make([]dto.HeadcountAnalysis, 0, len(groups))
	for _, k := range order {
		g := groups[k]
		var temp, male, female, ageSum, tenureSum, tenureN int
		for _, r := range g.rows {
			if workforce.IsTemporary(r.Status) {
				temp++
			}
			if workforce.IsMale(r.GenderKey) {
				male++
			}
			if workforce.IsFemale(r.GenderKey) {
				female++
			}
			ageSum += r.AgeOfEmployee
			if t, err := strconv.Atoi(strings.TrimSpace(r.Tenure)); err == nil {
				tenureSum += t
				tenureN++
			}
		}
		size := len(g.rows)
		out = append(out, dto.HeadcountAnalysis{
			Department:          g.label,
			Headcount:           size,
			HeadcountPercentage: SafeRateInt(size-temp, size),
			TempPercentage:      SafeRateInt(temp, size),
			MaleCount:           male,
			MalePercentage:      SafeRateInt(male, size),
			FemaleCount:         female,
			FemalePercentage:    SafeRateInt(female, size),
			TempCount:           temp,
			AverageAge:          avgInt(ageSum, size),
			AverageTenure:       avgInt(tenureSum, tenureN),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Headcount != out[j].Headcount {
			return out[i].Headcount > out[j].Headcount
		}
		return lessLabel(out[i].Department, out[j].Department)
	})
	return out
}

// headcountBase denominadores de tasas de bajas por clave.
// label es la primera forma vista en el dataset de plantilla.
type headcountBase struct {
	label               string
	total, male, female int
}

func indexHeadcount(rows []*entity.HeadcountRow, by GroupBy) map[workforce.OrgKey]headcountBase {
	idx := make(map[workforce.OrgKey]headcountBase)
	for _, r := range rows {
		raw := by.pick(r.OrganizationalKey, r.OrganizationalUnit)
		k := workforce.NewOrgKey(raw)
		b := idx[k]
		if b.total == 0 {
			b.label = workforce.Label(raw)
		}
		b.total++
		if workforce.IsMale(r.GenderKey) {
			b.male++
		}
		if workforce.IsFemale(r.GenderKey) {
			b.female++
		}
		idx[k] = b
	}
	return idx
}

// ────────────────────────────────────────────────────────────────
// Altas y traslados
// ────────────────────────────────────────────────────────────────

// AnalyzeNHT altas y traslados por grupo, ordenado alfabéticamente.
func AnalyzeNHT(rows []*entity.NHTRow, by GroupBy) []dto.NHTAnalysis {
	groups, order := groupRows(rows, func(r *entity.NHTRow) string {
		return by.pick(r.OrganizationalKey, r.OrganizationalUnit)
	})

	out := make([]dto.NHTAnalysis, 0, len(groups))
	for _, k := range order {
		g := groups[k]
		a := dto.NHTAnalysis{Department: g.label}
		for _, r := range g.rows {
			male, female := workforce.IsMale(r.GenderKey), workforce.IsFemale(r.GenderKey)
			if workforce.IsNewHire(r.ActionType) {
				a.NewHireTotal++
				a.NewHireMale += b2i(male)
				a.NewHireFemale += b2i(female)
			}
			if workforce.IsTransfer(r.ActionType) {
				a.TransferTotal++
				a.TransferMale += b2i(male)
				a.TransferFemale += b2i(female)
			}
		}
		a.InternalHireRate = SafeRateInt(a.TransferTotal, a.NewHireTotal+a.TransferTotal)
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return lessLabel(out[i].Department, out[j].Department) })
	return out
}

// ────────────────────────────────────────────────────────────────
// Bajas
// ────────────────────────────────────────────────────────────────

// AnalyzeTerms bajas por grupo con tasas contra el headcount de la misma clave
// (total, hombres y mujeres por separado). Si la clave existe en la plantilla se
// usa su etiqueta. Ordenado alfabéticamente.
func AnalyzeTerms(terms []*entity.TermsRow, headcount []*entity.HeadcountRow, by GroupBy) []dto.TermsAnalysis {
	base := indexHeadcount(headcount, by)
	groups, order := groupRows(terms, func(r *entity.TermsRow) string {
		return by.pick(r.OrganizationalKey, r.OrganizationalUnit)
	})

	out := make([]dto.TermsAnalysis, 0, len(groups))
	for _, k := range order {
		g := groups[k]
		c := termCounters{}
		for _, r := range g.rows {
			c.add(r)
		}
		b := base[k]
		label := g.label
		if b.label != "" {
			label = b.label
		}
		out = append(out, c.analysis(label,
			decimal.NewFromInt(int64(b.total)),
			decimal.NewFromInt(int64(b.male)),
			decimal.NewFromInt(int64(b.female)),
		))
	}
	sort.SliceStable(out, func(i, j int) bool { return lessLabel(out[i].Department, out[j].Department) })
	return out
}

// termCounters los seis contadores de bajas; voluntaria e involuntaria no son excluyentes.
type termCounters struct {
	volTotal, volMale, volFemale       int
	involTotal, involMale, involFemale int
}

func (c *termCounters) add(r *entity.TermsRow) {
	male, female := workforce.IsMale(r.GenderKey), workforce.IsFemale(r.GenderKey)
	if workforce.IsVoluntary(r.Action, r.ReasonForAction) {
		c.volTotal++
		c.volMale += b2i(male)
		c.volFemale += b2i(female)
	}
	if workforce.IsInvoluntary(r.Action, r.ReasonForAction) {
		c.involTotal++
		c.involMale += b2i(male)
		c.involFemale += b2i(female)
	}
}

func (c *termCounters) merge(o termCounters) {
	c.volTotal += o.volTotal
	c.volMale += o.volMale
	c.volFemale += o.volFemale
	c.involTotal += o.involTotal
	c.involMale += o.involMale
	c.involFemale += o.involFemale
}

func (c termCounters) analysis(label string, total, male, female decimal.Decimal) dto.TermsAnalysis {
	n := func(v int) decimal.Decimal { return decimal.NewFromInt(int64(v)) }
	return dto.TermsAnalysis{
		Department:             label,
		HeadcountBase:          total.Round(2),
		VoluntaryTotalCount:    c.volTotal,
		VoluntaryTotalRate:     SafeRate(n(c.volTotal), total),
		VoluntaryMaleCount:     c.volMale,
		VoluntaryMaleRate:      SafeRate(n(c.volMale), male),
		VoluntaryFemaleCount:   c.volFemale,
		VoluntaryFemaleRate:    SafeRate(n(c.volFemale), female),
		InvoluntaryTotalCount:  c.involTotal,
		InvoluntaryTotalRate:   SafeRate(n(c.involTotal), total),
		InvoluntaryMaleCount:   c.involMale,
		InvoluntaryMaleRate:    SafeRate(n(c.involMale), male),
		InvoluntaryFemaleCount: c.involFemale,
		InvoluntaryFemaleRate:  SafeRate(n(c.involFemale), female),
	}
}

// ────────────────────────────────────────────────────────────────
// Drill-down por organizational key y mes
// ────────────────────────────────────────────────────────────────

// PeriodFilter filtra filas por organizational key y etiqueta de mes (sin mayúsculas).
type PeriodFilter struct {
	OrganizationalKey string
	Month             string
}

func (f PeriodFilter) match(orgKey, month string) bool {
	return workforce.Matches(orgKey, f.OrganizationalKey) && workforce.Matches(month, f.Month)
}

// FilterHeadcount aplica el filtro al dataset de plantilla.
func (f PeriodFilter) FilterHeadcount(rows []*entity.HeadcountRow) []*entity.HeadcountRow {
	var out []*entity.HeadcountRow
	for _, r := range rows {
		if f.match(r.OrganizationalKey, r.Month) {
			out = append(out, r)
		}
	}
	return out
}

// FilterNHT aplica el filtro al dataset de altas y traslados.
func (f PeriodFilter) FilterNHT(rows []*entity.NHTRow) []*entity.NHTRow {
	var out []*entity.NHTRow
	for _, r := range rows {
		if f.match(r.OrganizationalKey, r.Month) {
			out = append(out, r)
		}
	}
	return out
}

// FilterTerms aplica el filtro al dataset de bajas.
func (f PeriodFilter) FilterTerms(rows []*entity.TermsRow) []*entity.TermsRow {
	var out []*entity.TermsRow
	for _, r := range rows {
		if f.match(r.OrganizationalKey, r.Month) {
			out = append(out, r)
		}
	}
	return out
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lessLabel orden alfabético sin mayúsculas; desempata por la etiqueta original.
func lessLabel(a, b string) bool {
	ka, kb := workforce.NewOrgKey(a), workforce.NewOrgKey(b)
	if ka != kb {
		return ka < kb
	}
	return a < b
}
