package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/workforce"
)

// Nombres de los payloads de un snapshot.
const (
	FieldHeadcount = "headcount"
	FieldNHT       = "nht"
	FieldTerms     = "terms"
)

// YTDOptions parámetros del acumulado.
type YTDOptions struct {
	// AssumeEvenGenderSplit reparte 50/50 el headcount de cada mes sin desglose por género, así
	// los denominadores por género promedian los mismos meses que el total. Si es false solo
	// promedian los meses con desglose, y quedan en 0 cuando ningún mes lo trae.
	AssumeEvenGenderSplit bool
	Now                   func() time.Time
}

// hcHistory historial de headcount de un departamento a lo largo del período.
type hcHistory struct {
	label       string
	counts      []decimal.Decimal // una entrada por mes visto
	males       []decimal.Decimal // meses con desglose, o mitad del conteo si se reparte 50/50
	females     []decimal.Decimal
	lastCount   int
	latestMonth int
	latestRow   Row
}

// monthHeadcount headcount de un departamento en un mes (filas repetidas se suman).
type monthHeadcount struct {
	label        string
	count        int
	male, female int
	hasMale      bool
	hasFemale    bool
	row          Row
}

type nhtTotals struct {
	label                                       string
	newTotal, newMale, newFemale                int
	transferTotal, transferMale, transferFemale int
}

type termsTotals struct {
	label string
	termCounters
}

// FoldYTD acumula los snapshots finales de year con 1 <= month <= throughMonth.
//
// Si hay varios snapshots del mismo mes gana el creado más tarde. Un payload malformado se
// salta solo para ese mes y ese campo. El headcount representativo es la fila del último mes
// con datos; los departamentos ausentes ese mes conservan su último conteo sin detalle.
// Altas, traslados y bajas se suman; las tasas de bajas usan el headcount promedio del período.
func FoldYTD(year, throughMonth int, snapshots []*entity.AnalysisSnapshot, opts YTDOptions) *dto.YTDReport {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	report := &dto.YTDReport{
		Year:         year,
		ThroughMonth: throughMonth,
		GeneratedAt:  now(),
	}

	hist := map[workforce.OrgKey]*hcHistory{}
	var hcOrder []workforce.OrgKey
	nht := map[workforce.OrgKey]*nhtTotals{}
	terms := map[workforce.OrgKey]*termsTotals{}
	two := decimal.NewFromInt(2)

	for _, s := range latestPerMonth(year, throughMonth, snapshots) {
		report.MonthsIncluded = append(report.MonthsIncluded, s.Month)

		if rows, ok := parseField(report, s.Month, FieldHeadcount, s.HeadcountJSON); ok && len(rows) > 0 {
			for k, m := range foldMonthHeadcount(rows) {
				h, seen := hist[k]
				if !seen {
					h = &hcHistory{label: m.label}
					hist[k] = h
					hcOrder = append(hcOrder, k)
				}
				count := decimal.NewFromInt(int64(m.count))
				h.counts = append(h.counts, count)
				switch {
				case m.hasMale:
					h.males = append(h.males, decimal.NewFromInt(int64(m.male)))
				case opts.AssumeEvenGenderSplit:
					h.males = append(h.males, count.Div(two))
				}
				switch {
				case m.hasFemale:
					h.females = append(h.females, decimal.NewFromInt(int64(m.female)))
				case opts.AssumeEvenGenderSplit:
					h.females = append(h.females, count.Div(two))
				}
				h.lastCount = m.count
				h.latestMonth = s.Month
				h.latestRow = m.row
			}
			report.LatestMonth = s.Month
		}

		if rows, ok := parseField(report, s.Month, FieldNHT, s.NHTJSON); ok {
			for _, r := range rows {
				label := workforce.Label(r.String(fDepartment))
				k := workforce.NewOrgKey(label)
				t, seen := nht[k]
				if !seen {
					t = &nhtTotals{label: label}
					nht[k] = t
				}
				t.newTotal += r.Int(fNewHireTotal)
				t.newMale += r.Int(fNewHireMale)
				t.newFemale += r.Int(fNewHireFemale)
				t.transferTotal += r.Int(fTransferTotal)
				t.transferMale += r.Int(fTransferMale)
				t.transferFemale += r.Int(fTransferFemale)
			}
		}

		if rows, ok := parseField(report, s.Month, FieldTerms, s.TermsJSON); ok {
			for _, r := range rows {
				label := workforce.Label(r.String(fDepartment))
				k := workforce.NewOrgKey(label)
				t, seen := terms[k]
				if !seen {
					t = &termsTotals{label: label}
					terms[k] = t
				}
				t.merge(termCounters{
					volTotal:    r.Int(fVoluntaryTotal),
					volMale:     r.Int(fVoluntaryMale),
					volFemale:   r.Int(fVoluntaryFemale),
					involTotal:  r.Int(fInvoluntaryTotal),
					involMale:   r.Int(fInvoluntaryMale),
					involFemale: r.Int(fInvoluntaryFemale),
				})
			}
		}
	}

	report.Headcount = ytdHeadcount(hist, hcOrder, report.LatestMonth)
	report.NHT = ytdNHT(nht)
	report.Terms = ytdTerms(terms, hist)
	return report
}

// latestPerMonth filtra el rango y deja un snapshot final por mes (el creado más tarde), en orden de mes.
func latestPerMonth(year, throughMonth int, snapshots []*entity.AnalysisSnapshot) []*entity.AnalysisSnapshot {
	byMonth := map[int]*entity.AnalysisSnapshot{}
	for _, s := range snapshots {
		if s == nil || !s.IsFinal || s.Year != year || s.Month < 1 || s.Month > throughMonth {
			continue
		}
		if cur, ok := byMonth[s.Month]; !ok || !s.CreatedAt.Before(cur.CreatedAt) {
			byMonth[s.Month] = s
		}
	}
	out := make([]*entity.AnalysisSnapshot, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func parseField(report *dto.YTDReport, month int, name, payload string) ([]Row, bool) {
	rows, err := ParseRows(payload)
	if err != nil {
		report.Skipped = append(report.Skipped, dto.YTDSkippedField{Month: month, Field: name, Reason: err.Error()})
		return nil, false
	}
	return rows, true
}

func foldMonthHeadcount(rows []Row) map[workforce.OrgKey]*monthHeadcount {
	out := map[workforce.OrgKey]*monthHeadcount{}
	for _, r := range rows {
		label := workforce.Label(r.String(fDepartment))
		k := workforce.NewOrgKey(label)
		m, ok := out[k]
		if !ok {
			m = &monthHeadcount{label: label, row: r}
			out[k] = m
		}
		m.count += r.Int(fHeadcount)
		if r.Has(fMaleCount) {
			m.hasMale = true
			m.male += r.Int(fMaleCount)
		}
		if r.Has(fFemaleCount) {
			m.hasFemale = true
			m.female += r.Int(fFemaleCount)
		}
	}
	return out
}

func ytdHeadcount(hist map[workforce.OrgKey]*hcHistory, order []workforce.OrgKey, latestMonth int) []dto.YTDHeadcount {
	out := make([]dto.YTDHeadcount, 0, len(hist))
	for _, k := range order {
		h := hist[k]
		item := dto.YTDHeadcount{
			HeadcountAnalysis: dto.HeadcountAnalysis{Department: h.label, Headcount: h.lastCount},
			AverageHeadcount:  mean(h.counts).Round(2),
			MonthsReported:    len(h.counts),
		}
		if h.latestMonth == latestMonth && h.latestRow != nil {
			r := h.latestRow
			item.HeadcountPercentage = decimalOrZero(r, fHeadcountPercentage)
			item.TempPercentage = decimalOrZero(r, fTempPercentage)
			item.TempCount = r.Int(fTempCount)
			item.MaleCount = r.Int(fMaleCount)
			item.FemaleCount = r.Int(fFemaleCount)
			item.MalePercentage = decimalOrZero(r, fMalePercentage)
			item.FemalePercentage = decimalOrZero(r, fFemalePercentage)
			item.AverageAge = decimalOrZero(r, fAverageAge)
			item.AverageTenure = decimalOrZero(r, fAverageTenure)
			item.Detail = map[string]any(r)
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Headcount != out[j].Headcount {
			return out[i].Headcount > out[j].Headcount
		}
		return lessLabel(out[i].Department, out[j].Department)
	})
	return out
}

func ytdNHT(totals map[workforce.OrgKey]*nhtTotals) []dto.NHTAnalysis {
	out := make([]dto.NHTAnalysis, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.NHTAnalysis{
			Department:       t.label,
			NewHireTotal:     t.newTotal,
			NewHireMale:      t.newMale,
			NewHireFemale:    t.newFemale,
			TransferTotal:    t.transferTotal,
			TransferMale:     t.transferMale,
			TransferFemale:   t.transferFemale,
			InternalHireRate: SafeRateInt(t.transferTotal, t.newTotal+t.transferTotal),
		})
	}
	sort.Slice(out, func(i, j int) bool { return lessLabel(out[i].Department, out[j].Department) })
	return out
}

func ytdTerms(totals map[workforce.OrgKey]*termsTotals, hist map[workforce.OrgKey]*hcHistory) []dto.TermsAnalysis {
	out := make([]dto.TermsAnalysis, 0, len(totals))
	for k, t := range totals {
		var avg, male, female decimal.Decimal
		if h, ok := hist[k]; ok {
			avg = mean(h.counts)
			male = mean(h.males)
			female = mean(h.females)
		}
		out = append(out, t.analysis(t.label, avg, male, female))
	}
	sort.Slice(out, func(i, j int) bool { return lessLabel(out[i].Department, out[j].Department) })
	return out
}

func decimalOrZero(r Row, f field) decimal.Decimal {
	d, ok := r.Decimal(f)
	if !ok {
		return decimal.Zero
	}
	return d
}
