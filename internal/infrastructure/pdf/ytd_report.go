// Package pdf genera el informe del acumulado anual (YTD) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + año / mes de corte │ meses incluidos       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HEADCOUNT: Departamento | HC | HC prom. | %H | %M | %Temp   │
//	│  ALTAS:     Departamento | Altas | Traslados | % interno     │
//	│  BAJAS:     Departamento | Vol. | %Vol | Invol. | %Invol     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: campos omitidos + fecha de generación               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// YTDRenderer implementa ports.YTDReportRenderer usando Maroto v2.
type YTDRenderer struct {
	title string
}

var _ ports.YTDReportRenderer = (*YTDRenderer)(nil)

// NewYTDRenderer construye el renderer; title aparece en la cabecera y en los metadatos.
func NewYTDRenderer(title string) *YTDRenderer {
	if title == "" {
		title = "Workforce Analytics"
	}
	return &YTDRenderer{title: title}
}

// RenderYTD genera el PDF y devuelve sus bytes.
func (g *YTDRenderer) RenderYTD(report *dto.YTDReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s YTD %d", g.title, report.Year), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("HEADCOUNT"))
	m.AddRows(tableHeaderRow([]column{{"Department", 4}, {"Headcount", 2}, {"Avg HC", 2}, {"Male %", 1}, {"Female %", 1}, {"Temp %", 2}}))
	for _, h := range report.Headcount {
		m.AddRows(tableRow([]cell{
			{h.Department, 4}, {strconv.Itoa(h.Headcount), 2}, {h.AverageHeadcount.StringFixed(2), 2},
			{pct(h.MalePercentage), 1}, {pct(h.FemalePercentage), 1}, {pct(h.TempPercentage), 2},
		}))
	}

	m.AddRows(sectionRow("NEW HIRES & TRANSFERS"))
	m.AddRows(tableHeaderRow([]column{{"Department", 4}, {"New hires", 3}, {"Transfers", 3}, {"Internal %", 2}}))
	for _, n := range report.NHT {
		m.AddRows(tableRow([]cell{
			{n.Department, 4}, {strconv.Itoa(n.NewHireTotal), 3}, {strconv.Itoa(n.TransferTotal), 3}, {pct(n.InternalHireRate), 2},
		}))
	}

	m.AddRows(sectionRow("TERMINATIONS"))
	m.AddRows(tableHeaderRow([]column{{"Department", 4}, {"Voluntary", 2}, {"Vol. %", 2}, {"Involuntary", 2}, {"Invol. %", 2}}))
	for _, t := range report.Terms {
		m.AddRows(tableRow([]cell{
			{t.Department, 4}, {strconv.Itoa(t.VoluntaryTotalCount), 2}, {pct(t.VoluntaryTotalRate), 2},
			{strconv.Itoa(t.InvoluntaryTotalCount), 2}, {pct(t.InvoluntaryTotalRate), 2},
		}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(report) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report *dto.YTDReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Year to date %d, through %s", report.Year, time.Month(report.ThroughMonth)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("YTD WORKFORCE REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Months: "+nonEmpty(joinMonths(report.MonthsIncluded), "none"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

type column struct {
	label string
	size  int
}

type cell struct {
	value string
	size  int
}

func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(i), Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(out...)
}

func tableRow(cells []cell) core.Row {
	out := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		out = append(out, col.New(c.size).Add(text.New(c.value, props.Text{
			Size: 8, Align: alignFor(i), Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(5).Add(out...)
}

// footerRows: campos omitidos por el acumulado + fecha de generación.
func footerRows(report *dto.YTDReport) []core.Row {
	var rows []core.Row
	if len(report.Skipped) > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Skipped snapshot fields:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)))
		for _, s := range report.Skipped {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%s %s: %s", time.Month(s.Month), s.Field, s.Reason), props.Text{
					Size: 6.5, Color: colorGray, Left: 2,
				}),
			)))
		}
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Generated "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 6.5, Color: colorGray, Top: 2, Align: align.Right,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// la primera columna (departamento) va a la izquierda; los números a la derecha.
func alignFor(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

func joinMonths(months []int) string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		names = append(names, time.Month(m).String()[:3])
	}
	return strings.Join(names, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
