package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/pdf"
)

func TestRenderYTD_ProducesPDF(t *testing.T) {
	report := &dto.YTDReport{
		Year:           2025,
		ThroughMonth:   3,
		MonthsIncluded: []int{1, 3},
		LatestMonth:    3,
		Headcount: []dto.YTDHeadcount{{
			HeadcountAnalysis: dto.HeadcountAnalysis{Department: "Finance", Headcount: 20, MalePercentage: decimal.NewFromInt(55)},
			AverageHeadcount:  decimal.NewFromInt(15),
		}},
		NHT:         []dto.NHTAnalysis{{Department: "Finance", NewHireTotal: 2, TransferTotal: 1, InternalHireRate: decimal.RequireFromString("33.33")}},
		Terms:       []dto.TermsAnalysis{{Department: "Finance", VoluntaryTotalCount: 3, VoluntaryTotalRate: decimal.NewFromInt(20)}},
		Skipped:     []dto.YTDSkippedField{{Month: 2, Field: "nht", Reason: "invalid JSON"}},
		GeneratedAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewYTDRenderer("Acme").RenderYTD(report)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderYTD_EmptyReport(t *testing.T) {
	out, err := pdf.NewYTDRenderer("").RenderYTD(&dto.YTDReport{Year: 2025, ThroughMonth: 1})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderYTD_Nil(t *testing.T) {
	_, err := pdf.NewYTDRenderer("").RenderYTD(nil)
	assert.Error(t, err)
}
