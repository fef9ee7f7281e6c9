package ports

import "github.com/jhoicas/workforce-analytics-api/internal/application/dto"

// YTDReportRenderer genera el PDF del acumulado anual.
type YTDReportRenderer interface {
	RenderYTD(report *dto.YTDReport) ([]byte, error)
}
