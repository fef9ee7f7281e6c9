package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/analytics"
	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// SnapshotOptions políticas del almacén de snapshots y del acumulado.
type SnapshotOptions struct {
	// RejectDuplicateFinal un segundo snapshot final del mismo (year, month) es ErrConflict.
	// Si es false se guarda y el acumulado usa el más reciente.
	RejectDuplicateFinal  bool
	AssumeEvenGenderSplit bool
}

// SnapshotUseCase guarda snapshots de análisis y calcula el acumulado anual.
type SnapshotUseCase struct {
	snapshots repository.SnapshotRepository
	renderer  ports.YTDReportRenderer
	opts      SnapshotOptions
	now       func() time.Time
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(snapshots repository.SnapshotRepository, renderer ports.YTDReportRenderer, opts SnapshotOptions) *SnapshotUseCase {
	return &SnapshotUseCase{snapshots: snapshots, renderer: renderer, opts: opts, now: time.Now}
}

// Save guarda un snapshot. Cada payload, si viene, debe ser una lista JSON.
func (uc *SnapshotUseCase) Save(ctx context.Context, in dto.SaveSnapshotRequest) (*dto.SnapshotSummary, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	payloads := map[string]json.RawMessage{
		analytics.FieldHeadcount: in.Headcount,
		analytics.FieldNHT:       in.NHT,
		analytics.FieldTerms:     in.Terms,
	}
	for name, raw := range payloads {
		if _, err := analytics.ParseRows(string(raw)); err != nil {
			return nil, fmt.Errorf("%w: %s must be a JSON array of records", domain.ErrValidation, name)
		}
	}

	if in.IsFinal && uc.opts.RejectDuplicateFinal {
		exists, err := uc.snapshots.ExistsFinal(ctx, in.Year, in.Month)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: a final snapshot for %d-%02d already exists", domain.ErrConflict, in.Year, in.Month)
		}
	}

	snapshot := &entity.AnalysisSnapshot{
		ID:            uuid.New().String(),
		Year:          in.Year,
		Month:         in.Month,
		HeadcountJSON: payloadString(in.Headcount),
		NHTJSON:       payloadString(in.NHT),
		TermsJSON:     payloadString(in.Terms),
		IsFinal:       in.IsFinal,
		CreatedAt:     uc.now(),
	}
	if err := uc.snapshots.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	log.Info().Int("year", in.Year).Int("month", in.Month).Bool("final", in.IsFinal).Msg("snapshot guardado")
	return toSnapshotSummary(snapshot), nil
}

// List resúmenes, más recientes primero.
func (uc *SnapshotUseCase) List(ctx context.Context) ([]dto.SnapshotSummary, error) {
	list, err := uc.snapshots.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SnapshotSummary, 0, len(list))
	for _, s := range list {
		out = append(out, *toSnapshotSummary(s))
	}
	return out, nil
}

// Get un snapshot con sus tres payloads.
func (uc *SnapshotUseCase) Get(ctx context.Context, id string) (*dto.SnapshotResponse, error) {
	s, err := uc.snapshots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: snapshot not found", domain.ErrNotFound)
	}
	return &dto.SnapshotResponse{
		SnapshotSummary: *toSnapshotSummary(s),
		Headcount:       rawPayload(s.HeadcountJSON),
		NHT:             rawPayload(s.NHTJSON),
		Terms:           rawPayload(s.TermsJSON),
	}, nil
}

// YTD acumulado de los snapshots finales de year hasta el mes indicado.
func (uc *SnapshotUseCase) YTD(ctx context.Context, q dto.YTDQuery) (*dto.YTDReport, error) {
	if err := validatePeriod(q.Year, q.ThroughMonth); err != nil {
		return nil, err
	}
	snapshots, err := uc.snapshots.ListFinal(ctx, q.Year, q.ThroughMonth)
	if err != nil {
		return nil, err
	}
	report := analytics.FoldYTD(q.Year, q.ThroughMonth, snapshots, analytics.YTDOptions{
		AssumeEvenGenderSplit: uc.opts.AssumeEvenGenderSplit,
		Now:                   uc.now,
	})
	for _, s := range report.Skipped {
		log.Warn().Int("year", q.Year).Int("month", s.Month).Str("field", s.Field).Str("reason", s.Reason).Msg("campo de snapshot omitido")
	}
	return report, nil
}

// YTDPDF el acumulado renderizado como PDF.
func (uc *SnapshotUseCase) YTDPDF(ctx context.Context, q dto.YTDQuery) ([]byte, error) {
	report, err := uc.YTD(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderYTD(report)
}

func validatePeriod(year, month int) error {
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year must be between 2000 and 2100", domain.ErrValidation)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", domain.ErrValidation)
	}
	return nil
}

func payloadString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return s
}

func rawPayload(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

func toSnapshotSummary(s *entity.AnalysisSnapshot) *dto.SnapshotSummary {
	return &dto.SnapshotSummary{ID: s.ID, Year: s.Year, Month: s.Month, IsFinal: s.IsFinal, CreatedAt: s.CreatedAt}
}
