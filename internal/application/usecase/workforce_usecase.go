package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/analytics"
	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

const defaultFinanceKey = "Finance"

// WorkforceUseCase carga de datasets crudos (reemplazo completo) y sus análisis.
type WorkforceUseCase struct {
	headcount repository.HeadcountRepository
	nht       repository.NHTRepository
	terms     repository.TermsRepository
	employees repository.EmployeeRepository
	tx        WorkforceTxRunner
	importer  ports.WorkforceImporter
	now       func() time.Time
}

// NewWorkforceUseCase construye el caso de uso.
func NewWorkforceUseCase(
	headcount repository.HeadcountRepository,
	nht repository.NHTRepository,
	terms repository.TermsRepository,
	employees repository.EmployeeRepository,
	tx WorkforceTxRunner,
	importer ports.WorkforceImporter,
) *WorkforceUseCase {
	return &WorkforceUseCase{
		headcount: headcount,
		nht:       nht,
		terms:     terms,
		employees: employees,
		tx:        tx,
		importer:  importer,
		now:       time.Now,
	}
}

// ────────────────────────────────────────────────────────────────
// Cargas
// ────────────────────────────────────────────────────────────────

// UploadHeadcount reemplaza el dataset de plantilla.
func (uc *WorkforceUseCase) UploadHeadcount(ctx context.Context, filename string, r io.Reader) (*dto.UploadResult, error) {
	if err := checkSpreadsheet(filename); err != nil {
		return nil, err
	}
	rows, err := uc.importer.ReadHeadcount(r)
	if err != nil {
		return nil, invalidSheet(err)
	}
	if len(rows) == 0 {
		return nil, noRows()
	}
	return uc.replace(ctx, "headcount", func(hc repository.HeadcountRepository, _ repository.NHTRepository, _ repository.TermsRepository, _ repository.EmployeeRepository) (int64, error) {
		if err := hc.DeleteAll(ctx); err != nil {
			return 0, err
		}
		return hc.InsertMany(ctx, rows)
	})
}

// UploadNHT reemplaza el dataset de altas y traslados.
func (uc *WorkforceUseCase) UploadNHT(ctx context.Context, filename string, r io.Reader) (*dto.UploadResult, error) {
	if err := checkSpreadsheet(filename); err != nil {
		return nil, err
	}
	rows, err := uc.importer.ReadNHT(r)
	if err != nil {
		return nil, invalidSheet(err)
	}
	if len(rows) == 0 {
		return nil, noRows()
	}
	return uc.replace(ctx, "NHT", func(_ repository.HeadcountRepository, nht repository.NHTRepository, _ repository.TermsRepository, _ repository.EmployeeRepository) (int64, error) {
		if err := nht.DeleteAll(ctx); err != nil {
			return 0, err
		}
		return nht.InsertMany(ctx, rows)
	})
}

// UploadTerms reemplaza el dataset de bajas.
func (uc *WorkforceUseCase) UploadTerms(ctx context.Context, filename string, r io.Reader) (*dto.UploadResult, error) {
	if err := checkSpreadsheet(filename); err != nil {
		return nil, err
	}
	rows, err := uc.importer.ReadTerms(r)
	if err != nil {
		return nil, invalidSheet(err)
	}
	if len(rows) == 0 {
		return nil, noRows()
	}
	return uc.replace(ctx, "terms", func(_ repository.HeadcountRepository, _ repository.NHTRepository, terms repository.TermsRepository, _ repository.EmployeeRepository) (int64, error) {
		if err := terms.DeleteAll(ctx); err != nil {
			return 0, err
		}
		return terms.InsertMany(ctx, rows)
	})
}

// UploadEmployees reemplaza el dataset de compensación.
func (uc *WorkforceUseCase) UploadEmployees(ctx context.Context, filename string, r io.Reader) (*dto.UploadResult, error) {
	if err := checkSpreadsheet(filename); err != nil {
		return nil, err
	}
	rows, err := uc.importer.ReadEmployees(r)
	if err != nil {
		return nil, invalidSheet(err)
	}
	if len(rows) == 0 {
		return nil, noRows()
	}
	return uc.replace(ctx, "employee", func(_ repository.HeadcountRepository, _ repository.NHTRepository, _ repository.TermsRepository, emp repository.EmployeeRepository) (int64, error) {
		if err := emp.DeleteAll(ctx); err != nil {
			return 0, err
		}
		return emp.InsertMany(ctx, rows)
	})
}

type replaceFn func(repository.HeadcountRepository, repository.NHTRepository, repository.TermsRepository, repository.EmployeeRepository) (int64, error)

// replace borrado + inserción en una transacción: un lector nunca ve la tabla vacía.
func (uc *WorkforceUseCase) replace(ctx context.Context, dataset string, fn replaceFn) (*dto.UploadResult, error) {
	var n int64
	err := uc.tx.RunWorkforce(ctx, func(hc repository.HeadcountRepository, nht repository.NHTRepository, terms repository.TermsRepository, emp repository.EmployeeRepository) error {
		var err error
		n, err = fn(hc, nht, terms, emp)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("dataset", dataset).Int64("rows", n).Msg("dataset reemplazado")
	return &dto.UploadResult{
		Count:   n,
		Message: fmt.Sprintf("%d %s records successfully uploaded (old data replaced)", n, dataset),
	}, nil
}

func checkSpreadsheet(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xltx":
		return nil
	default:
		return fmt.Errorf("%w: only .xlsx or .xltx files are allowed", domain.ErrValidation)
	}
}

func invalidSheet(err error) error {
	return fmt.Errorf("%w: could not read spreadsheet: %v", domain.ErrValidation, err)
}

func noRows() error {
	return fmt.Errorf("%w: the spreadsheet has no valid rows", domain.ErrValidation)
}

// ────────────────────────────────────────────────────────────────
// Listados
// ────────────────────────────────────────────────────────────────

// ListHeadcount filas del dataset de plantilla.
func (uc *WorkforceUseCase) ListHeadcount(ctx context.Context) ([]*entity.HeadcountRow, error) {
	return uc.headcount.List(ctx)
}

// ListNHT filas del dataset de altas y traslados.
func (uc *WorkforceUseCase) ListNHT(ctx context.Context) ([]*entity.NHTRow, error) {
	return uc.nht.List(ctx)
}

// ListTerms filas del dataset de bajas.
func (uc *WorkforceUseCase) ListTerms(ctx context.Context) ([]*entity.TermsRow, error) {
	return uc.terms.List(ctx)
}

// ListEmployees filas del dataset de compensación.
func (uc *WorkforceUseCase) ListEmployees(ctx context.Context) ([]*entity.EmployeeRecord, error) {
	return uc.employees.List(ctx)
}

// ────────────────────────────────────────────────────────────────
// Análisis de un período
// ────────────────────────────────────────────────────────────────

// HeadcountAnalysis composición por organizational key.
func (uc *WorkforceUseCase) HeadcountAnalysis(ctx context.Context) ([]dto.HeadcountAnalysis, error) {
	rows, err := uc.headcount.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeHeadcount(rows, analytics.ByOrganizationalKey), nil
}

// NHTAnalysis altas y traslados por organizational key.
func (uc *WorkforceUseCase) NHTAnalysis(ctx context.Context) ([]dto.NHTAnalysis, error) {
	rows, err := uc.nht.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeNHT(rows, analytics.ByOrganizationalKey), nil
}

// TermsAnalysis bajas por organizational key contra el headcount de la misma clave.
func (uc *WorkforceUseCase) TermsAnalysis(ctx context.Context) ([]dto.TermsAnalysis, error) {
	terms, headcount, err := uc.loadTermsAndHeadcount(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeTerms(terms, headcount, analytics.ByOrganizationalKey), nil
}

// FinanceHeadcount drill-down de plantilla por unidad organizativa.
func (uc *WorkforceUseCase) FinanceHeadcount(ctx context.Context, q dto.FinanceAnalysisQuery) ([]dto.HeadcountAnalysis, error) {
	rows, err := uc.headcount.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeHeadcount(uc.periodFilter(q).FilterHeadcount(rows), analytics.ByOrganizationalUnit), nil
}

// FinanceNHT drill-down de altas y traslados por unidad organizativa.
func (uc *WorkforceUseCase) FinanceNHT(ctx context.Context, q dto.FinanceAnalysisQuery) ([]dto.NHTAnalysis, error) {
	rows, err := uc.nht.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeNHT(uc.periodFilter(q).FilterNHT(rows), analytics.ByOrganizationalUnit), nil
}

// FinanceTerms drill-down de bajas; las tasas usan el headcount con el mismo filtro.
func (uc *WorkforceUseCase) FinanceTerms(ctx context.Context, q dto.FinanceAnalysisQuery) ([]dto.TermsAnalysis, error) {
	terms, headcount, err := uc.loadTermsAndHeadcount(ctx)
	if err != nil {
		return nil, err
	}
	f := uc.periodFilter(q)
	return analytics.AnalyzeTerms(f.FilterTerms(terms), f.FilterHeadcount(headcount), analytics.ByOrganizationalUnit), nil
}

// periodFilter aplica los valores por defecto: organizational key Finance y el mes en curso.
func (uc *WorkforceUseCase) periodFilter(q dto.FinanceAnalysisQuery) analytics.PeriodFilter {
	f := analytics.PeriodFilter{
		OrganizationalKey: strings.TrimSpace(q.OrganizationalKey),
		Month:             strings.TrimSpace(q.Month),
	}
	if f.OrganizationalKey == "" {
		f.OrganizationalKey = defaultFinanceKey
	}
	if f.Month == "" {
		f.Month = uc.now().Month().String()
	}
	return f
}

// loadTermsAndHeadcount consulta ambos datasets en paralelo (lecturas independientes).
func (uc *WorkforceUseCase) loadTermsAndHeadcount(ctx context.Context) ([]*entity.TermsRow, []*entity.HeadcountRow, error) {
	type termsResult struct {
		rows []*entity.TermsRow
		err  error
	}
	type headcountResult struct {
		rows []*entity.HeadcountRow
		err  error
	}

	termsChan := make(chan termsResult, 1)
	hcChan := make(chan headcountResult, 1)

	go func() {
		rows, err := uc.terms.List(ctx)
		termsChan <- termsResult{rows, err}
	}()
	go func() {
		rows, err := uc.headcount.List(ctx)
		hcChan <- headcountResult{rows, err}
	}()

	tRes := <-termsChan
	hRes := <-hcChan

	if tRes.err != nil {
		return nil, nil, fmt.Errorf("terms: %w", tRes.err)
	}
	if hRes.err != nil {
		return nil, nil, fmt.Errorf("headcount: %w", hRes.err)
	}
	return tRes.rows, hRes.rows, nil
}

// ────────────────────────────────────────────────────────────────
// Compensación
// ────────────────────────────────────────────────────────────────

// GenderByDepartment conteos por departamento y género.
func (uc *WorkforceUseCase) GenderByDepartment(ctx context.Context) ([]dto.GenderByDepartment, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.GenderByDepartment(records), nil
}

// GenderByLocation conteos por ubicación y género.
func (uc *WorkforceUseCase) GenderByLocation(ctx context.Context) ([]dto.GenderByLocation, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.GenderByLocation(records), nil
}

// GenderByManager conteos por manager y género.
func (uc *WorkforceUseCase) GenderByManager(ctx context.Context) ([]dto.GenderByManager, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.GenderByManager(records), nil
}

// AverageTenure antigüedad media en años.
func (uc *WorkforceUseCase) AverageTenure(ctx context.Context) (*dto.AverageTenure, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	out := analytics.AverageTenureYears(records, uc.now())
	return &out, nil
}

// PositionSalaryGaps brecha salarial por puesto.
func (uc *WorkforceUseCase) PositionSalaryGaps(ctx context.Context) ([]dto.PositionSalaryGap, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.PositionSalaryGaps(records), nil
}

// ManagerSalaryGaps brecha salarial por manager.
func (uc *WorkforceUseCase) ManagerSalaryGaps(ctx context.Context) ([]dto.ManagerSalaryGap, error) {
	records, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ManagerSalaryGaps(records), nil
}
