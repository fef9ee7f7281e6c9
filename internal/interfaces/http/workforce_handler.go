package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
)

// WorkforceHandler cargas de datasets (headcount, NHT, terms, empleados) y sus análisis.
type WorkforceHandler struct {
	uc *usecase.WorkforceUseCase
}

// NewWorkforceHandler construye el handler.
func NewWorkforceHandler(uc *usecase.WorkforceUseCase) *WorkforceHandler {
	return &WorkforceHandler{uc: uc}
}

type uploadFn func(ctx context.Context, filename string, r io.Reader) (*dto.UploadResult, error)

// upload lee el multipart "file" y reemplaza el dataset indicado.
func (h *WorkforceHandler) upload(c *fiber.Ctx, dataset string, fn uploadFn) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file es requerido"})
	}
	f, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := fn(c.UserContext(), header.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	uploadRows.WithLabelValues(dataset).Add(float64(out.Count))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UploadHeadcount godoc
// @Summary      Reemplazar el dataset de headcount (.xlsx)
// @Tags         headcount
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "planilla de headcount"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/headcount/upload [post]
func (h *WorkforceHandler) UploadHeadcount(c *fiber.Ctx) error {
	return h.upload(c, "headcount", h.uc.UploadHeadcount)
}

// UploadNHT godoc
// @Summary      Reemplazar el dataset de altas y traslados (.xlsx)
// @Tags         nht
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "planilla NHT"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/nht/upload [post]
func (h *WorkforceHandler) UploadNHT(c *fiber.Ctx) error {
	return h.upload(c, "nht", h.uc.UploadNHT)
}

// UploadTerms godoc
// @Summary      Reemplazar el dataset de bajas (.xlsx)
// @Tags         terms
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "planilla de bajas"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/terms/upload [post]
func (h *WorkforceHandler) UploadTerms(c *fiber.Ctx) error {
	return h.upload(c, "terms", h.uc.UploadTerms)
}

// UploadEmployees godoc
// @Summary      Reemplazar el maestro de empleados (.xlsx)
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        file  formData  file  true  "planilla de empleados"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/employees/upload [post]
func (h *WorkforceHandler) UploadEmployees(c *fiber.Ctx) error {
	return h.upload(c, "employees", h.uc.UploadEmployees)
}

// ────────────────────────────────────────────────────────────────
// Listados
// ────────────────────────────────────────────────────────────────

// ListHeadcount godoc
// @Summary      Filas de headcount cargadas
// @Tags         headcount
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.HeadcountRow
// @Router       /api/headcount [get]
func (h *WorkforceHandler) ListHeadcount(c *fiber.Ctx) error {
	out, err := h.uc.ListHeadcount(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListNHT godoc
// @Summary      Filas de altas y traslados cargadas
// @Tags         nht
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.NHTRow
// @Router       /api/nht [get]
func (h *WorkforceHandler) ListNHT(c *fiber.Ctx) error {
	out, err := h.uc.ListNHT(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListTerms godoc
// @Summary      Filas de bajas cargadas
// @Tags         terms
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.TermsRow
// @Router       /api/terms [get]
func (h *WorkforceHandler) ListTerms(c *fiber.Ctx) error {
	out, err := h.uc.ListTerms(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Maestro de empleados cargado
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.EmployeeRecord
// @Router       /api/employees [get]
func (h *WorkforceHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.uc.ListEmployees(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ────────────────────────────────────────────────────────────────
// Análisis del período
// ────────────────────────────────────────────────────────────────

// HeadcountAnalysis godoc
// @Summary      Composición de plantilla por departamento
// @Tags         headcount
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.HeadcountAnalysis
// @Router       /api/headcount/analysis [get]
func (h *WorkforceHandler) HeadcountAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.HeadcountAnalysis(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// NHTAnalysis godoc
// @Summary      Altas y traslados por departamento
// @Tags         nht
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.NHTAnalysis
// @Router       /api/nht/analysis [get]
func (h *WorkforceHandler) NHTAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.NHTAnalysis(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TermsAnalysis godoc
// @Summary      Bajas voluntarias e involuntarias por departamento
// @Tags         terms
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.TermsAnalysis
// @Router       /api/terms/analysis [get]
func (h *WorkforceHandler) TermsAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.TermsAnalysis(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinanceHeadcount godoc
// @Summary      Drill-down de headcount por unidad dentro de un organizational key
// @Tags         headcount
// @Produce      json
// @Security     Bearer
// @Param        organizationalKey  query  string  false  "Organizational key (Finance por defecto)"
// @Param        month              query  string  false  "Mes (nombre o número)"
// @Success      200  {array}  dto.HeadcountAnalysis
// @Router       /api/headcount/finance [get]
func (h *WorkforceHandler) FinanceHeadcount(c *fiber.Ctx) error {
	var q dto.FinanceAnalysisQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.FinanceHeadcount(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinanceNHT godoc
// @Summary      Drill-down de altas y traslados
// @Tags         nht
// @Produce      json
// @Security     Bearer
// @Param        organizationalKey  query  string  false  "Organizational key"
// @Param        month              query  string  false  "Mes"
// @Success      200  {array}  dto.NHTAnalysis
// @Router       /api/nht/finance [get]
func (h *WorkforceHandler) FinanceNHT(c *fiber.Ctx) error {
	var q dto.FinanceAnalysisQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.FinanceNHT(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinanceTerms godoc
// @Summary      Drill-down de bajas
// @Tags         terms
// @Produce      json
// @Security     Bearer
// @Param        organizationalKey  query  string  false  "Organizational key"
// @Param        month              query  string  false  "Mes"
// @Success      200  {array}  dto.TermsAnalysis
// @Router       /api/terms/finance [get]
func (h *WorkforceHandler) FinanceTerms(c *fiber.Ctx) error {
	var q dto.FinanceAnalysisQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.FinanceTerms(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ────────────────────────────────────────────────────────────────
// Analítica de empleados
// ────────────────────────────────────────────────────────────────

// GenderByDepartment godoc
// @Summary      Distribución por género y departamento
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.GenderByDepartment
// @Router       /api/employees/analytics/gender-by-department [get]
func (h *WorkforceHandler) GenderByDepartment(c *fiber.Ctx) error {
	out, err := h.uc.GenderByDepartment(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenderByLocation godoc
// @Summary      Distribución por género y ubicación
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.GenderByLocation
// @Router       /api/employees/analytics/gender-by-location [get]
func (h *WorkforceHandler) GenderByLocation(c *fiber.Ctx) error {
	out, err := h.uc.GenderByLocation(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenderByManager godoc
// @Summary      Distribución por género y manager
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.GenderByManager
// @Router       /api/employees/analytics/gender-by-manager [get]
func (h *WorkforceHandler) GenderByManager(c *fiber.Ctx) error {
	out, err := h.uc.GenderByManager(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AverageTenure godoc
// @Summary      Antigüedad promedio
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.AverageTenure
// @Router       /api/employees/analytics/average-tenure [get]
func (h *WorkforceHandler) AverageTenure(c *fiber.Ctx) error {
	out, err := h.uc.AverageTenure(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PositionSalaryGaps godoc
// @Summary      Brecha salarial por género y puesto
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.PositionSalaryGap
// @Router       /api/employees/analytics/position-salary-gaps [get]
func (h *WorkforceHandler) PositionSalaryGaps(c *fiber.Ctx) error {
	out, err := h.uc.PositionSalaryGaps(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ManagerSalaryGaps godoc
// @Summary      Brecha salarial por género y manager
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.ManagerSalaryGap
// @Router       /api/employees/analytics/manager-salary-gaps [get]
func (h *WorkforceHandler) ManagerSalaryGaps(c *fiber.Ctx) error {
	out, err := h.uc.ManagerSalaryGaps(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
