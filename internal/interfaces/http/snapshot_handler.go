package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
)

// SnapshotHandler snapshots mensuales y reporte YTD.
type SnapshotHandler struct {
	uc *usecase.SnapshotUseCase
}

// NewSnapshotHandler construye el handler.
func NewSnapshotHandler(uc *usecase.SnapshotUseCase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar el análisis de un mes
// @Tags         snapshots
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.SaveSnapshotRequest  true  "período y resultados"
// @Success      201  {object}  dto.SnapshotSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/snapshots [post]
func (h *SnapshotHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveSnapshotRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Snapshots guardados (más reciente primero)
// @Tags         snapshots
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.SnapshotSummary
// @Router       /api/snapshots [get]
func (h *SnapshotHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Snapshot completo
// @Tags         snapshots
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del snapshot"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id} [get]
func (h *SnapshotHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// YTD godoc
// @Summary      Acumulado del año hasta un mes (excluido)
// @Tags         snapshots
// @Produce      json
// @Security     Bearer
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes de corte (1-12); se acumulan los meses anteriores"
// @Success      200  {object}  dto.YTDReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/snapshots/ytd [get]
func (h *SnapshotHandler) YTD(c *fiber.Ctx) error {
	var q dto.YTDQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.YTD(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// YTDPDF godoc
// @Summary      Reporte YTD en PDF
// @Tags         snapshots
// @Produce      application/pdf
// @Security     Bearer
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes de corte (1-12)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/snapshots/ytd/pdf [get]
func (h *SnapshotHandler) YTDPDF(c *fiber.Ctx) error {
	var q dto.YTDQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	pdf, err := h.uc.YTDPDF(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ytd-%d-%02d.pdf"`, q.Year, q.ThroughMonth))
	return c.Send(pdf)
}
