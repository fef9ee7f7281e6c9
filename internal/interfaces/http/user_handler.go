package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
)

// UserHandler usuarios de la empresa efectiva.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario en la empresa efectiva
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        subCompanyId  query  string                 false  "Subempresa destino"
// @Param        body          body   dto.CreateUserRequest  true   "datos del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), callerFrom(c), targetFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkImport godoc
// @Summary      Alta masiva desde una planilla (.xlsx)
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        subCompanyId  query     string  false  "Subempresa destino"
// @Param        file          formData  file    true   "planilla de usuarios"
// @Success      200  {object}  dto.BulkImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/bulk [post]
func (h *UserHandler) BulkImport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file es requerido"})
	}
	f, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.uc.BulkImport(c.UserContext(), callerFrom(c), targetFrom(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Usuarios de la empresa efectiva
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        subCompanyId  query  string  false  "Subempresa destino"
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), callerFrom(c), targetFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Usuario por ID
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        id            path   string  true   "ID del usuario"
// @Param        subCompanyId  query  string  false  "Subempresa destino"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), callerFrom(c), targetFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (solo los campos enviados)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id            path   string                 true   "ID del usuario"
// @Param        subCompanyId  query  string                 false  "Subempresa destino"
// @Param        body          body   dto.UpdateUserRequest  true   "campos a modificar"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), callerFrom(c), targetFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar usuario
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/activate [post]
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.UserContext(), callerFrom(c), targetFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inactivate godoc
// @Summary      Inactivar usuario
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/inactivate [post]
func (h *UserHandler) Inactivate(c *fiber.Ctx) error {
	out, err := h.uc.Inactivate(c.UserContext(), callerFrom(c), targetFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
