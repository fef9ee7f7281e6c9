package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
)

// CompanyHandler onboarding, planes y empresa efectiva.
type CompanyHandler struct {
	uc    *usecase.CompanyUseCase
	plans *usecase.SubscriptionService
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, plans *usecase.SubscriptionService) *CompanyHandler {
	return &CompanyHandler{uc: uc, plans: plans}
}

// Onboard godoc
// @Summary      Alta de empresa con suscripción y primer superusuario
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OnboardCompanyRequest  true  "empresa, plan y superusuario"
// @Success      201   {object}  dto.OnboardCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/onboard [post]
func (h *CompanyHandler) Onboard(c *fiber.Ctx) error {
	var in dto.OnboardCompanyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Onboard(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPlans godoc
// @Summary      Planes de suscripción disponibles
// @Tags         companies
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *CompanyHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.plans.ListPlans(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetEffective godoc
// @Summary      Empresa efectiva (origen o subempresa indicada)
// @Tags         companies
// @Produce      json
// @Security     Bearer
// @Param        subCompanyId    query  string  false  "Subempresa destino"
// @Param        sub_company_id  query  string  false  "Alias de subCompanyId"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) GetEffective(c *fiber.Ctx) error {
	out, err := h.uc.GetEffective(c.UserContext(), callerFrom(c), targetFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateEffective godoc
// @Summary      Actualizar la empresa efectiva
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        subCompanyId  query  string                    false  "Subempresa destino"
// @Param        body          body   dto.UpdateCompanyRequest  true   "nombre, ABN, contacto, ubicación"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) UpdateEffective(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateEffective(c.UserContext(), callerFrom(c), targetFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ────────────────────────────────────────────────────────────────
// Subempresas
// ────────────────────────────────────────────────────────────────

// ListSubCompanies godoc
// @Summary      Subempresas de la empresa padre
// @Tags         sub-companies
// @Produce      json
// @Security     Bearer
// @Param        parentId  path  string  true  "Empresa padre"
// @Success      200  {array}   dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/sub-companies [get]
func (h *CompanyHandler) ListSubCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListSubCompanies(c.UserContext(), callerFrom(c), c.Params("parentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSubCompany godoc
// @Summary      Crear subempresa (opcionalmente con superusuarios asignados)
// @Tags         sub-companies
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        parentId  path  string                       true  "Empresa padre"
// @Param        body      body  dto.CreateSubCompanyRequest  true  "datos de la subempresa"
// @Success      201  {object}  dto.SubCompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/sub-companies [post]
func (h *CompanyHandler) CreateSubCompany(c *fiber.Ctx) error {
	var in dto.CreateSubCompanyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateSubCompany(c.UserContext(), callerFrom(c), c.Params("parentId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSubCompany godoc
// @Summary      Detalle de subempresa con sus superusuarios
// @Tags         sub-companies
// @Produce      json
// @Security     Bearer
// @Param        parentId      path  string  true  "Empresa padre"
// @Param        subCompanyId  path  string  true  "Subempresa"
// @Success      200  {object}  dto.SubCompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/sub-companies/{subCompanyId} [get]
func (h *CompanyHandler) GetSubCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetSubCompany(c.UserContext(), callerFrom(c), c.Params("parentId"), c.Params("subCompanyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignSuperUsers godoc
// @Summary      Asignar superusuarios del padre a una subempresa
// @Tags         sub-companies
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        parentId      path  string                       true  "Empresa padre"
// @Param        subCompanyId  path  string                       true  "Subempresa"
// @Param        body          body  dto.AssignSuperUsersRequest  true  "ids y modo (reemplazar o agregar)"
// @Success      200  {object}  dto.SubCompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/sub-companies/{subCompanyId}/super-users [put]
func (h *CompanyHandler) AssignSuperUsers(c *fiber.Ctx) error {
	var in dto.AssignSuperUsersRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignSuperUsers(c.UserContext(), callerFrom(c), c.Params("parentId"), c.Params("subCompanyId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListParentSuperUsers godoc
// @Summary      Superusuarios activos del padre (candidatos a asignar)
// @Tags         sub-companies
// @Produce      json
// @Security     Bearer
// @Param        parentId  path  string  true  "Empresa padre"
// @Success      200  {array}   dto.SuperUserOption
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/super-users [get]
func (h *CompanyHandler) ListParentSuperUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListParentSuperUsers(c.UserContext(), callerFrom(c), c.Params("parentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUserCompanyOptions godoc
// @Summary      Empresas que un usuario puede operar (padre primero)
// @Tags         sub-companies
// @Produce      json
// @Security     Bearer
// @Param        parentId  path  string  true  "Empresa padre"
// @Param        userId    path  string  true  "Usuario"
// @Success      200  {array}   dto.CompanyOption
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{parentId}/users/{userId}/company-options [get]
func (h *CompanyHandler) ListUserCompanyOptions(c *fiber.Ctx) error {
	out, err := h.uc.ListUserCompanyOptions(c.UserContext(), callerFrom(c), c.Params("parentId"), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
