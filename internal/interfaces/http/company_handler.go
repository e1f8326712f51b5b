package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/auth"
	"github.com/invetex/cortes-api/internal/application/dto"
)

// CompanyHandler maneja empresas (público por ahora, igual que el registro).
type CompanyHandler struct {
	uc *auth.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *auth.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "name"
// @Success      201   {object}  dto.CompanyDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.uc.Create(in.Name, in.TaxID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CompanyDTO{ID: company.ID, Name: company.Name, TaxID: company.TaxID})
}

// GetByID godoc
// @Summary      Obtener empresa
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CompanyDTO{ID: company.ID, Name: company.Name, TaxID: company.TaxID})
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Success      200  {array}  dto.CompanyDTO
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CompanyDTO, 0, len(list))
	for _, company := range list {
		out = append(out, dto.CompanyDTO{ID: company.ID, Name: company.Name, TaxID: company.TaxID})
	}
	return c.JSON(out)
}
