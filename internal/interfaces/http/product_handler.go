package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/dto"
	"github.com/invetex/cortes-api/internal/application/products"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// ProductHandler maneja productos y subproductos (protegido).
type ProductHandler struct {
	uc *products.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *products.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Audit.Active,
	}
}

func toSubproductDTO(s *entity.Subproduct) dto.SubproductDTO {
	return dto.SubproductDTO{
		ID:        s.ID,
		ProductID: s.ProductID,
		Name:      s.Name,
		Active:    s.Audit.Active,
	}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name"
// @Success      201   {object}  dto.ProductDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.CreateProduct(products.CreateProductInput{
		CompanyID:   GetCompanyID(c),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductDTO(p))
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductDTO(p))
}

// List godoc
// @Summary      Listar o buscar productos
// @Description  Con q busca por nombre normalizado (insensible a tildes y mayúsculas).
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "texto de búsqueda"
// @Param        limit   query  int     false  "máximo de resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.SearchProducts(c.Context(), GetCompanyID(c), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProductDTO(p))
	}
	return c.JSON(out)
}

// CreateSubproduct godoc
// @Summary      Crear subproducto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del producto"
// @Param        body  body  dto.CreateSubproductRequest  true  "name"
// @Success      201   {object}  dto.SubproductDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/subproducts [post]
func (h *ProductHandler) CreateSubproduct(c *fiber.Ctx) error {
	var in dto.CreateSubproductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.CreateSubproduct(GetCompanyID(c), c.Params("id"), in.Name, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSubproductDTO(s))
}

// ListSubproducts godoc
// @Summary      Listar subproductos de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SubproductDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/subproducts [get]
func (h *ProductHandler) ListSubproducts(c *fiber.Ctx) error {
	list, err := h.uc.ListSubproducts(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SubproductDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toSubproductDTO(s))
	}
	return c.JSON(out)
}
