package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/cuts"
	"github.com/invetex/cortes-api/internal/application/dto"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// CuttingHandler maneja órdenes de corte (protegido).
type CuttingHandler struct {
	uc *cuts.CuttingOrderUseCase
}

// NewCuttingHandler construye el handler.
func NewCuttingHandler(uc *cuts.CuttingOrderUseCase) *CuttingHandler {
	return &CuttingHandler{uc: uc}
}

func toOrderDTO(o *entity.CuttingOrder) dto.CuttingOrderDTO {
	out := dto.CuttingOrderDTO{
		ID:             o.ID,
		Customer:       o.Customer,
		WorkflowStatus: o.WorkflowStatus,
		Items:          make([]dto.CuttingOrderItemDTO, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.CuttingOrderItemDTO{
			ID:              it.ID,
			SubproductID:    it.SubproductID,
			CuttingQuantity: it.CuttingQuantity,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear orden de corte
// @Description  Desde su creación los ítems reservan stock de los subproductos.
// @Tags         cutting-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCuttingOrderRequest  true  "items con subproduct_id y quantity"
// @Success      201   {object}  dto.CuttingOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cutting-orders [post]
func (h *CuttingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCuttingOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]cuts.OrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, cuts.OrderItemInput{SubproductID: it.SubproductID, Quantity: it.Quantity})
	}
	order, err := h.uc.CreateOrder(c.Context(), cuts.CreateOrderInput{
		CompanyID: GetCompanyID(c),
		Customer:  in.Customer,
		Items:     items,
		Actor:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderDTO(order))
}

// GetByID godoc
// @Summary      Obtener orden de corte
// @Tags         cutting-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.CuttingOrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cutting-orders/{id} [get]
func (h *CuttingHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderDTO(order))
}

// List godoc
// @Summary      Listar órdenes de corte
// @Tags         cutting-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CuttingOrderDTO
// @Router       /api/cutting-orders [get]
func (h *CuttingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.ListOrders(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CuttingOrderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderDTO(o))
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una orden
// @Description  Completar la orden descuenta el stock de cada ítem en una sola transacción.
// @Tags         cutting-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.ChangeOrderStatusRequest  true  "status destino"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cutting-orders/{id}/status [patch]
func (h *CuttingHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangeStatus(c.Context(), GetCompanyID(c), c.Params("id"), in.Status, GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": in.Status})
}
