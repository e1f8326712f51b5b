package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/dto"
	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// StockHandler maneja snapshots, eventos del libro y disponibilidad (protegido).
type StockHandler struct {
	snapshots    *stocks.SnapshotUseCase
	events       *stocks.AppendEventUseCase
	availability *stocks.AvailabilityUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	snapshots *stocks.SnapshotUseCase,
	events *stocks.AppendEventUseCase,
	availability *stocks.AvailabilityUseCase,
) *StockHandler {
	return &StockHandler{snapshots: snapshots, events: events, availability: availability}
}

func toSnapshotDTO(s *entity.StockSnapshot) dto.SnapshotDTO {
	out := dto.SnapshotDTO{
		ID:       s.ID,
		Quantity: s.Quantity,
		Active:   s.Audit.Active,
	}
	if s.ProductID != nil {
		out.ProductID = *s.ProductID
	}
	if s.SubproductID != nil {
		out.SubproductID = *s.SubproductID
	}
	return out
}

func toEventDTO(ev *entity.StockEvent) dto.StockEventDTO {
	return dto.StockEventDTO{
		ID:             ev.ID,
		EventType:      ev.EventType,
		QuantityChange: ev.QuantityChange,
		Notes:          ev.Notes,
		CreatedAt:      ev.CreatedAt,
		CreatedBy:      ev.CreatedBy,
	}
}

// CreateSnapshot godoc
// @Summary      Iniciar rastreo de stock
// @Description  Crea el snapshot de un producto o subproducto con su carga inicial.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSnapshotRequest  true  "product_id o subproduct_id, initial_quantity"
// @Success      201   {object}  dto.SnapshotDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) CreateSnapshot(c *fiber.Ctx) error {
	var in dto.CreateSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.snapshots.CreateSnapshot(c.Context(), stocks.CreateSnapshotInput{
		ProductID:       in.ProductID,
		SubproductID:    in.SubproductID,
		InitialQuantity: in.InitialQuantity,
		Actor:           GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSnapshotDTO(s))
}

// GetSnapshot godoc
// @Summary      Consultar snapshot por entidad
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "ID del producto"
// @Param        subproduct_id  query  string  false  "ID del subproducto"
// @Success      200  {object}  dto.SnapshotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks [get]
func (h *StockHandler) GetSnapshot(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	subproductID := c.Query("subproduct_id")
	if (productID == "") == (subproductID == "") {
		return writeError(c, domain.ErrAmbiguousTarget)
	}

	var s *entity.StockSnapshot
	var err error
	if productID != "" {
		s, err = h.snapshots.GetByProduct(productID)
	} else {
		s, err = h.snapshots.GetBySubproduct(subproductID)
	}
	if err != nil {
		return writeError(c, err)
	}
	if s == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(toSnapshotDTO(s))
}

// DeleteSnapshot godoc
// @Summary      Dar de baja un snapshot
// @Description  Borrado lógico; no altera la cantidad ni el libro de eventos.
// @Tags         stocks
// @Security     Bearer
// @Param        id  path  string  true  "ID del snapshot"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) DeleteSnapshot(c *fiber.Ctx) error {
	if err := h.snapshots.SoftDelete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppendEvent godoc
// @Summary      Agregar evento al libro de stock
// @Description  El signo del cambio debe corresponder al tipo de evento (entradas positivas, salidas negativas).
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendEventRequest  true  "product_id o subproduct_id, event_type, quantity_change"
// @Success      201   {object}  dto.StockEventDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/events [post]
func (h *StockHandler) AppendEvent(c *fiber.Ctx) error {
	var in dto.AppendEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ev, err := h.events.AppendEvent(c.Context(), stocks.AppendEventInput{
		ProductID:      in.ProductID,
		SubproductID:   in.SubproductID,
		EventType:      in.EventType,
		QuantityChange: in.QuantityChange,
		Notes:          in.Notes,
		Actor:          GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEventDTO(ev))
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual
// @Description  Normaliza dirección ingreso/egreso y cantidad cruda al evento con signo.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id o subproduct_id, direction, quantity"
// @Success      201   {object}  dto.StockEventDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks/adjustments [post]
func (h *StockHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ev, err := h.events.RegisterAdjustment(c.Context(), in.ProductID, in.SubproductID, in.Direction, in.Quantity, in.Notes, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEventDTO(ev))
}

// ListEvents godoc
// @Summary      Historial de eventos de un snapshot
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del snapshot"
// @Param        subproduct  query  bool    false  "true si el snapshot es de subproducto"
// @Success      200  {array}  dto.StockEventDTO
// @Router       /api/stocks/{id}/events [get]
func (h *StockHandler) ListEvents(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	forSubproduct := c.QueryBool("subproduct")
	list, err := h.events.ListEvents(c.Params("id"), forSubproduct, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockEventDTO, 0, len(list))
	for _, ev := range list {
		out = append(out, toEventDTO(ev))
	}
	return c.JSON(out)
}

// GetAvailability godoc
// @Summary      Disponibilidad de un subproducto
// @Description  Stock en mano menos reservas abiertas por órdenes de corte.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del subproducto"
// @Success      200  {object}  dto.AvailabilityDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/availability/{id} [get]
func (h *StockHandler) GetAvailability(c *fiber.Ctx) error {
	av, err := h.availability.ForSubproduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AvailabilityDTO{
		SubproductID: av.SubproductID,
		OnHand:       av.OnHand,
		Reserved:     av.Reserved,
		Available:    av.Available,
	})
}
