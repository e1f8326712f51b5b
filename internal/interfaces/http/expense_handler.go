package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/dto"
	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// ExpenseHandler maneja proveedores, gastos, pagos e imputaciones (protegido).
type ExpenseHandler struct {
	registry *expenses.RegistryUseCase
	allocate *expenses.AllocatePaymentUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(registry *expenses.RegistryUseCase, allocate *expenses.AllocatePaymentUseCase) *ExpenseHandler {
	return &ExpenseHandler{registry: registry, allocate: allocate}
}

func toExpenseDTO(e *entity.Expense) dto.ExpenseDTO {
	return dto.ExpenseDTO{
		ID:            e.ID,
		SupplierID:    e.SupplierID,
		ExpenseTypeID: e.ExpenseTypeID,
		Status:        e.Status,
		NetAmount:     e.NetAmount,
		VATAmount:     e.VATAmount,
		AmountPaid:    e.AmountPaid,
		Outstanding:   e.OutstandingBalance(),
	}
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name"
// @Success      201   {object}  dto.SupplierDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *ExpenseHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.registry.CreateSupplier(GetCompanyID(c), in.Name, in.TaxID, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SupplierDTO{ID: s.ID, Name: s.Name, TaxID: s.TaxID})
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierDTO
// @Router       /api/suppliers [get]
func (h *ExpenseHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, err := h.registry.ListSuppliers(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SupplierDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupplierDTO{ID: s.ID, Name: s.Name, TaxID: s.TaxID})
	}
	return c.JSON(out)
}

// CreateExpenseType godoc
// @Summary      Crear tipo de gasto
// @Description  Define la regla de retención: porcentaje y monto mínimo a partir del cual aplica.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseTypeRequest  true  "name, retention_percent, retention_minimum"
// @Success      201   {object}  dto.ExpenseTypeDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expense-types [post]
func (h *ExpenseHandler) CreateExpenseType(c *fiber.Ctx) error {
	var in dto.CreateExpenseTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.registry.CreateExpenseType(in.Name, in.RetentionPercent, in.RetentionMinimum)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExpenseTypeDTO{
		ID:               t.ID,
		Name:             t.Name,
		RetentionPercent: t.RetentionPercent,
		RetentionMinimum: t.RetentionMinimum,
	})
}

// ListExpenseTypes godoc
// @Summary      Listar tipos de gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpenseTypeDTO
// @Router       /api/expense-types [get]
func (h *ExpenseHandler) ListExpenseTypes(c *fiber.Ctx) error {
	list, err := h.registry.ListExpenseTypes()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ExpenseTypeDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ExpenseTypeDTO{
			ID:               t.ID,
			Name:             t.Name,
			RetentionPercent: t.RetentionPercent,
			RetentionMinimum: t.RetentionMinimum,
		})
	}
	return c.JSON(out)
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "supplier_id, expense_type_id, net_amount, vat_amount"
// @Success      201   {object}  dto.ExpenseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, err := h.registry.CreateExpense(expenses.CreateExpenseInput{
		CompanyID:     GetCompanyID(c),
		SupplierID:    in.SupplierID,
		ExpenseTypeID: in.ExpenseTypeID,
		NetAmount:     in.NetAmount,
		VATAmount:     in.VATAmount,
		Actor:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExpenseDTO(e))
}

// GetExpense godoc
// @Summary      Obtener gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	e, err := h.registry.GetExpense(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toExpenseDTO(e))
}

// CreatePayment godoc
// @Summary      Emitir pago
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.PaymentDTO
// @Router       /api/payments [post]
func (h *ExpenseHandler) CreatePayment(c *fiber.Ctx) error {
	p, err := h.registry.CreatePayment(GetCompanyID(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PaymentDTO{
		ID:                   p.ID,
		Status:               p.Status,
		RetentionTotalAmount: p.RetentionTotalAmount,
	})
}

// GetPayment godoc
// @Summary      Obtener pago
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *ExpenseHandler) GetPayment(c *fiber.Ctx) error {
	p, err := h.registry.GetPayment(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PaymentDTO{
		ID:                   p.ID,
		Status:               p.Status,
		RetentionTotalAmount: p.RetentionTotalAmount,
	})
}

// Allocate godoc
// @Summary      Imputar pago a un gasto
// @Description  Descuenta el saldo del gasto y recalcula la retención total del pago en una sola transacción.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del pago"
// @Param        body  body  dto.AllocatePaymentRequest  true  "expense_id, amount"
// @Success      201   {object}  dto.AllocationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/allocations [post]
func (h *ExpenseHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.allocate.Allocate(c.Context(), expenses.AllocateInput{
		CompanyID: GetCompanyID(c),
		PaymentID: c.Params("id"),
		ExpenseID: in.ExpenseID,
		Amount:    in.Amount,
		Actor:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AllocationDTO{
		ID:        a.ID,
		PaymentID: a.PaymentID,
		ExpenseID: a.ExpenseID,
		Amount:    a.Amount,
	})
}

// ListAllocations godoc
// @Summary      Listar imputaciones de un pago
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {array}  dto.AllocationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/allocations [get]
func (h *ExpenseHandler) ListAllocations(c *fiber.Ctx) error {
	list, err := h.registry.ListAllocations(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AllocationDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AllocationDTO{
			ID:        a.ID,
			PaymentID: a.PaymentID,
			ExpenseID: a.ExpenseID,
			Amount:    a.Amount,
		})
	}
	return c.JSON(out)
}
