package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invetex/cortes-api/internal/application/auth"
	"github.com/invetex/cortes-api/internal/application/cuts"
	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/application/products"
	"github.com/invetex/cortes-api/internal/application/reports"
	"github.com/invetex/cortes-api/internal/application/stocks"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *auth.CompanyUseCase
	ProductUC       *products.ProductUseCase
	SnapshotUC      *stocks.SnapshotUseCase
	AppendEventUC   *stocks.AppendEventUseCase
	AvailabilityUC  *stocks.AvailabilityUseCase
	CuttingOrderUC  *cuts.CuttingOrderUseCase
	ExpenseRegistry *expenses.RegistryUseCase
	AllocatePayment *expenses.AllocatePaymentUseCase
	ReportUC        *reports.ReportUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companyGroup := api.Group("/companies")
	companyGroup.Post("/", companyHandler.Create)
	companyGroup.Get("/", companyHandler.List)
	companyGroup.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	productGroup := protected.Group("/products")
	productGroup.Post("/", productHandler.Create)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Post("/:id/subproducts", productHandler.CreateSubproduct)
	productGroup.Get("/:id/subproducts", productHandler.ListSubproducts)

	// Stocks (protegido)
	stockHandler := NewStockHandler(deps.SnapshotUC, deps.AppendEventUC, deps.AvailabilityUC)
	stockGroup := protected.Group("/stocks")
	stockGroup.Post("/", stockHandler.CreateSnapshot)
	stockGroup.Get("/", stockHandler.GetSnapshot)
	stockGroup.Post("/events", stockHandler.AppendEvent)
	stockGroup.Post("/adjustments", RequireRole("admin", "bodeguero"), stockHandler.RegisterAdjustment)
	stockGroup.Get("/availability/:id", stockHandler.GetAvailability)
	stockGroup.Get("/:id/events", stockHandler.ListEvents)
	stockGroup.Delete("/:id", stockHandler.DeleteSnapshot)

	// Cutting orders (protegido)
	cuttingHandler := NewCuttingHandler(deps.CuttingOrderUC)
	cuttingGroup := protected.Group("/cutting-orders")
	cuttingGroup.Post("/", cuttingHandler.Create)
	cuttingGroup.Get("/", cuttingHandler.List)
	cuttingGroup.Get("/:id", cuttingHandler.GetByID)
	cuttingGroup.Patch("/:id/status", cuttingHandler.ChangeStatus)

	// Expenses y payments (protegido)
	expenseHandler := NewExpenseHandler(deps.ExpenseRegistry, deps.AllocatePayment)
	supplierGroup := protected.Group("/suppliers")
	supplierGroup.Post("/", expenseHandler.CreateSupplier)
	supplierGroup.Get("/", expenseHandler.ListSuppliers)

	typeGroup := protected.Group("/expense-types")
	typeGroup.Post("/", RequireRole("admin"), expenseHandler.CreateExpenseType)
	typeGroup.Get("/", expenseHandler.ListExpenseTypes)

	expenseGroup := protected.Group("/expenses")
	expenseGroup.Post("/", expenseHandler.CreateExpense)
	expenseGroup.Get("/:id", expenseHandler.GetExpense)

	paymentGroup := protected.Group("/payments")
	paymentGroup.Post("/", expenseHandler.CreatePayment)
	paymentGroup.Get("/:id", expenseHandler.GetPayment)
	paymentGroup.Post("/:id/allocations", expenseHandler.Allocate)
	paymentGroup.Get("/:id/allocations", expenseHandler.ListAllocations)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup := protected.Group("/reports")
	reportGroup.Get("/stock-summary", reportHandler.StockSummary)
}
