package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invetex/cortes-api/internal/application/auth"
	"github.com/invetex/cortes-api/internal/application/cuts"
	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/application/products"
	"github.com/invetex/cortes-api/internal/application/reports"
	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/infrastructure/notify"
	"github.com/invetex/cortes-api/internal/infrastructure/postgres"
	httpRouter "github.com/invetex/cortes-api/internal/interfaces/http"
	"github.com/invetex/cortes-api/pkg/config"
	"github.com/invetex/cortes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	subproductRepo := postgres.NewSubproductRepository(pool)
	snapshotRepo := postgres.NewStockSnapshotRepository(pool)
	eventRepo := postgres.NewStockEventRepository(pool)
	orderRepo := postgres.NewCuttingOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	expenseTypeRepo := postgres.NewExpenseTypeRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	allocationRepo := postgres.NewPaymentAllocationRepository(pool)
	reportRepo := postgres.NewStockReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewLogNotifier()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, cfg.JWT)
	companyUC := auth.NewCompanyUseCase(companyRepo)
	productUC := products.NewProductUseCase(productRepo, subproductRepo)
	snapshotUC := stocks.NewSnapshotUseCase(txRunner, snapshotRepo, productRepo, subproductRepo)
	appendEventUC := stocks.NewAppendEventUseCase(txRunner, snapshotRepo, eventRepo, notifier)
	availabilityUC := stocks.NewAvailabilityUseCase(snapshotRepo, orderRepo)
	cuttingOrderUC := cuts.NewCuttingOrderUseCase(txRunner, orderRepo, subproductRepo, snapshotRepo, notifier)
	expenseRegistry := expenses.NewRegistryUseCase(supplierRepo, expenseTypeRepo, expenseRepo, paymentRepo, allocationRepo)
	allocatePayment := expenses.NewAllocatePaymentUseCase(txRunner, notifier)
	reportUC := reports.NewReportUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cortes ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		ProductUC:       productUC,
		SnapshotUC:      snapshotUC,
		AppendEventUC:   appendEventUC,
		AvailabilityUC:  availabilityUC,
		CuttingOrderUC:  cuttingOrderUC,
		ExpenseRegistry: expenseRegistry,
		AllocatePayment: allocatePayment,
		ReportUC:        reportUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
