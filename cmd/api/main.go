package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/application/usecase"
	infraexcel "github.com/jhoicas/facturacion-lotes/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/facturacion-lotes/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-lotes/internal/interfaces/http"
	"github.com/jhoicas/facturacion-lotes/pkg/config"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Dir:   cfg.Log.Dir,
	})
	if err != nil {
		panic("iniciar logger: " + err.Error())
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tax_rate", cfg.Billing.TaxRate.String()).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	identifierRepo := postgres.NewIdentifierRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	historyRepo := postgres.NewBatchHistoryRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	identifierUC := inventory.NewIdentifierUseCase(txRunner, identifierRepo, log)
	batchCodeUC := inventory.NewBatchCodeUseCase(identifierUC, batchRepo)
	receiveUC := inventory.NewReceiveBatchUseCase(txRunner, identifierUC, companyRepo, batchRepo, log)
	allocatorUC := inventory.NewAllocatorUseCase(batchRepo)
	sheet := infraexcel.NewBatchSheet()
	spreadsheetUC := inventory.NewSpreadsheetUseCase(receiveUC, companyRepo, batchRepo, sheet, sheet, log)
	historyUC := inventory.NewHistoryReportUseCase(historyRepo)

	renderer := infrapdf.NewMarotoBillRenderer(infrapdf.Shop{
		Name:    cfg.Billing.ShopName,
		Address: cfg.Billing.ShopAddress,
		GST:     cfg.Billing.ShopGST,
	}, cfg.Billing.CurrencySymbol)
	finalizeUC := billing.NewFinalizeUseCase(txRunner, log)
	invoiceUC := billing.NewInvoiceUseCase(billRepo, renderer, cfg.Billing.BillsDir, cfg.Billing.TaxRate, log)
	salesUC := billing.NewSalesReportUseCase(billRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, batchRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // planillas de importación
	})
	app.Use(recover.New())
	app.Use(httpRouter.LoopbackOnly())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		CustomerUC:    customerUC,
		IdentifierUC:  identifierUC,
		BatchCodeUC:   batchCodeUC,
		ReceiveUC:     receiveUC,
		AllocatorUC:   allocatorUC,
		SpreadsheetUC: spreadsheetUC,
		HistoryUC:     historyUC,
		FinalizeUC:    finalizeUC,
		InvoiceUC:     invoiceUC,
		SalesUC:       salesUC,
		Session:       httpRouter.NewBillSession(cfg.Billing.TaxRate),
		Log:           log,
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
