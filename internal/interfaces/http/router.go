package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/application/usecase"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	CustomerUC    *billing.CustomerUseCase
	IdentifierUC  *inventory.IdentifierUseCase
	BatchCodeUC   *inventory.BatchCodeUseCase
	ReceiveUC     *inventory.ReceiveBatchUseCase
	AllocatorUC   *inventory.AllocatorUseCase
	SpreadsheetUC *inventory.SpreadsheetUseCase
	HistoryUC     *inventory.HistoryReportUseCase
	FinalizeUC    *billing.FinalizeUseCase
	InvoiceUC     *billing.InvoiceUseCase
	SalesUC       *billing.SalesReportUseCase
	Session       *BillSession
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	log := deps.Log

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	identifiers := api.Group("/identifiers")
	identifierHandler := NewIdentifierHandler(deps.IdentifierUC, log)
	identifiers.Get("/", identifierHandler.List)
	identifiers.Get("/peek", identifierHandler.Peek)
	identifiers.Put("/:id", identifierHandler.UpdatePrefix)
	identifiers.Delete("/:id", identifierHandler.Delete)

	// Rutas fijas antes de /:id
	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.ReceiveUC, deps.BatchCodeUC, deps.SpreadsheetUC, log)
	batches.Post("/", batchHandler.Receive)
	batches.Get("/", batchHandler.List)
	batches.Get("/code-preview", batchHandler.PreviewCode)
	batches.Get("/products", batchHandler.ProductNames)
	batches.Get("/export", batchHandler.Export)
	batches.Post("/import", batchHandler.Import)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Delete("/:id", batchHandler.Delete)

	stockHandler := NewStockHandler(deps.AllocatorUC, log)
	api.Post("/stock/allocate", stockHandler.Allocate)

	billHandler := NewBillHandler(deps.Session, deps.AllocatorUC, deps.FinalizeUC, deps.InvoiceUC, log)
	bill := api.Group("/bill")
	bill.Get("/", billHandler.Draft)
	bill.Delete("/", billHandler.Clear)
	bill.Post("/items", billHandler.AddItem)
	bill.Delete("/items/:index", billHandler.RemoveItem)
	bill.Post("/finalize", billHandler.Finalize)
	bill.Get("/draft.pdf", billHandler.DraftPDF)

	bills := api.Group("/bills")
	bills.Get("/:id", billHandler.GetBill)
	bills.Get("/:id/pdf", billHandler.BillPDF)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.SalesUC, deps.HistoryUC, log)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/batch-history", reportHandler.BatchHistory)
}
