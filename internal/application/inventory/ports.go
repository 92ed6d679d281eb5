package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el registro de identificadores y el alta de lotes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		identifierRepo repository.IdentifierRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// ImportRow fila leída de una planilla de inventario. Los campos numéricos y de fecha
// llegan como texto y se validan al importar.
type ImportRow struct {
	Line        int // número de fila en la hoja (1 = cabecera)
	ProductName string
	CompanyName string
	HSNCode     string
	MfgDate     string
	ExpiryDate  string
	Units       string
	MRP         string
	Discount    string
	IGSTPct     string
	CGSTPct     string
	SGSTPct     string
}

// SpreadsheetReader lee las filas de una planilla de inventario.
type SpreadsheetReader interface {
	ReadBatches(r io.Reader) ([]ImportRow, error)
}

// SpreadsheetWriter escribe el inventario en una planilla.
type SpreadsheetWriter interface {
	WriteBatches(w io.Writer, batches []*entity.BatchWithCompany) error
}
