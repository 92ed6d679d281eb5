package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
	"github.com/shopspring/decimal"
)

// importDateLayouts formatos de fecha aceptados en planillas.
var importDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// defaultShelfLifeYears vencimiento asumido cuando la fila no trae fecha de vencimiento.
const defaultShelfLifeYears = 2

// SpreadsheetUseCase importación y exportación de inventario en planillas.
type SpreadsheetUseCase struct {
	receiver    *ReceiveBatchUseCase
	companyRepo repository.CompanyRepository
	batchRepo   repository.BatchRepository
	reader      SpreadsheetReader
	writer      SpreadsheetWriter
	log         *logger.Logger
}

// NewSpreadsheetUseCase construye el caso de uso.
func NewSpreadsheetUseCase(
	receiver *ReceiveBatchUseCase,
	companyRepo repository.CompanyRepository,
	batchRepo repository.BatchRepository,
	reader SpreadsheetReader,
	writer SpreadsheetWriter,
	log *logger.Logger,
) *SpreadsheetUseCase {
	return &SpreadsheetUseCase{
		receiver:    receiver,
		companyRepo: companyRepo,
		batchRepo:   batchRepo,
		reader:      reader,
		writer:      writer,
		log:         log,
	}
}

// Import da de alta un lote por fila. Los errores de validación quedan en el resultado de
// la fila y la importación sigue; un error de almacenamiento la corta.
func (uc *SpreadsheetUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := uc.reader.ReadBatches(r)
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}

	companies := map[string]string{}
	out := &dto.ImportResponse{Rows: make([]dto.ImportRowResult, 0, len(rows))}
	for _, row := range rows {
		res := dto.ImportRowResult{Line: row.Line}
		code, err := uc.importRow(ctx, row, companies)
		if err != nil {
			if errors.Is(err, domain.ErrStorage) {
				return nil, fmt.Errorf("importar fila %d: %w", row.Line, err)
			}
			res.Error = err.Error()
			out.Failed++
		} else {
			res.BatchCode = code
			out.Imported++
		}
		out.Rows = append(out.Rows, res)
	}
	uc.log.Info().Int("imported", out.Imported).Int("failed", out.Failed).Msg("planilla importada")
	return out, nil
}

func (uc *SpreadsheetUseCase) importRow(ctx context.Context, row ImportRow, companies map[string]string) (string, error) {
	name := strings.TrimSpace(row.CompanyName)
	if name == "" {
		return "", domain.NewValidationError("company_name", "es obligatorio")
	}
	companyID, ok := companies[name]
	if !ok {
		c, err := uc.companyRepo.GetByName(ctx, name)
		if err != nil {
			return "", err
		}
		if c == nil {
			return "", domain.NewValidationError("company_name", fmt.Sprintf("empresa %q no registrada", name))
		}
		companyID = c.ID
		companies[name] = companyID
	}

	in, err := parseImportRow(row)
	if err != nil {
		return "", err
	}
	in.CompanyID = companyID
	b, err := uc.receiver.Receive(ctx, in)
	if err != nil {
		return "", err
	}
	return b.BatchCode, nil
}

func parseImportRow(row ImportRow) (ReceiveBatchInput, error) {
	in := ReceiveBatchInput{ProductName: row.ProductName, HSNCode: row.HSNCode}

	mfg, err := parseImportDate(row.MfgDate)
	if err != nil {
		return in, domain.NewValidationError("manufacture_date", err.Error())
	}
	in.ManufactureDate = mfg
	if strings.TrimSpace(row.ExpiryDate) == "" {
		in.ExpiryDate = mfg.AddDate(defaultShelfLifeYears, 0, 0)
	} else if in.ExpiryDate, err = parseImportDate(row.ExpiryDate); err != nil {
		return in, domain.NewValidationError("expiry_date", err.Error())
	}

	units, err := parseUnits(row.Units)
	if err != nil {
		return in, domain.NewValidationError("units", err.Error())
	}
	in.Units = units

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"mrp", row.MRP, &in.MRP},
		{"discount_pct", row.Discount, &in.DiscountPct},
		{"igst_pct", row.IGSTPct, &in.IGSTPct},
		{"cgst_pct", row.CGSTPct, &in.CGSTPct},
		{"sgst_pct", row.SGSTPct, &in.SGSTPct},
	}
	for _, f := range fields {
		d, err := parseDecimal(f.raw)
		if err != nil {
			return in, domain.NewValidationError(f.name, "número inválido")
		}
		*f.dst = d
	}
	return in, nil
}

func parseImportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("es obligatoria")
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q no reconocida", s)
}

// parseUnits acepta enteros y números con parte decimal nula ("12.0" de celdas numéricas).
func parseUnits(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("cantidad %q inválida", s)
	}
	return int(d.IntPart()), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// Export escribe el inventario filtrado en w.
func (uc *SpreadsheetUseCase) Export(ctx context.Context, w io.Writer, q dto.BatchListQuery) error {
	list, err := uc.batchRepo.List(ctx, repository.BatchFilter{
		Search:       strings.TrimSpace(q.Search),
		CompanyID:    q.CompanyID,
		IncludeEmpty: q.IncludeEmpty,
	})
	if err != nil {
		return err
	}
	if err := uc.writer.WriteBatches(w, list); err != nil {
		return fmt.Errorf("escribir planilla: %w", err)
	}
	return nil
}
