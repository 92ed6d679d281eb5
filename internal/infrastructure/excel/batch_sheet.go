// Package excel lee y escribe planillas de inventario (.xlsx) con excelize.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	appinventory "github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

var (
	_ appinventory.SpreadsheetReader = (*BatchSheet)(nil)
	_ appinventory.SpreadsheetWriter = (*BatchSheet)(nil)
)

const (
	sheetName  = "Sheet1"
	dateLayout = "2006-01-02"
)

// ExportColumns cabecera de la exportación de inventario.
var ExportColumns = []string{
	"Product Name", "Date of MFG", "Date of Expiry", "Batch No", "MRP", "Discount (%)",
	"HSN Code", "Units", "Rate", "Taxable Amount", "IGST", "CGST", "SGST", "Total Amount",
	"Amount in Words", "Company Name", "Company Address", "Company GST",
}

type column int

const (
	colProduct column = iota
	colCompany
	colHSN
	colMfg
	colExpiry
	colUnits
	colMRP
	colDiscount
	colIGST
	colCGST
	colSGST
	numColumns
)

// headerAliases nombres aceptados por columna (en minúsculas, espacios colapsados).
var headerAliases = map[string]column{
	"product name":   colProduct,
	"company name":   colCompany,
	"hsn code":       colHSN,
	"date of mfg":    colMfg,
	"date of expiry": colExpiry,
	"units":          colUnits,
	"mrp":            colMRP,
	"discount":       colDiscount,
	"discount (%)":   colDiscount,
	"discount %":     colDiscount,
	"igst %":         colIGST,
	"igst (%)":       colIGST,
	"cgst %":         colCGST,
	"cgst (%)":       colCGST,
	"sgst %":         colSGST,
	"sgst (%)":       colSGST,
}

var requiredColumns = map[column]string{
	colProduct:  "Product Name",
	colCompany:  "Company Name",
	colHSN:      "HSN Code",
	colMfg:      "Date of MFG",
	colUnits:    "Units",
	colMRP:      "MRP",
	colDiscount: "Discount",
}

// BatchSheet implementa la lectura y escritura de lotes en .xlsx.
type BatchSheet struct{}

// NewBatchSheet construye el adaptador.
func NewBatchSheet() *BatchSheet { return &BatchSheet{} }

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ReadBatches lee la primera hoja. La fila 1 es la cabecera; las columnas se ubican por
// nombre y las filas vacías se ignoran.
func (s *BatchSheet) ReadBatches(r io.Reader) ([]appinventory.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("la planilla no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("la planilla está vacía")
	}

	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range rows[0] {
		if c, ok := headerAliases[normalizeHeader(h)]; ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	for c, name := range requiredColumns {
		if idx[c] < 0 {
			return nil, fmt.Errorf("falta la columna %q", name)
		}
	}

	out := make([]appinventory.ImportRow, 0, len(rows)-1)
	for n, cells := range rows[1:] {
		cell := func(c column) string {
			i := idx[c]
			if i < 0 || i >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[i])
		}
		if strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		out = append(out, appinventory.ImportRow{
			Line:        n + 2,
			ProductName: cell(colProduct),
			CompanyName: cell(colCompany),
			HSNCode:     cell(colHSN),
			MfgDate:     cell(colMfg),
			ExpiryDate:  cell(colExpiry),
			Units:       cell(colUnits),
			MRP:         cell(colMRP),
			Discount:    cell(colDiscount),
			IGSTPct:     cell(colIGST),
			CGSTPct:     cell(colCGST),
			SGSTPct:     cell(colSGST),
		})
	}
	return out, nil
}

// WriteBatches escribe el inventario en una hoja con cabecera en negrita.
func (s *BatchSheet) WriteBatches(w io.Writer, batches []*entity.BatchWithCompany) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(ExportColumns))
	for i, h := range ExportColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(ExportColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return err
	}

	for i, b := range batches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			b.ProductName,
			b.ManufactureDate.Format(dateLayout),
			b.ExpiryDate.Format(dateLayout),
			b.BatchCode,
			b.MRP.InexactFloat64(),
			b.DiscountPct.InexactFloat64(),
			b.HSNCode,
			b.UnitsRemaining,
			b.UnitRate.InexactFloat64(),
			b.TaxableAmount.InexactFloat64(),
			b.IGST.InexactFloat64(),
			b.CGST.InexactFloat64(),
			b.SGST.InexactFloat64(),
			b.TotalAmount.InexactFloat64(),
			b.AmountInWords,
			b.CompanyName,
			b.CompanyAddress,
			b.CompanyGST,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}
