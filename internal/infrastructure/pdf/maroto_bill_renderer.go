// Package pdf implementa la representación gráfica de las facturas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + GSTIN        │  Bill N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Móvil / Dirección                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Lote | HSN | Cant | Tarifa | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL + monto en letras      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/facturacion-lotes/internal/application/billing"
)

var _ appbilling.InvoiceRenderer = (*MarotoBillRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDraft   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// Shop datos de la tienda impresos en el encabezado.
type Shop struct {
	Name    string
	Address string
	GST     string
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoBillRenderer implementa billing.InvoiceRenderer usando Maroto v2.
type MarotoBillRenderer struct {
	shop     Shop
	currency string
	printer  *message.Printer
}

// NewMarotoBillRenderer construye el renderizador. Los montos se formatean con la
// agrupación de en-IN (1,23,456.00).
func NewMarotoBillRenderer(shop Shop, currencySymbol string) *MarotoBillRenderer {
	return &MarotoBillRenderer{
		shop:     shop,
		currency: currencySymbol,
		printer:  message.NewPrinter(language.MustParse("en-IN")),
	}
}

// RenderBill genera el PDF y devuelve sus bytes.
func (r *MarotoBillRenderer) RenderBill(ctx context.Context, data *appbilling.BillData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.title(data), true).
		WithAuthor(r.shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(data))
	if data.Draft() {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("BORRADOR - SIN VALOR FISCAL", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorDraft, Top: 1,
			}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(r.tableDetailRows(data.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.totalsRow(data))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Amount in words: "+data.TotalInWords, props.Text{Size: 8, Top: 2, Color: colorGray}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *MarotoBillRenderer) title(data *appbilling.BillData) string {
	if data.Draft() {
		return "Bill (draft)"
	}
	return "Bill #" + strconv.FormatInt(data.Number, 10)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + GSTIN (izq) y número + fecha (der).
func (r *MarotoBillRenderer) headerRow(data *appbilling.BillData) core.Row {
	number := "DRAFT"
	if !data.Draft() {
		number = "Bill #" + strconv.FormatInt(data.Number, 10)
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(r.shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.shop.Address, "-"), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
			text.New("GSTIN: "+nonEmpty(r.shop.GST, "-"), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+data.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(data *appbilling.BillData) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Mobile: %s   |   Address: %s",
				nonEmpty(data.CustomerMobile, "-"),
				nonEmpty(data.CustomerAddress, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Product", 4, align.Left),
		h("Batch", 2, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Center),
		h("Rate", 1, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea.
func (r *MarotoBillRenderer) tableDetailRows(items []appbilling.BillDataItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.BatchCode, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.HSNCode, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(r.Money(it.Rate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(r.Money(it.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (r *MarotoBillRenderer) totalsRow(data *appbilling.BillData) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	taxLabel := fmt.Sprintf("Tax (%s%%):", data.TaxRate.Mul(decimal.NewFromInt(100)).StringFixed(0))

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label(taxLabel, 7),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(3).Add(
			value(r.Money(data.Subtotal), 1),
			value(r.Money(data.Tax), 7),
			text.New(r.Money(data.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money símbolo de moneda + monto con dos decimales y separadores de en-IN.
func (r *MarotoBillRenderer) Money(d decimal.Decimal) string {
	return r.currency + r.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
