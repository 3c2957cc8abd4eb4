// Package pdf implementa la representación PDF de la factura mensual de
// arrendamiento que la inmobiliaria entrega al arrendatario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Inmobiliaria + NIT  │  N° Factura + Fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INMOBILIARIA: Dirección / Tel / Email                      │
//	│  ARRENDATARIO: Nombre + CC/NIT + contacto                   │
//	│  CONTRATO: número + vigencia                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Descripción | Valor                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Mora / TOTAL / Abonado / Saldo         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appbilling "github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// Etiquetas legibles por clase de cargo.
var kindLabels = map[string]string{
	entity.ChargeKindRent:       "Canon",
	entity.ChargeKindLateFee:    "Mora",
	entity.ChargeKindAdjustment: "Ajuste",
	entity.ChargeKindOther:      "Otro",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	agency *entity.Agency,
	renter *entity.Contact,
	contract *entity.Contract,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Arrendamiento", true).
		WithAuthor(agency.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, agency))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(agencyRow(agency))
	m.AddRows(renterRow(renter))
	m.AddRows(contractRow(contract))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range chargeRows(invoice.Charges) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))
	m.AddRows(statusRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: inmobiliaria + NIT (izq) y N° de factura + fechas (der).
func headerRow(invoice *entity.Invoice, agency *entity.Agency) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(agency.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+agency.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE ARRENDAMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Emisión: %s   Vence: %s",
				invoice.IssueDate.Format("02/01/2006"),
				invoice.DueDate.Format("02/01/2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// agencyRow: datos de contacto de la inmobiliaria.
func agencyRow(agency *entity.Agency) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("INMOBILIARIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(agency.Address, "—"),
				nonEmpty(agency.Phone, "—"),
				nonEmpty(agency.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// renterRow: datos del arrendatario.
func renterRow(renter *entity.Contact) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ARRENDATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(renter.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CC/NIT: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(renter.DocumentID, "—"),
				nonEmpty(renter.Email, "—"),
				nonEmpty(renter.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// contractRow: número y vigencia del contrato facturado.
func contractRow(contract *entity.Contract) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Contrato %s   |   Vigencia: %s a %s",
				contract.Number,
				contract.StartDate.Format("02/01/2006"),
				contract.EndDate.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cargos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 2, align.Left),
		h("Descripción", 7, align.Left),
		h("Valor", 3, align.Right),
	)
}

// chargeRows: una fila por línea de cargo.
func chargeRows(charges []*entity.InvoiceCharge) []core.Row {
	result := make([]core.Row, 0, len(charges))
	for _, ch := range charges {
		label := kindLabels[ch.Kind]
		if label == "" {
			label = ch.Kind
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(7).Add(text.New(
				ch.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(ch.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	balance := invoice.TotalAmount.Sub(invoice.AmountPaid)

	return row.New(40).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:"),
			label("Mora:"),
			grandLabel("TOTAL:"),
			label("Abonado:"),
			label("Saldo:"),
		),
		col.New(4).Add(
			value("$"+formatMoney(invoice.Subtotal.StringFixed(0))),
			value("$"+formatMoney(invoice.LateFee.StringFixed(0))),
			grandValue("$"+formatMoney(invoice.TotalAmount.StringFixed(0))),
			value("$"+formatMoney(invoice.AmountPaid.StringFixed(0))),
			value("$"+formatMoney(balance.StringFixed(0))),
		),
		col.New(1),
	)
}

// statusRow: estado de la factura, resaltado si está en mora.
func statusRow(invoice *entity.Invoice) core.Row {
	color := colorGray
	if invoice.Status == entity.InvoiceStatusOverdue {
		color = colorAlert
	}
	return row.New(10).Add(col.New(12).Add(
		text.New("Estado: "+invoice.Status, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: color, Top: 3,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
