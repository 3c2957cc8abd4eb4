package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos
// atados a ella. Toda mutación financiera de una factura (abonos, cargos,
// mora, reconciliación) corre dentro de RunInvoice, combinada con
// GetByIDForUpdate para serializar por factura: dos abonos simultáneos no
// pueden leer ambos un saldo viejo y sobrepagar.
type BillingTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		invoices repository.InvoiceRepository,
		payments repository.PaymentRepository,
	) error) error

	// RunContract transacción para la activación de contrato: chequeo de
	// solapamiento, generación de facturas y marca de idempotencia atómicos.
	RunContract(ctx context.Context, fn func(
		contracts repository.ContractRepository,
		invoices repository.InvoiceRepository,
	) error) error

	// RunExtraction transacción para la aprobación de un cargo extraído por
	// OCR: la línea nueva de la factura, la reconciliación y el cambio de
	// estado del cargo extraído se confirman o revierten juntos.
	RunExtraction(ctx context.Context, fn func(
		invoices repository.InvoiceRepository,
		payments repository.PaymentRepository,
		extracted repository.ExtractedChargeRepository,
	) error) error
}

// ExtractedBill resultado del colaborador OCR para una factura de servicios.
type ExtractedBill struct {
	Amount     decimal.Decimal
	Reference  string
	Period     string
	Confidence float64
}

// BillExtractor puerto hacia el servicio externo de extracción de texto.
// La implementación es un recurso perezoso con Shutdown explícito
// (infrastructure/ocr), nunca un handle global de módulo.
type BillExtractor interface {
	ExtractBill(ctx context.Context, pdf []byte) (*ExtractedBill, error)
}

// InvoicePDFGenerator puerto para la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		agency *entity.Agency,
		renter *entity.Contact,
		contract *entity.Contract,
	) ([]byte, error)
}
