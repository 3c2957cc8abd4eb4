package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura de arrendamiento.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPartial   = "partial"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la factura mensual de un contrato.
//
// Invariantes que mantiene el motor de reconciliación (domain/billing):
//   - TotalAmount = Subtotal + Tax + OtherCharges + LateFee
//   - AmountPaid  = suma de los abonos vigentes
//   - Status es función pura de AmountPaid vs TotalAmount (el estado overdue
//     solo lo re-deriva el job diario a partir de la fecha de vencimiento)
type Invoice struct {
	ID              string
	AgencyID        string
	ContractID      string
	RenterContactID string
	Number          string    // {contract.Number}-NNN, único
	IssueDate       time.Time // primer día del mes facturado
	DueDate         time.Time // día PaymentDay del mes, ajustado al último día real
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	OtherCharges    decimal.Decimal
	LateFee         decimal.Decimal
	TotalAmount     decimal.Decimal
	AmountPaid      decimal.Decimal
	Status          string
	// LateFeeAppliedAt marca que la mora ya fue aplicada; hace idempotente el
	// job de acumulación frente a reintentos.
	LateFeeAppliedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Cargados de forma eager por GetByID del repositorio.
	Charges  []*InvoiceCharge
	Payments []*Payment
}
