package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCard     = "card"
	PaymentMethodOther    = "other"
)

// Payment representa un abono contra una factura. La suma de abonos de una
// factura nunca supera su TotalAmount (validado con el saldo leído bajo
// bloqueo de fila antes de escribir).
type Payment struct {
	ID          string
	AgencyID    string
	InvoiceID   string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string // cash, transfer, card, other
	Reference   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
