package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de cargo. La clasificación es por Kind, nunca por el texto de la
// descripción: la descripción es solo para mostrar.
const (
	ChargeKindRent       = "rent"
	ChargeKindLateFee    = "late_fee"
	ChargeKindAdjustment = "adjustment"
	ChargeKindOther      = "other"
)

// InvoiceCharge representa una línea de cargo de una factura.
type InvoiceCharge struct {
	ID          string
	InvoiceID   string
	Kind        string // rent, late_fee, adjustment, other
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}
