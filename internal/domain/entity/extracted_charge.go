package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un cargo extraído por OCR.
const (
	ExtractedPending  = "pending"
	ExtractedApproved = "approved"
	ExtractedRejected = "rejected"
)

// ExtractedCharge es el resultado de pasar una factura de servicios públicos
// por el colaborador OCR: un cargo propuesto que un usuario debe aprobar.
// Al aprobarse se crea un InvoiceCharge (kind=other) y se reconcilia la factura.
type ExtractedCharge struct {
	ID         string
	AgencyID   string
	InvoiceID  string
	Amount     decimal.Decimal
	Reference  string // número de la factura del servicio
	Period     string // periodo facturado, texto libre del extractor
	Confidence float64
	Status     string // pending, approved, rejected
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
