package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResponse salida de una factura con sus totales derivados.
type InvoiceResponse struct {
	ID              string            `json:"id"`
	AgencyID        string            `json:"agency_id"`
	ContractID      string            `json:"contract_id"`
	RenterContactID string            `json:"renter_contact_id"`
	Number          string            `json:"number"`
	IssueDate       string            `json:"issue_date"`
	DueDate         string            `json:"due_date"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Tax             decimal.Decimal   `json:"tax"`
	OtherCharges    decimal.Decimal   `json:"other_charges"`
	LateFee         decimal.Decimal   `json:"late_fee"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	AmountPaid      decimal.Decimal   `json:"amount_paid"`
	Status          string            `json:"status"`
	Charges         []ChargeResponse  `json:"charges,omitempty"`
	Payments        []PaymentResponse `json:"payments,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ChargeResponse salida de una línea de cargo.
type ChargeResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// AddChargeRequest entrada para agregar un cargo manual a una factura.
type AddChargeRequest struct {
	Kind        string          `json:"kind" validate:"required,oneof=rent adjustment other"`
	Description string          `json:"description" validate:"required,max=300"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalsResponse totales derivados que devuelve el motor de reconciliación.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	LateFee  decimal.Decimal `json:"late_fee"`
	Total    decimal.Decimal `json:"total"`
}

// CreatePaymentRequest entrada para registrar un abono contra una factura.
type CreatePaymentRequest struct {
	Amount      string `json:"amount" validate:"required"`
	PaymentDate string `json:"payment_date" validate:"required"`
	Method      string `json:"method" validate:"required,oneof=cash transfer card other"`
	Reference   string `json:"reference" validate:"omitempty,max=100"`
}

// UpdatePaymentRequest entrada parcial para corregir un abono.
type UpdatePaymentRequest struct {
	Amount      *string `json:"amount"`
	PaymentDate *string `json:"payment_date"`
	Method      *string `json:"method"`
	Reference   *string `json:"reference"`
}

// PaymentResponse salida de un abono.
type PaymentResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SubmitBillRequest entrada para la ingesta OCR de una factura de servicios
// (el PDF llega en base64; la extracción la hace el colaborador externo).
type SubmitBillRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required,uuid"`
	PDFBase64 string `json:"pdf_base64" validate:"required"`
}

// ExtractedChargeResponse salida de un cargo extraído pendiente de aprobación.
type ExtractedChargeResponse struct {
	ID         string          `json:"id"`
	InvoiceID  string          `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference"`
	Period     string          `json:"period"`
	Confidence float64         `json:"confidence"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
