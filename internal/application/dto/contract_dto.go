package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractRequest entrada para crear un contrato de arrendamiento.
// Fechas en formato 2006-01-02; montos como strings decimales (2 decimales máx).
type CreateContractRequest struct {
	Number          string `json:"number" validate:"required,max=40"`
	PropertyID      string `json:"property_id" validate:"required,uuid"`
	RenterContactID string `json:"renter_contact_id" validate:"required,uuid"`
	OwnerContactID  string `json:"owner_contact_id" validate:"required,uuid"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	RentAmount      string `json:"rent_amount" validate:"required"`
	PaymentDay      int    `json:"payment_day" validate:"required,min=1,max=30"`
	LateFeeType     string `json:"late_fee_type" validate:"omitempty,oneof=none fixed percent"`
	LateFeeValue    string `json:"late_fee_value"`
}

// UpdateContractRequest entrada parcial para actualizar un contrato no activo.
type UpdateContractRequest struct {
	EndDate      *string `json:"end_date"`
	RentAmount   *string `json:"rent_amount"`
	PaymentDay   *int    `json:"payment_day"`
	LateFeeType  *string `json:"late_fee_type"`
	LateFeeValue *string `json:"late_fee_value"`
	Status       *string `json:"status"`
}

// ContractResponse salida de un contrato.
type ContractResponse struct {
	ID                string          `json:"id"`
	AgencyID          string          `json:"agency_id"`
	Number            string          `json:"number"`
	PropertyID        string          `json:"property_id"`
	RenterContactID   string          `json:"renter_contact_id"`
	OwnerContactID    string          `json:"owner_contact_id"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	RentAmount        decimal.Decimal `json:"rent_amount"`
	PaymentDay        int             `json:"payment_day"`
	LateFeeType       string          `json:"late_fee_type"`
	LateFeeValue      decimal.Decimal `json:"late_fee_value"`
	Status            string          `json:"status"`
	InvoicesGenerated bool            `json:"invoices_generated"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ContractListResponse listado paginado de contratos.
type ContractListResponse struct {
	Items []ContractResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ActivateContractResponse salida de la activación: el contrato ya activo y
// las facturas generadas (o las existentes si la activación se reintentó).
type ActivateContractResponse struct {
	Contract ContractResponse  `json:"contract"`
	Invoices []InvoiceResponse `json:"invoices"`
}
