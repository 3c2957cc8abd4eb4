package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePropertyRequest entrada para crear un inmueble.
type CreatePropertyRequest struct {
	OwnerContactID string          `json:"owner_contact_id" validate:"required,uuid"`
	Address        string          `json:"address" validate:"required,max=300"`
	City           string          `json:"city" validate:"omitempty,max=100"`
	Description    string          `json:"description" validate:"omitempty,max=1000"`
	ReferenceRent  decimal.Decimal `json:"reference_rent"`
}

// UpdatePropertyRequest entrada parcial para actualizar un inmueble.
type UpdatePropertyRequest struct {
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	Description   *string          `json:"description"`
	ReferenceRent *decimal.Decimal `json:"reference_rent"`
}

// PropertyResponse salida de un inmueble.
type PropertyResponse struct {
	ID             string          `json:"id"`
	AgencyID       string          `json:"agency_id"`
	OwnerContactID string          `json:"owner_contact_id"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	Description    string          `json:"description"`
	ReferenceRent  decimal.Decimal `json:"reference_rent"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PropertyListResponse listado paginado de inmuebles.
type PropertyListResponse struct {
	Items []PropertyResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
