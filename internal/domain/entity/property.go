package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property representa un inmueble administrado por la inmobiliaria.
type Property struct {
	ID             string
	AgencyID       string
	OwnerContactID string
	Address        string
	City           string
	Description    string
	ReferenceRent  decimal.Decimal // canon de referencia; el canon real va en el contrato
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
