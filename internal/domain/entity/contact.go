package entity

import "time"

// Tipos de contacto.
const (
	ContactRenter = "renter" // arrendatario
	ContactOwner  = "owner"  // propietario
)

// Contact representa un arrendatario o propietario de la inmobiliaria.
type Contact struct {
	ID         string
	AgencyID   string
	Kind       string // renter, owner
	Name       string
	DocumentID string // cédula o NIT
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
