package entity

import "time"

// Agency representa una inmobiliaria/tenant del sistema (multi-tenant).
// No confundir con el arrendatario (Contact con kind=renter).
type Agency struct {
	ID        string
	Name      string
	TaxID     string // NIT (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Plan      string // free, pro, enterprise — asignado por el proveedor de suscripciones
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
