package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del contrato de arrendamiento.
const (
	ContractStatusDraft     = "draft"
	ContractStatusSigned    = "signed"
	ContractStatusActive    = "active"
	ContractStatusExpiring  = "expiring" // vence dentro de los próximos 30 días
	ContractStatusExpired   = "expired"
	ContractStatusCancelled = "cancelled"
)

// Tipos de recargo por mora.
const (
	LateFeeNone    = "none"
	LateFeeFixed   = "fixed"   // LateFeeValue es un monto
	LateFeePercent = "percent" // LateFeeValue es un porcentaje sobre el subtotal
)

// ActiveFamilyStatuses estados que cuentan como "contrato vigente" para la
// validación de solapamiento por inmueble+arrendatario.
var ActiveFamilyStatuses = []string{ContractStatusSigned, ContractStatusActive, ContractStatusExpiring}

// Contract representa un contrato de arrendamiento entre propietario y arrendatario.
type Contract struct {
	ID              string
	AgencyID        string
	Number          string // consecutivo legible, único por agencia (ej. CTR-2024-0001)
	PropertyID      string
	RenterContactID string
	OwnerContactID  string
	StartDate       time.Time // fecha calendario, inclusive
	EndDate         time.Time // fecha calendario, inclusive
	RentAmount      decimal.Decimal
	PaymentDay      int    // día del mes en que vence cada factura, 1..30
	LateFeeType     string // none, fixed, percent
	LateFeeValue    decimal.Decimal
	Status          string
	// InvoicesGenerated evita duplicar la generación de facturas si el
	// contrato se reactiva o el caller reintenta la activación.
	InvoicesGenerated bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActiveFamily indica si el estado cuenta como vigente para el chequeo de solapamiento.
func (c *Contract) IsActiveFamily() bool {
	for _, s := range ActiveFamilyStatuses {
		if c.Status == s {
			return true
		}
	}
	return false
}
