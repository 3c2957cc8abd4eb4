package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsurancePolicy representa la póliza de arrendamiento asociada a un contrato.
// Alimenta el reporte mensual a aseguradoras del job recurrente.
type InsurancePolicy struct {
	ID            string
	AgencyID      string
	ContractID    string
	Insurer       string
	PolicyNumber  string
	PremiumAmount decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
