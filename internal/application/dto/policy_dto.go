package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePolicyRequest entrada para registrar una póliza de arrendamiento.
type CreatePolicyRequest struct {
	ContractID    string `json:"contract_id" validate:"required,uuid"`
	Insurer       string `json:"insurer" validate:"required,max=200"`
	PolicyNumber  string `json:"policy_number" validate:"required,max=60"`
	PremiumAmount string `json:"premium_amount" validate:"required"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
}

// PolicyResponse salida de una póliza.
type PolicyResponse struct {
	ID            string          `json:"id"`
	AgencyID      string          `json:"agency_id"`
	ContractID    string          `json:"contract_id"`
	Insurer       string          `json:"insurer"`
	PolicyNumber  string          `json:"policy_number"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
