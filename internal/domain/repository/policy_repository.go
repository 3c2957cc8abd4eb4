package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// InsurancePolicyRepository puerto de persistencia para pólizas de arrendamiento.
type InsurancePolicyRepository interface {
	Create(ctx context.Context, policy *entity.InsurancePolicy) error
	Update(ctx context.Context, policy *entity.InsurancePolicy) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.InsurancePolicy, error)
	ListByContract(ctx context.Context, agencyID, contractID string) ([]*entity.InsurancePolicy, error)

	// ListActiveAt pólizas vigentes en la fecha dada, de todas las agencias
	// (reporte mensual a aseguradoras).
	ListActiveAt(ctx context.Context, at time.Time) ([]*entity.InsurancePolicy, error)
}
