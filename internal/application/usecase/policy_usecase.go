package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// PolicyUseCase registro y consulta de pólizas de arrendamiento.
type PolicyUseCase struct {
	policies  repository.InsurancePolicyRepository
	contracts repository.ContractRepository
}

// NewPolicyUseCase construye el caso de uso.
func NewPolicyUseCase(policies repository.InsurancePolicyRepository, contracts repository.ContractRepository) *PolicyUseCase {
	return &PolicyUseCase{policies: policies, contracts: contracts}
}

// Create registra una póliza asociada a un contrato existente de la agencia.
func (uc *PolicyUseCase) Create(ctx context.Context, agencyID string, in dto.CreatePolicyRequest) (*dto.PolicyResponse, error) {
	if in.Insurer == "" || in.PolicyNumber == "" {
		return nil, fmt.Errorf("%w: aseguradora y número de póliza requeridos", domain.ErrInvalidInput)
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior a la de inicio", domain.ErrInvalidInput)
	}
	premium, err := billing.ParseAmount(in.PremiumAmount)
	if err != nil {
		return nil, err
	}
	if !premium.IsPositive() {
		return nil, fmt.Errorf("%w: la prima debe ser mayor que cero", domain.ErrInvalidInput)
	}

	contract, err := uc.contracts.GetByID(ctx, agencyID, in.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: contrato %s", domain.ErrNotFound, in.ContractID)
	}

	now := time.Now()
	p := &entity.InsurancePolicy{
		ID:            uuid.New().String(),
		AgencyID:      agencyID,
		ContractID:    in.ContractID,
		Insurer:       in.Insurer,
		PolicyNumber:  in.PolicyNumber,
		PremiumAmount: premium,
		StartDate:     start,
		EndDate:       end,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.policies.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toPolicyResponse(p)
	return &resp, nil
}

// GetByID devuelve una póliza de la agencia.
func (uc *PolicyUseCase) GetByID(ctx context.Context, agencyID, id string) (*dto.PolicyResponse, error) {
	p, err := uc.policies.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPolicyResponse(p)
	return &resp, nil
}

// ListByContract lista las pólizas de un contrato.
func (uc *PolicyUseCase) ListByContract(ctx context.Context, agencyID, contractID string) ([]dto.PolicyResponse, error) {
	list, err := uc.policies.ListByContract(ctx, agencyID, contractID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PolicyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPolicyResponse(p))
	}
	return out, nil
}

func toPolicyResponse(p *entity.InsurancePolicy) dto.PolicyResponse {
	return dto.PolicyResponse{
		ID:            p.ID,
		AgencyID:      p.AgencyID,
		ContractID:    p.ContractID,
		Insurer:       p.Insurer,
		PolicyNumber:  p.PolicyNumber,
		PremiumAmount: p.PremiumAmount,
		StartDate:     p.StartDate.Format(dto.DateLayout),
		EndDate:       p.EndDate.Format(dto.DateLayout),
		CreatedAt:     p.CreatedAt,
	}
}
