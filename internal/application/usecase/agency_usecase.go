package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// AgencyUseCase alta y consulta de agencias (tenants).
type AgencyUseCase struct {
	agencies repository.AgencyRepository
}

// NewAgencyUseCase construye el caso de uso.
func NewAgencyUseCase(agencies repository.AgencyRepository) *AgencyUseCase {
	return &AgencyUseCase{agencies: agencies}
}

// Create registra una agencia en plan free.
func (uc *AgencyUseCase) Create(ctx context.Context, in dto.CreateAgencyRequest) (*dto.AgencyResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, fmt.Errorf("%w: nombre y NIT son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	a := &entity.Agency{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Plan:      "free",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.agencies.Create(ctx, a); err != nil {
		return nil, err
	}
	resp := toAgencyResponse(a)
	return &resp, nil
}

// GetByID devuelve una agencia.
func (uc *AgencyUseCase) GetByID(ctx context.Context, id string) (*dto.AgencyResponse, error) {
	a, err := uc.agencies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	resp := toAgencyResponse(a)
	return &resp, nil
}

// List lista agencias con paginación.
func (uc *AgencyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.AgencyResponse, error) {
	page.DefaultPage()
	list, err := uc.agencies.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgencyResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAgencyResponse(a))
	}
	return out, nil
}

func toAgencyResponse(a *entity.Agency) dto.AgencyResponse {
	return dto.AgencyResponse{
		ID:        a.ID,
		Name:      a.Name,
		TaxID:     a.TaxID,
		Address:   a.Address,
		Phone:     a.Phone,
		Email:     a.Email,
		Plan:      a.Plan,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}
