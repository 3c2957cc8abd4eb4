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

// PropertyUseCase CRUD de inmuebles administrados.
type PropertyUseCase struct {
	properties repository.PropertyRepository
	contacts   repository.ContactRepository
}

// NewPropertyUseCase construye el caso de uso.
func NewPropertyUseCase(properties repository.PropertyRepository, contacts repository.ContactRepository) *PropertyUseCase {
	return &PropertyUseCase{properties: properties, contacts: contacts}
}

// Create registra un inmueble. El propietario debe existir en la agencia y ser
// un contacto kind=owner.
func (uc *PropertyUseCase) Create(ctx context.Context, agencyID string, in dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if in.Address == "" {
		return nil, fmt.Errorf("%w: dirección requerida", domain.ErrInvalidInput)
	}
	owner, err := uc.contacts.GetByID(ctx, agencyID, in.OwnerContactID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: propietario %s", domain.ErrNotFound, in.OwnerContactID)
	}
	if owner.Kind != entity.ContactOwner {
		return nil, fmt.Errorf("%w: el contacto %s no es propietario", domain.ErrInvalidInput, in.OwnerContactID)
	}
	if in.ReferenceRent.IsNegative() {
		return nil, fmt.Errorf("%w: el canon de referencia no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Property{
		ID:             uuid.New().String(),
		AgencyID:       agencyID,
		OwnerContactID: in.OwnerContactID,
		Address:        in.Address,
		City:           in.City,
		Description:    in.Description,
		ReferenceRent:  in.ReferenceRent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// Update actualiza los campos presentes en la petición.
func (uc *PropertyUseCase) Update(ctx context.Context, agencyID, id string, in dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	p, err := uc.properties.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Address != nil {
		if *in.Address == "" {
			return nil, fmt.Errorf("%w: dirección requerida", domain.ErrInvalidInput)
		}
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ReferenceRent != nil {
		if in.ReferenceRent.IsNegative() {
			return nil, fmt.Errorf("%w: el canon de referencia no puede ser negativo", domain.ErrInvalidInput)
		}
		p.ReferenceRent = *in.ReferenceRent
	}
	p.UpdatedAt = time.Now()
	if err := uc.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// GetByID devuelve un inmueble de la agencia.
func (uc *PropertyUseCase) GetByID(ctx context.Context, agencyID, id string) (*dto.PropertyResponse, error) {
	p, err := uc.properties.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// List lista los inmuebles de la agencia.
func (uc *PropertyUseCase) List(ctx context.Context, agencyID string, page dto.PageRequest) (*dto.PropertyListResponse, error) {
	page.DefaultPage()
	list, err := uc.properties.List(ctx, agencyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.PropertyListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, p := range list {
		resp.Items = append(resp.Items, toPropertyResponse(p))
	}
	return resp, nil
}

// Delete elimina un inmueble. La FK de contratos impide borrar uno referenciado.
func (uc *PropertyUseCase) Delete(ctx context.Context, agencyID, id string) error {
	p, err := uc.properties.GetByID(ctx, agencyID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.properties.Delete(ctx, agencyID, id)
}

func toPropertyResponse(p *entity.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:             p.ID,
		AgencyID:       p.AgencyID,
		OwnerContactID: p.OwnerContactID,
		Address:        p.Address,
		City:           p.City,
		Description:    p.Description,
		ReferenceRent:  p.ReferenceRent,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
