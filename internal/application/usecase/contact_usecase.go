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

// ContactUseCase CRUD de contactos (arrendatarios y propietarios).
type ContactUseCase struct {
	contacts repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(contacts repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{contacts: contacts}
}

// Create registra un contacto de la agencia.
func (uc *ContactUseCase) Create(ctx context.Context, agencyID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if in.Kind != entity.ContactRenter && in.Kind != entity.ContactOwner {
		return nil, fmt.Errorf("%w: kind %q inválido", domain.ErrInvalidInput, in.Kind)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Contact{
		ID:         uuid.New().String(),
		AgencyID:   agencyID,
		Kind:       in.Kind,
		Name:       in.Name,
		DocumentID: in.DocumentID,
		Email:      in.Email,
		Phone:      in.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// Update actualiza los campos presentes en la petición.
func (uc *ContactUseCase) Update(ctx context.Context, agencyID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	c, err := uc.contacts.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	c.UpdatedAt = time.Now()
	if err := uc.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// GetByID devuelve un contacto de la agencia.
func (uc *ContactUseCase) GetByID(ctx context.Context, agencyID, id string) (*dto.ContactResponse, error) {
	c, err := uc.contacts.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// List lista contactos, opcionalmente filtrados por kind (renter/owner).
func (uc *ContactUseCase) List(ctx context.Context, agencyID, kind string, page dto.PageRequest) (*dto.ContactListResponse, error) {
	page.DefaultPage()
	list, err := uc.contacts.List(ctx, agencyID, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ContactListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, c := range list {
		resp.Items = append(resp.Items, toContactResponse(c))
	}
	return resp, nil
}

// Delete elimina un contacto. La FK de contratos impide borrar uno referenciado.
func (uc *ContactUseCase) Delete(ctx context.Context, agencyID, id string) error {
	c, err := uc.contacts.GetByID(ctx, agencyID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.contacts.Delete(ctx, agencyID, id)
}

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:         c.ID,
		AgencyID:   c.AgencyID,
		Kind:       c.Kind,
		Name:       c.Name,
		DocumentID: c.DocumentID,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
