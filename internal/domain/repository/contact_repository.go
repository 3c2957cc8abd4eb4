package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// ContactRepository puerto de persistencia para contactos (arrendatarios y propietarios).
// Toda lectura exige agencyID: ningún lookup del core puede cruzar tenants.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.Contact, error)
	List(ctx context.Context, agencyID, kind string, limit, offset int) ([]*entity.Contact, error)
	Delete(ctx context.Context, agencyID, id string) error
}
