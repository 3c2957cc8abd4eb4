package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// PropertyRepository puerto de persistencia para inmuebles.
type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.Property, error)
	List(ctx context.Context, agencyID string, limit, offset int) ([]*entity.Property, error)
	Delete(ctx context.Context, agencyID, id string) error
}
