package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// AgencyRepository puerto de persistencia para agencias (tenants).
type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	GetByID(ctx context.Context, id string) (*entity.Agency, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Agency, error)
}
