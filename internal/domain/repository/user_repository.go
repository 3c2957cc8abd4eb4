package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndAgency(ctx context.Context, email, agencyID string) (*entity.User, error)
	GetByID(ctx context.Context, agencyID, id string) (*entity.User, error)
}
