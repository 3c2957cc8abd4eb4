package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// ExtractedChargeRepository puerto de persistencia para cargos extraídos por OCR.
type ExtractedChargeRepository interface {
	Create(ctx context.Context, ec *entity.ExtractedCharge) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.ExtractedCharge, error)
	ListPending(ctx context.Context, agencyID string, limit, offset int) ([]*entity.ExtractedCharge, error)
	UpdateStatus(ctx context.Context, agencyID, id, status string) error
}
