package repository

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para abonos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, agencyID, id string) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
	CountByInvoice(ctx context.Context, invoiceID string) (int, error)
}
