package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas y sus cargos.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateCharge(ctx context.Context, charge *entity.InvoiceCharge) error

	// GetByID devuelve la factura con cargos y abonos cargados de forma eager.
	GetByID(ctx context.Context, agencyID, id string) (*entity.Invoice, error)

	// GetByIDForUpdate lee solo la cabecera con SELECT ... FOR UPDATE.
	// Debe invocarse dentro de una transacción: serializa las mutaciones
	// financieras por factura (validación de saldo, mora, reconciliación).
	GetByIDForUpdate(ctx context.Context, agencyID, id string) (*entity.Invoice, error)

	// UpdateTotals persiste los campos derivados por el motor de reconciliación:
	// subtotal, late_fee, total_amount, amount_paid, status y late_fee_applied_at.
	UpdateTotals(ctx context.Context, invoice *entity.Invoice) error

	ListByContract(ctx context.Context, agencyID, contractID string) ([]*entity.Invoice, error)
	List(ctx context.Context, agencyID, status string, limit, offset int) ([]*entity.Invoice, error)
	ListCharges(ctx context.Context, invoiceID string) ([]*entity.InvoiceCharge, error)

	// ListDueOn devuelve las facturas (de todas las agencias) con vencimiento
	// en la fecha dada y estado dentro de statuses. Lo consume el job diario.
	ListDueOn(ctx context.Context, dueDate time.Time, statuses []string) ([]*entity.Invoice, error)

	// Delete elimina la factura y sus cargos. El caller debe garantizar antes
	// que no existan abonos (ErrInvoiceHasPayments).
	Delete(ctx context.Context, agencyID, id string) error
}
