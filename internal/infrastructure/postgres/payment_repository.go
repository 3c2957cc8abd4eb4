package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para abonos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un nuevo abono.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, agency_id, invoice_id, amount, payment_date, method, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AgencyID, p.InvoiceID, p.Amount, p.PaymentDate, p.Method, p.Reference, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// Update actualiza un abono existente.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments SET amount = $2, payment_date = $3, method = $4, reference = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Amount, p.PaymentDate, p.Method, p.Reference, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete elimina un abono.
func (r *PaymentRepo) Delete(ctx context.Context, agencyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE agency_id = $1 AND id = $2`, agencyID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// GetByID obtiene un abono por ID.
func (r *PaymentRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Payment, error) {
	query := `
		SELECT id, agency_id, invoice_id, amount, payment_date, method, reference, created_at, updated_at
		FROM payments WHERE agency_id = $1 AND id = $2`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&p.ID, &p.AgencyID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByInvoice lista los abonos de una factura en orden de pago.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, agency_id, invoice_id, amount, payment_date, method, reference, created_at, updated_at
		FROM payments WHERE invoice_id = $1 ORDER BY payment_date, created_at`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.AgencyID, &p.InvoiceID, &p.Amount, &p.PaymentDate,
			&p.Method, &p.Reference, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByInvoice cuenta los abonos de una factura (guard de eliminación).
func (r *PaymentRepo) CountByInvoice(ctx context.Context, invoiceID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM payments WHERE invoice_id = $1`, invoiceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}
