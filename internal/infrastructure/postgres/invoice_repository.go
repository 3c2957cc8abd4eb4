package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, agency_id, contract_id, renter_contact_id, number, issue_date, due_date,
	subtotal, tax, other_charges, late_fee, total_amount, amount_paid, status, late_fee_applied_at,
	created_at, updated_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.AgencyID, inv.ContractID, inv.RenterContactID, inv.Number, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.Tax, inv.OtherCharges, inv.LateFee, inv.TotalAmount, inv.AmountPaid, inv.Status,
		inv.LateFeeAppliedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateCharge persiste una línea de cargo.
func (r *InvoiceRepo) CreateCharge(ctx context.Context, ch *entity.InvoiceCharge) error {
	query := `
		INSERT INTO invoice_charges (id, invoice_id, kind, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, ch.ID, ch.InvoiceID, ch.Kind, ch.Description, ch.Amount, ch.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice charge: %w", err)
	}
	return nil
}

// GetByID obtiene la factura con cargos y abonos cargados.
func (r *InvoiceRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE agency_id = $1 AND id = $2`
	inv, err := r.scanOne(r.q.QueryRow(ctx, query, agencyID, id))
	if err != nil || inv == nil {
		return inv, err
	}
	if inv.Charges, err = r.ListCharges(ctx, inv.ID); err != nil {
		return nil, err
	}
	if inv.Payments, err = r.listPayments(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByIDForUpdate lee solo la cabecera con SELECT ... FOR UPDATE. Invocar
// dentro de una transacción: la fila queda bloqueada hasta el commit.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, agencyID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE agency_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, agencyID, id))
}

// UpdateTotals persiste los campos derivados por el motor de reconciliación.
func (r *InvoiceRepo) UpdateTotals(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET subtotal = $2, tax = $3, other_charges = $4, late_fee = $5, total_amount = $6,
			amount_paid = $7, status = $8, late_fee_applied_at = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Subtotal, inv.Tax, inv.OtherCharges, inv.LateFee, inv.TotalAmount,
		inv.AmountPaid, inv.Status, inv.LateFeeAppliedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// ListByContract lista las facturas de un contrato en orden cronológico.
func (r *InvoiceRepo) ListByContract(ctx context.Context, agencyID, contractID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE agency_id = $1 AND contract_id = $2 ORDER BY issue_date`
	rows, err := r.q.Query(ctx, query, agencyID, contractID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by contract: %w", err)
	}
	return r.scanRows(rows)
}

// List lista facturas de la agencia; status vacío lista todas.
func (r *InvoiceRepo) List(ctx context.Context, agencyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE agency_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY due_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, agencyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return r.scanRows(rows)
}

// ListCharges lista las líneas de cargo de una factura.
func (r *InvoiceRepo) ListCharges(ctx context.Context, invoiceID string) ([]*entity.InvoiceCharge, error) {
	query := `
		SELECT id, invoice_id, kind, description, amount, created_at
		FROM invoice_charges WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice charges: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceCharge
	for rows.Next() {
		var ch entity.InvoiceCharge
		if err := rows.Scan(&ch.ID, &ch.InvoiceID, &ch.Kind, &ch.Description, &ch.Amount, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice charge: %w", err)
		}
		list = append(list, &ch)
	}
	return list, rows.Err()
}

// ListDueOn facturas de todas las agencias con vencimiento en la fecha dada y
// estado dentro de statuses (consumido por el job diario).
func (r *InvoiceRepo) ListDueOn(ctx context.Context, dueDate time.Time, statuses []string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE due_date = $1 AND status = ANY($2) ORDER BY agency_id, number`
	rows, err := r.q.Query(ctx, query, dueDate, statuses)
	if err != nil {
		return nil, fmt.Errorf("list invoices due on: %w", err)
	}
	return r.scanRows(rows)
}

// Delete elimina la factura y sus cargos. El caller valida antes que no haya abonos.
func (r *InvoiceRepo) Delete(ctx context.Context, agencyID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_charges WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice charges: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE agency_id = $1 AND id = $2`, agencyID, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) listPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, agency_id, invoice_id, amount, payment_date, method, reference, created_at, updated_at
		FROM payments WHERE invoice_id = $1 ORDER BY payment_date, created_at`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
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

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.AgencyID, &inv.ContractID, &inv.RenterContactID, &inv.Number, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.Tax, &inv.OtherCharges, &inv.LateFee, &inv.TotalAmount, &inv.AmountPaid, &inv.Status,
		&inv.LateFeeAppliedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) scanRows(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.AgencyID, &inv.ContractID, &inv.RenterContactID, &inv.Number, &inv.IssueDate, &inv.DueDate,
			&inv.Subtotal, &inv.Tax, &inv.OtherCharges, &inv.LateFee, &inv.TotalAmount, &inv.AmountPaid, &inv.Status,
			&inv.LateFeeAppliedAt, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
