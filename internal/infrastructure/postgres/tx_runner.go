package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// Ensure TxRunner implements billing.BillingTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice inicia una transacción con los repos de factura y abonos atados a
// ella y hace Commit o Rollback. Combinado con GetByIDForUpdate, serializa las
// mutaciones financieras por factura.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(invoiceRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunExtraction transacción para la aprobación de un cargo extraído por OCR:
// la línea de factura, la reconciliación y el estado del cargo extraído se
// confirman juntos.
func (r *TxRunner) RunExtraction(ctx context.Context, fn func(
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	extracted repository.ExtractedChargeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	extractedRepo := NewExtractedChargeRepository(tx)

	if err := fn(invoiceRepo, paymentRepo, extractedRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunContract transacción para la activación de contrato: chequeo de
// solapamiento, generación de facturas y marca de idempotencia atómicos.
func (r *TxRunner) RunContract(ctx context.Context, fn func(
	contracts repository.ContractRepository,
	invoices repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	contractRepo := NewContractRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(contractRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
