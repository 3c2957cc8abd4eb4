package billing

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	domainbilling "github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// ReconcileUseCase recalcula los totales derivados de una factura desde sus
// cargos y abonos actuales. Es el único camino por el que los campos cacheados
// (subtotal, late_fee, total_amount, amount_paid, status) llegan a la DB:
// cualquier mutación de cargos o abonos termina aquí.
type ReconcileUseCase struct {
	txRunner BillingTxRunner
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner BillingTxRunner) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner}
}

// Reconcile recalcula y persiste los totales de la factura. Idempotente:
// invocarla dos veces seguidas sobre una factura sin cambios produce el mismo
// resultado. Retorna los totales calculados para mostrar al usuario.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, agencyID, invoiceID string) (*dto.TotalsResponse, error) {
	var out *dto.TotalsResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		tot, err := reconcileLocked(ctx, invoices, payments, inv)
		if err != nil {
			return err
		}
		out = &dto.TotalsResponse{Subtotal: tot.Subtotal, LateFee: tot.LateFee, Total: tot.Total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// reconcileLocked recalcula y persiste los totales de inv. El caller debe
// tener la fila bloqueada (GetByIDForUpdate) dentro de la transacción de los
// repos recibidos. Muta inv con los valores derivados.
func reconcileLocked(ctx context.Context, invoices repository.InvoiceRepository, payments repository.PaymentRepository, inv *entity.Invoice) (domainbilling.Totals, error) {
	charges, err := invoices.ListCharges(ctx, inv.ID)
	if err != nil {
		return domainbilling.Totals{}, err
	}
	pays, err := payments.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return domainbilling.Totals{}, err
	}

	tot := domainbilling.ComputeTotals(charges, inv.Tax, inv.OtherCharges)
	paid, status := domainbilling.ComputePaymentState(pays, tot.Total)

	inv.Subtotal = tot.Subtotal
	inv.LateFee = tot.LateFee
	inv.TotalAmount = tot.Total
	inv.AmountPaid = paid
	// Una factura cancelada no revive por reconciliación.
	if inv.Status != entity.InvoiceStatusCancelled {
		inv.Status = status
	}
	inv.UpdatedAt = time.Now()

	if err := invoices.UpdateTotals(ctx, inv); err != nil {
		return domainbilling.Totals{}, err
	}
	return tot, nil
}
