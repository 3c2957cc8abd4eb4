package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	domainbilling "github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// AccrueLateFeeUseCase aplica el recargo por mora a una factura vencida y no
// pagada, exactamente una vez. El guard LateFeeAppliedAt hace la operación
// idempotente: reintentos y re-ejecuciones del job diario son no-ops.
type AccrueLateFeeUseCase struct {
	txRunner  BillingTxRunner
	contracts repository.ContractRepository
}

// NewAccrueLateFeeUseCase construye el caso de uso.
func NewAccrueLateFeeUseCase(txRunner BillingTxRunner, contracts repository.ContractRepository) *AccrueLateFeeUseCase {
	return &AccrueLateFeeUseCase{txRunner: txRunner, contracts: contracts}
}

// Accrue calcula y aplica la mora según la política del contrato:
//
//   - percent: Round2(subtotal * valor/100), fixed: valor tal cual
//   - fee > 0: se agrega una línea kind=late_fee y se recalculan los totales
//   - fee <= 0 o política none: sin cargo, pero la factura igual pasa a overdue
//
// Retorna ErrNotFound si la factura o su contrato no existen en la agencia.
func (uc *AccrueLateFeeUseCase) Accrue(ctx context.Context, agencyID, invoiceID string) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		// Ya aplicada, pagada o cancelada: no-op.
		if inv.LateFeeAppliedAt != nil ||
			inv.Status == entity.InvoiceStatusPaid ||
			inv.Status == entity.InvoiceStatusCancelled {
			resp := toInvoiceResponse(inv)
			out = &resp
			return nil
		}

		contract, err := uc.contracts.GetByID(ctx, agencyID, inv.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		fee := domainbilling.ComputeLateFee(contract.LateFeeType, contract.LateFeeValue, inv.Subtotal)
		if fee.IsPositive() {
			charge := &entity.InvoiceCharge{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				Kind:        entity.ChargeKindLateFee,
				Description: domainbilling.LateFeeDescription(contract.LateFeeType, contract.LateFeeValue),
				Amount:      fee,
				CreatedAt:   now,
			}
			if err := invoices.CreateCharge(ctx, charge); err != nil {
				return err
			}
			if _, err := reconcileLocked(ctx, invoices, payments, inv); err != nil {
				return err
			}
		}

		// overdue se fuerza por fecha, sin importar lo que derive el camino de
		// abonos; el motor de reconciliación nunca produce overdue por sí solo.
		inv.Status = entity.InvoiceStatusOverdue
		inv.LateFeeAppliedAt = &now
		inv.UpdatedAt = now
		if err := invoices.UpdateTotals(ctx, inv); err != nil {
			return err
		}

		resp := toInvoiceResponse(inv)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
