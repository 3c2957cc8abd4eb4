package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	domainbilling "github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// PaymentUseCase registra, corrige y anula abonos contra facturas.
//
// El control de admisión (el abono no puede superar el saldo pendiente) y la
// reconciliación posterior corren dentro de una transacción con la fila de la
// factura bloqueada: dos abonos concurrentes se serializan y el segundo ve el
// saldo que dejó el primero.
type PaymentUseCase struct {
	txRunner BillingTxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner BillingTxRunner) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner}
}

// Create registra un abono. Valida contra el saldo calculado ANTES de
// escribir: saldo = total - suma de abonos vigentes. Si el monto lo excede
// retorna ErrPaymentExceedsBalance envolviendo el saldo disponible.
func (uc *PaymentUseCase) Create(ctx context.Context, agencyID, invoiceID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	amount, err := domainbilling.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el abono debe ser mayor que cero", domain.ErrInvalidInput)
	}
	payDate, err := parseDate(in.PaymentDate)
	if err != nil {
		return nil, err
	}

	var out *dto.PaymentResponse
	err = uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return fmt.Errorf("%w: la factura está cancelada", domain.ErrConflict)
		}

		balance, err := balanceDue(ctx, payments, inv, decimal.Zero)
		if err != nil {
			return err
		}
		if amount.GreaterThan(balance) {
			return fmt.Errorf("%w: saldo disponible %s", domain.ErrPaymentExceedsBalance, domainbilling.Format(balance))
		}

		now := time.Now()
		p := &entity.Payment{
			ID:          uuid.New().String(),
			AgencyID:    agencyID,
			InvoiceID:   inv.ID,
			Amount:      amount,
			PaymentDate: payDate,
			Method:      in.Method,
			Reference:   in.Reference,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := payments.Create(ctx, p); err != nil {
			return err
		}
		if _, err := reconcileLocked(ctx, invoices, payments, inv); err != nil {
			return err
		}
		resp := toPaymentResponse(p)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update corrige un abono existente. Para validar el saldo se suma de vuelta
// el monto viejo del abono antes de comparar con el nuevo.
func (uc *PaymentUseCase) Update(ctx context.Context, agencyID, paymentID string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	var out *dto.PaymentResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		p, err := payments.GetByID(ctx, agencyID, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		// Releer el abono con la factura ya bloqueada: otra corrección pudo
		// haberse confirmado entre la primera lectura y el lock, y el monto
		// que se devuelve al saldo debe ser el vigente.
		p, err = payments.GetByID(ctx, agencyID, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		if in.Amount != nil {
			amount, err := domainbilling.ParseAmount(*in.Amount)
			if err != nil {
				return err
			}
			if !amount.IsPositive() {
				return fmt.Errorf("%w: el abono debe ser mayor que cero", domain.ErrInvalidInput)
			}
			balance, err := balanceDue(ctx, payments, inv, p.Amount)
			if err != nil {
				return err
			}
			if amount.GreaterThan(balance) {
				return fmt.Errorf("%w: saldo disponible %s", domain.ErrPaymentExceedsBalance, domainbilling.Format(balance))
			}
			p.Amount = amount
		}
		if in.PaymentDate != nil {
			d, err := parseDate(*in.PaymentDate)
			if err != nil {
				return err
			}
			p.PaymentDate = d
		}
		if in.Method != nil {
			p.Method = *in.Method
		}
		if in.Reference != nil {
			p.Reference = *in.Reference
		}
		p.UpdatedAt = time.Now()

		if err := payments.Update(ctx, p); err != nil {
			return err
		}
		if _, err := reconcileLocked(ctx, invoices, payments, inv); err != nil {
			return err
		}
		resp := toPaymentResponse(p)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete anula un abono y reconcilia la factura. Nota: si la factura estaba
// overdue y queda sin abonos, la reconciliación la deja en issued hasta el
// siguiente tick diario (comportamiento acordado, ver domain/billing).
func (uc *PaymentUseCase) Delete(ctx context.Context, agencyID, paymentID string) (*dto.TotalsResponse, error) {
	var out *dto.TotalsResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		p, err := payments.GetByID(ctx, agencyID, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := payments.Delete(ctx, agencyID, p.ID); err != nil {
			return err
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

// balanceDue saldo pendiente con los abonos ACTUALES de la DB (no el campo
// cacheado). En updates, addBack devuelve el monto viejo al saldo disponible.
func balanceDue(ctx context.Context, payments repository.PaymentRepository, inv *entity.Invoice, addBack decimal.Decimal) (decimal.Decimal, error) {
	pays, err := payments.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return decimal.Zero, err
	}
	paid := decimal.Zero
	for _, p := range pays {
		paid = paid.Add(p.Amount)
	}
	return inv.TotalAmount.Sub(paid).Add(addBack), nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida (formato %s)", domain.ErrInvalidInput, s, dto.DateLayout)
	}
	return d, nil
}
