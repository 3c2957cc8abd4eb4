package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// InvoiceUseCase consultas y mutaciones de facturas: detalle, listados, cargos
// manuales, cancelación y eliminación.
type InvoiceUseCase struct {
	txRunner BillingTxRunner
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner BillingTxRunner, invoices repository.InvoiceRepository, payments repository.PaymentRepository) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, invoices: invoices, payments: payments}
}

// GetByID devuelve la factura con cargos y abonos.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, agencyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	resp := toInvoiceResponse(inv)
	return &resp, nil
}

// List lista facturas de la agencia, opcionalmente filtradas por estado.
func (uc *InvoiceUseCase) List(ctx context.Context, agencyID, status string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.List(ctx, agencyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, inv := range list {
		resp.Items = append(resp.Items, toInvoiceResponse(inv))
	}
	return resp, nil
}

// ListByContract lista las facturas de un contrato en orden cronológico.
func (uc *InvoiceUseCase) ListByContract(ctx context.Context, agencyID, contractID string) ([]dto.InvoiceResponse, error) {
	list, err := uc.invoices.ListByContract(ctx, agencyID, contractID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// AddCharge agrega un cargo manual (ajuste, servicio, canon extraordinario) y
// reconcilia. Los cargos de mora no se agregan por aquí: los aplica el job de
// acumulación con su propia línea auditada.
func (uc *InvoiceUseCase) AddCharge(ctx context.Context, agencyID, invoiceID string, in dto.AddChargeRequest) (*dto.TotalsResponse, error) {
	if in.Kind == entity.ChargeKindLateFee {
		return nil, fmt.Errorf("%w: la mora se aplica por el job de acumulación", domain.ErrInvalidInput)
	}
	switch in.Kind {
	case entity.ChargeKindRent, entity.ChargeKindAdjustment, entity.ChargeKindOther:
	default:
		return nil, fmt.Errorf("%w: kind %q inválido", domain.ErrInvalidInput, in.Kind)
	}
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("%w: el monto del cargo no puede ser cero", domain.ErrInvalidInput)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}

	var out *dto.TotalsResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
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
		charge := &entity.InvoiceCharge{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Kind:        in.Kind,
			Description: in.Description,
			Amount:      in.Amount,
			CreatedAt:   time.Now(),
		}
		if err := invoices.CreateCharge(ctx, charge); err != nil {
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

// Cancel marca la factura como cancelada. No borra cargos ni abonos.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, agencyID, invoiceID string) error {
	return uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, _ repository.PaymentRepository) error {
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusPaid {
			return fmt.Errorf("%w: no se cancela una factura pagada", domain.ErrConflict)
		}
		inv.Status = entity.InvoiceStatusCancelled
		inv.UpdatedAt = time.Now()
		return invoices.UpdateTotals(ctx, inv)
	})
}

// Delete elimina una factura y sus cargos. Falla con ErrInvoiceHasPayments si
// tiene abonos: nunca se dejan abonos huérfanos en silencio.
func (uc *InvoiceUseCase) Delete(ctx context.Context, agencyID, invoiceID string) error {
	return uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository) error {
		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		n, err := payments.CountByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrInvoiceHasPayments
		}
		return invoices.Delete(ctx, agencyID, inv.ID)
	})
}
