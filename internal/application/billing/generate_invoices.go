package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	domainbilling "github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// ActivateContractUseCase activa un contrato y expande su plan de facturación:
// una factura por mes entre el mes de inicio y el de fin, cada una con su
// línea de canon. Todo corre en una sola transacción junto con el chequeo de
// solapamiento y la marca InvoicesGenerated, que hace la operación idempotente
// frente a reintentos y reactivaciones.
type ActivateContractUseCase struct {
	txRunner BillingTxRunner
}

// NewActivateContractUseCase construye el caso de uso.
func NewActivateContractUseCase(txRunner BillingTxRunner) *ActivateContractUseCase {
	return &ActivateContractUseCase{txRunner: txRunner}
}

// Activate pasa el contrato a active y genera sus facturas. Si las facturas ya
// fueron generadas (reintento o reactivación) devuelve las existentes sin
// duplicar. Retorna ErrNotFound si el contrato no existe en la agencia,
// ErrContractOverlap si hay otro contrato vigente solapado y ErrConflict si el
// estado actual no permite activar.
func (uc *ActivateContractUseCase) Activate(ctx context.Context, agencyID, contractID string) (*dto.ActivateContractResponse, error) {
	var out *dto.ActivateContractResponse
	err := uc.txRunner.RunContract(ctx, func(contracts repository.ContractRepository, invoices repository.InvoiceRepository) error {
		contract, err := contracts.GetByID(ctx, agencyID, contractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domain.ErrNotFound
		}

		switch contract.Status {
		case entity.ContractStatusDraft, entity.ContractStatusSigned, entity.ContractStatusActive:
			// activable (active: reintento de una activación a medias)
		default:
			return fmt.Errorf("%w: el contrato está %s", domain.ErrConflict, contract.Status)
		}

		overlap, err := contracts.ExistsOverlappingActive(ctx, agencyID, contract.PropertyID, contract.RenterContactID,
			contract.StartDate, contract.EndDate, contract.ID)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrContractOverlap
		}

		var generated []*entity.Invoice
		if contract.InvoicesGenerated {
			// Ya generadas: devolver las existentes, sin duplicar.
			generated, err = invoices.ListByContract(ctx, agencyID, contract.ID)
			if err != nil {
				return err
			}
		} else {
			generated, err = uc.generate(ctx, invoices, contract)
			if err != nil {
				return err
			}
			if err := contracts.MarkInvoicesGenerated(ctx, agencyID, contract.ID); err != nil {
				return err
			}
			contract.InvoicesGenerated = true
		}

		if contract.Status != entity.ContractStatusActive {
			if err := contracts.UpdateStatus(ctx, agencyID, contract.ID, entity.ContractStatusActive); err != nil {
				return err
			}
			contract.Status = entity.ContractStatusActive
		}

		resp := dto.ActivateContractResponse{Contract: toContractResponse(contract)}
		for _, inv := range generated {
			resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
		}
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// generate materializa el plan de facturación del contrato: cabeceras con
// subtotal = total = canon y una línea de cargo kind=rent por factura.
func (uc *ActivateContractUseCase) generate(ctx context.Context, invoices repository.InvoiceRepository, contract *entity.Contract) ([]*entity.Invoice, error) {
	plan, err := domainbilling.BuildSchedule(contract.Number, contract.StartDate, contract.EndDate,
		contract.PaymentDay, contract.RentAmount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rent := domainbilling.Round2(contract.RentAmount)
	var generated []*entity.Invoice
	for _, sched := range plan {
		inv := &entity.Invoice{
			ID:              uuid.New().String(),
			AgencyID:        contract.AgencyID,
			ContractID:      contract.ID,
			RenterContactID: contract.RenterContactID,
			Number:          sched.Number,
			IssueDate:       sched.IssueDate,
			DueDate:         sched.DueDate,
			Subtotal:        rent,
			TotalAmount:     rent,
			Status:          entity.InvoiceStatusIssued,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := invoices.Create(ctx, inv); err != nil {
			return nil, err
		}
		charge := &entity.InvoiceCharge{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Kind:        entity.ChargeKindRent,
			Description: domainbilling.RentDescription(sched.Period),
			Amount:      rent,
			CreatedAt:   now,
		}
		if err := invoices.CreateCharge(ctx, charge); err != nil {
			return nil, err
		}
		inv.Charges = []*entity.InvoiceCharge{charge}
		generated = append(generated, inv)
	}
	return generated, nil
}
