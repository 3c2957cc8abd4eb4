package billing

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	domainbilling "github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// ExtractedChargeUseCase ingesta de facturas de servicios públicos por OCR:
// el PDF se envía al extractor, el resultado queda como cargo pendiente y un
// usuario lo aprueba o rechaza. Solo la aprobación toca la factura.
type ExtractedChargeUseCase struct {
	txRunner  BillingTxRunner
	extractor BillExtractor
	invoices  repository.InvoiceRepository
	extracted repository.ExtractedChargeRepository
}

// NewExtractedChargeUseCase construye el caso de uso.
func NewExtractedChargeUseCase(
	txRunner BillingTxRunner,
	extractor BillExtractor,
	invoices repository.InvoiceRepository,
	extracted repository.ExtractedChargeRepository,
) *ExtractedChargeUseCase {
	return &ExtractedChargeUseCase{txRunner: txRunner, extractor: extractor, invoices: invoices, extracted: extracted}
}

// SubmitBill decodifica el PDF, lo pasa por el extractor y registra el cargo
// propuesto en estado pending. No modifica la factura destino.
func (uc *ExtractedChargeUseCase) SubmitBill(ctx context.Context, agencyID string, in dto.SubmitBillRequest) (*dto.ExtractedChargeResponse, error) {
	pdf, err := base64.StdEncoding.DecodeString(in.PDFBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: pdf_base64 no es base64 válido", domain.ErrInvalidInput)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: el PDF está vacío", domain.ErrInvalidInput)
	}

	inv, err := uc.invoices.GetByID(ctx, agencyID, in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: la factura está cancelada", domain.ErrConflict)
	}

	bill, err := uc.extractor.ExtractBill(ctx, pdf)
	if err != nil {
		return nil, err
	}
	if !bill.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el extractor no encontró un monto válido", domain.ErrInvalidInput)
	}

	now := time.Now()
	ec := &entity.ExtractedCharge{
		ID:         uuid.New().String(),
		AgencyID:   agencyID,
		InvoiceID:  inv.ID,
		Amount:     domainbilling.Round2(bill.Amount),
		Reference:  bill.Reference,
		Period:     bill.Period,
		Confidence: bill.Confidence,
		Status:     entity.ExtractedPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.extracted.Create(ctx, ec); err != nil {
		return nil, err
	}
	resp := toExtractedChargeResponse(ec)
	return &resp, nil
}

// Approve convierte un cargo extraído pendiente en una línea real de la
// factura (kind=other) y reconcilia. Pending es el único estado aprobable.
// La línea, la reconciliación y el paso a approved comparten transacción: si
// el commit falla, el cargo extraído sigue pendiente y puede reintentarse.
func (uc *ExtractedChargeUseCase) Approve(ctx context.Context, agencyID, extractedID string) (*dto.TotalsResponse, error) {
	var out *dto.TotalsResponse
	err := uc.txRunner.RunExtraction(ctx, func(invoices repository.InvoiceRepository, payments repository.PaymentRepository, extracted repository.ExtractedChargeRepository) error {
		ec, err := extracted.GetByID(ctx, agencyID, extractedID)
		if err != nil {
			return err
		}
		if ec == nil {
			return domain.ErrNotFound
		}
		if ec.Status != entity.ExtractedPending {
			return fmt.Errorf("%w: el cargo extraído está %s", domain.ErrConflict, ec.Status)
		}

		inv, err := invoices.GetByIDForUpdate(ctx, agencyID, ec.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return fmt.Errorf("%w: la factura está cancelada", domain.ErrConflict)
		}
		// Con la factura bloqueada, reverificar que sigue pendiente: dos
		// aprobaciones concurrentes se serializan aquí y la segunda corta.
		ec, err = extracted.GetByID(ctx, agencyID, extractedID)
		if err != nil {
			return err
		}
		if ec == nil || ec.Status != entity.ExtractedPending {
			return fmt.Errorf("%w: el cargo extraído ya fue procesado", domain.ErrConflict)
		}

		desc := fmt.Sprintf("Servicio público %s", ec.Reference)
		if ec.Period != "" {
			desc = fmt.Sprintf("%s (%s)", desc, ec.Period)
		}
		charge := &entity.InvoiceCharge{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Kind:        entity.ChargeKindOther,
			Description: desc,
			Amount:      ec.Amount,
			CreatedAt:   time.Now(),
		}
		if err := invoices.CreateCharge(ctx, charge); err != nil {
			return err
		}
		tot, err := reconcileLocked(ctx, invoices, payments, inv)
		if err != nil {
			return err
		}
		if err := extracted.UpdateStatus(ctx, agencyID, ec.ID, entity.ExtractedApproved); err != nil {
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

// Reject descarta un cargo extraído pendiente sin tocar la factura.
func (uc *ExtractedChargeUseCase) Reject(ctx context.Context, agencyID, extractedID string) error {
	ec, err := uc.extracted.GetByID(ctx, agencyID, extractedID)
	if err != nil {
		return err
	}
	if ec == nil {
		return domain.ErrNotFound
	}
	if ec.Status != entity.ExtractedPending {
		return fmt.Errorf("%w: el cargo extraído está %s", domain.ErrConflict, ec.Status)
	}
	return uc.extracted.UpdateStatus(ctx, agencyID, ec.ID, entity.ExtractedRejected)
}

// ListPending lista los cargos extraídos a la espera de revisión.
func (uc *ExtractedChargeUseCase) ListPending(ctx context.Context, agencyID string, page dto.PageRequest) ([]dto.ExtractedChargeResponse, error) {
	page.DefaultPage()
	list, err := uc.extracted.ListPending(ctx, agencyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExtractedChargeResponse, 0, len(list))
	for _, ec := range list {
		out = append(out, toExtractedChargeResponse(ec))
	}
	return out, nil
}

func toExtractedChargeResponse(ec *entity.ExtractedCharge) dto.ExtractedChargeResponse {
	return dto.ExtractedChargeResponse{
		ID:         ec.ID,
		InvoiceID:  ec.InvoiceID,
		Amount:     ec.Amount,
		Reference:  ec.Reference,
		Period:     ec.Period,
		Confidence: ec.Confidence,
		Status:     ec.Status,
		CreatedAt:  ec.CreatedAt,
	}
}
