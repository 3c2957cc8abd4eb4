package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// ContractUseCase alta y mantenimiento de contratos de arrendamiento. La
// activación (generación de facturas) vive aparte, en application/billing.
type ContractUseCase struct {
	contracts  repository.ContractRepository
	properties repository.PropertyRepository
	contacts   repository.ContactRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(contracts repository.ContractRepository, properties repository.PropertyRepository, contacts repository.ContactRepository) *ContractUseCase {
	return &ContractUseCase{contracts: contracts, properties: properties, contacts: contacts}
}

// Create registra un contrato en estado draft. Valida referencias (inmueble,
// arrendatario, propietario), fechas, día de pago y política de mora, y
// rechaza con ErrContractOverlap si ya hay un contrato vigente solapado para
// el mismo inmueble y arrendatario.
func (uc *ContractUseCase) Create(ctx context.Context, agencyID string, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if in.Number == "" {
		return nil, fmt.Errorf("%w: número de contrato requerido", domain.ErrInvalidInput)
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior a la de inicio", domain.ErrInvalidInput)
	}
	if in.PaymentDay < 1 || in.PaymentDay > 30 {
		return nil, fmt.Errorf("%w: día de pago %d fuera de rango (1..30)", domain.ErrInvalidInput, in.PaymentDay)
	}
	rent, err := billing.ParseAmount(in.RentAmount)
	if err != nil {
		return nil, err
	}
	if !rent.IsPositive() {
		return nil, fmt.Errorf("%w: el canon debe ser mayor que cero", domain.ErrInvalidInput)
	}
	feeType, feeValue, err := parseLateFee(in.LateFeeType, in.LateFeeValue)
	if err != nil {
		return nil, err
	}

	property, err := uc.properties.GetByID(ctx, agencyID, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("%w: inmueble %s", domain.ErrNotFound, in.PropertyID)
	}
	renter, err := uc.contacts.GetByID(ctx, agencyID, in.RenterContactID)
	if err != nil {
		return nil, err
	}
	if renter == nil || renter.Kind != entity.ContactRenter {
		return nil, fmt.Errorf("%w: arrendatario %s inválido", domain.ErrInvalidInput, in.RenterContactID)
	}
	owner, err := uc.contacts.GetByID(ctx, agencyID, in.OwnerContactID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Kind != entity.ContactOwner {
		return nil, fmt.Errorf("%w: propietario %s inválido", domain.ErrInvalidInput, in.OwnerContactID)
	}

	overlap, err := uc.contracts.ExistsOverlappingActive(ctx, agencyID, in.PropertyID, in.RenterContactID, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrContractOverlap
	}

	now := time.Now()
	c := &entity.Contract{
		ID:              uuid.New().String(),
		AgencyID:        agencyID,
		Number:          in.Number,
		PropertyID:      in.PropertyID,
		RenterContactID: in.RenterContactID,
		OwnerContactID:  in.OwnerContactID,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      rent,
		PaymentDay:      in.PaymentDay,
		LateFeeType:     feeType,
		LateFeeValue:    feeValue,
		Status:          entity.ContractStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toContractResponse(c)
	return &resp, nil
}

// Update modifica un contrato que aún no está activo (draft o signed).
// Los contratos activos son inmutables: sus facturas ya fueron generadas.
func (uc *ContractUseCase) Update(ctx context.Context, agencyID, id string, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	c, err := uc.contracts.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Status != entity.ContractStatusDraft && c.Status != entity.ContractStatusSigned {
		return nil, fmt.Errorf("%w: el contrato está %s y no es editable", domain.ErrConflict, c.Status)
	}

	if in.EndDate != nil {
		end, err := parseDate(*in.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(c.StartDate) {
			return nil, fmt.Errorf("%w: la fecha de fin es anterior a la de inicio", domain.ErrInvalidInput)
		}
		c.EndDate = end
	}
	if in.RentAmount != nil {
		rent, err := billing.ParseAmount(*in.RentAmount)
		if err != nil {
			return nil, err
		}
		if !rent.IsPositive() {
			return nil, fmt.Errorf("%w: el canon debe ser mayor que cero", domain.ErrInvalidInput)
		}
		c.RentAmount = rent
	}
	if in.PaymentDay != nil {
		if *in.PaymentDay < 1 || *in.PaymentDay > 30 {
			return nil, fmt.Errorf("%w: día de pago %d fuera de rango (1..30)", domain.ErrInvalidInput, *in.PaymentDay)
		}
		c.PaymentDay = *in.PaymentDay
	}
	if in.LateFeeType != nil {
		value := c.LateFeeValue.String()
		if in.LateFeeValue != nil {
			value = *in.LateFeeValue
		}
		feeType, feeValue, err := parseLateFee(*in.LateFeeType, value)
		if err != nil {
			return nil, err
		}
		c.LateFeeType = feeType
		c.LateFeeValue = feeValue
	} else if in.LateFeeValue != nil {
		_, feeValue, err := parseLateFee(c.LateFeeType, *in.LateFeeValue)
		if err != nil {
			return nil, err
		}
		c.LateFeeValue = feeValue
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.ContractStatusDraft, entity.ContractStatusSigned, entity.ContractStatusCancelled:
			c.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: transición manual a %q no permitida", domain.ErrInvalidInput, *in.Status)
		}
	}

	// Revalidar solapamiento si las fechas cambiaron y el contrato sigue vigente.
	if c.IsActiveFamily() {
		overlap, err := uc.contracts.ExistsOverlappingActive(ctx, agencyID, c.PropertyID, c.RenterContactID, c.StartDate, c.EndDate, c.ID)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, domain.ErrContractOverlap
		}
	}

	c.UpdatedAt = time.Now()
	if err := uc.contracts.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toContractResponse(c)
	return &resp, nil
}

// GetByID devuelve un contrato de la agencia.
func (uc *ContractUseCase) GetByID(ctx context.Context, agencyID, id string) (*dto.ContractResponse, error) {
	c, err := uc.contracts.GetByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toContractResponse(c)
	return &resp, nil
}

// List lista contratos, opcionalmente filtrados por estado.
func (uc *ContractUseCase) List(ctx context.Context, agencyID, status string, page dto.PageRequest) (*dto.ContractListResponse, error) {
	page.DefaultPage()
	list, err := uc.contracts.List(ctx, agencyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ContractListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, c := range list {
		resp.Items = append(resp.Items, toContractResponse(c))
	}
	return resp, nil
}

// parseLateFee valida el par (tipo, valor) de la política de mora.
func parseLateFee(feeType, feeValue string) (string, decimal.Decimal, error) {
	switch feeType {
	case "", entity.LateFeeNone:
		return entity.LateFeeNone, decimal.Zero, nil
	case entity.LateFeeFixed, entity.LateFeePercent:
		if feeValue == "" {
			return "", decimal.Zero, fmt.Errorf("%w: late_fee_value requerido para tipo %s", domain.ErrInvalidInput, feeType)
		}
		v, err := billing.ParseAmount(feeValue)
		if err != nil {
			return "", decimal.Zero, err
		}
		if !v.IsPositive() {
			return "", decimal.Zero, fmt.Errorf("%w: late_fee_value debe ser mayor que cero", domain.ErrInvalidInput)
		}
		return feeType, v, nil
	default:
		return "", decimal.Zero, fmt.Errorf("%w: late_fee_type %q inválido", domain.ErrInvalidInput, feeType)
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida (formato %s)", domain.ErrInvalidInput, s, dto.DateLayout)
	}
	return d, nil
}

func toContractResponse(c *entity.Contract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:                c.ID,
		AgencyID:          c.AgencyID,
		Number:            c.Number,
		PropertyID:        c.PropertyID,
		RenterContactID:   c.RenterContactID,
		OwnerContactID:    c.OwnerContactID,
		StartDate:         c.StartDate.Format(dto.DateLayout),
		EndDate:           c.EndDate.Format(dto.DateLayout),
		RentAmount:        c.RentAmount,
		PaymentDay:        c.PaymentDay,
		LateFeeType:       c.LateFeeType,
		LateFeeValue:      c.LateFeeValue,
		Status:            c.Status,
		InvoicesGenerated: c.InvoicesGenerated,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
