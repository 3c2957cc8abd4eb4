package billing

import (
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:              inv.ID,
		AgencyID:        inv.AgencyID,
		ContractID:      inv.ContractID,
		RenterContactID: inv.RenterContactID,
		Number:          inv.Number,
		IssueDate:       inv.IssueDate.Format(dto.DateLayout),
		DueDate:         inv.DueDate.Format(dto.DateLayout),
		Subtotal:        inv.Subtotal,
		Tax:             inv.Tax,
		OtherCharges:    inv.OtherCharges,
		LateFee:         inv.LateFee,
		TotalAmount:     inv.TotalAmount,
		AmountPaid:      inv.AmountPaid,
		Status:          inv.Status,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	for _, ch := range inv.Charges {
		resp.Charges = append(resp.Charges, toChargeResponse(ch))
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}

func toChargeResponse(ch *entity.InvoiceCharge) dto.ChargeResponse {
	return dto.ChargeResponse{
		ID:          ch.ID,
		InvoiceID:   ch.InvoiceID,
		Kind:        ch.Kind,
		Description: ch.Description,
		Amount:      ch.Amount,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(dto.DateLayout),
		Method:      p.Method,
		Reference:   p.Reference,
		CreatedAt:   p.CreatedAt,
	}
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
