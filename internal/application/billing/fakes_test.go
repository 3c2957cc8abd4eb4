package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de facturación. Reproducen el
// contrato de los repositorios de Postgres (agencia obligatoria, no encontrado
// = nil sin error) sin base de datos. El fakeTxRunner invoca la función con
// los mismos fakes: no hay transacción real, pero el flujo de los casos de uso
// es idéntico.

type fakeTxRunner struct {
	invoices  *fakeInvoiceRepo
	payments  *fakePaymentRepo
	contracts *fakeContractRepo
	extracted repository.ExtractedChargeRepository
}

func (r *fakeTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	return fn(r.invoices, r.payments)
}

func (r *fakeTxRunner) RunContract(ctx context.Context, fn func(repository.ContractRepository, repository.InvoiceRepository) error) error {
	return fn(r.contracts, r.invoices)
}

func (r *fakeTxRunner) RunExtraction(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository, repository.ExtractedChargeRepository) error) error {
	return fn(r.invoices, r.payments, r.extracted)
}

// newFakes arma el juego completo de fakes compartiendo almacenamiento.
func newFakes() (*fakeTxRunner, *fakeInvoiceRepo, *fakePaymentRepo, *fakeContractRepo) {
	payments := &fakePaymentRepo{byID: map[string]*entity.Payment{}}
	invoices := &fakeInvoiceRepo{
		byID:     map[string]*entity.Invoice{},
		charges:  map[string][]*entity.InvoiceCharge{},
		payments: payments,
	}
	contracts := &fakeContractRepo{byID: map[string]*entity.Contract{}}
	return &fakeTxRunner{invoices: invoices, payments: payments, contracts: contracts}, invoices, payments, contracts
}

// ─── fakeInvoiceRepo ─────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	byID    map[string]*entity.Invoice
	charges map[string][]*entity.InvoiceCharge
	// para la carga eager de GetByID
	payments *fakePaymentRepo
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	cp := *invoice
	cp.Charges, cp.Payments = nil, nil
	r.byID[invoice.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateCharge(_ context.Context, charge *entity.InvoiceCharge) error {
	cp := *charge
	r.charges[charge.InvoiceID] = append(r.charges[charge.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Invoice, error) {
	inv := r.byID[id]
	if inv == nil || inv.AgencyID != agencyID {
		return nil, nil
	}
	cp := *inv
	cp.Charges, _ = r.ListCharges(ctx, id)
	cp.Payments, _ = r.payments.ListByInvoice(ctx, id)
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(_ context.Context, agencyID, id string) (*entity.Invoice, error) {
	inv := r.byID[id]
	if inv == nil || inv.AgencyID != agencyID {
		return nil, nil
	}
	cp := *inv
	cp.Charges, cp.Payments = nil, nil
	return &cp, nil
}

func (r *fakeInvoiceRepo) UpdateTotals(_ context.Context, invoice *entity.Invoice) error {
	stored := r.byID[invoice.ID]
	if stored == nil {
		return nil
	}
	stored.Subtotal = invoice.Subtotal
	stored.LateFee = invoice.LateFee
	stored.TotalAmount = invoice.TotalAmount
	stored.AmountPaid = invoice.AmountPaid
	stored.Status = invoice.Status
	stored.LateFeeAppliedAt = invoice.LateFeeAppliedAt
	stored.UpdatedAt = invoice.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) ListByContract(_ context.Context, agencyID, contractID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.byID {
		if inv.AgencyID == agencyID && inv.ContractID == contractID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sortByIssueDate(out)
	return out, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, agencyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.byID {
		if inv.AgencyID != agencyID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sortByIssueDate(out)
	return out, nil
}

func (r *fakeInvoiceRepo) ListCharges(_ context.Context, invoiceID string) ([]*entity.InvoiceCharge, error) {
	var out []*entity.InvoiceCharge
	for _, ch := range r.charges[invoiceID] {
		cp := *ch
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListDueOn(_ context.Context, dueDate time.Time, statuses []string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.byID {
		if !sameDay(inv.DueDate, dueDate) {
			continue
		}
		for _, s := range statuses {
			if inv.Status == s {
				cp := *inv
				out = append(out, &cp)
				break
			}
		}
	}
	sortByIssueDate(out)
	return out, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, agencyID, id string) error {
	inv := r.byID[id]
	if inv == nil || inv.AgencyID != agencyID {
		return nil
	}
	delete(r.byID, id)
	delete(r.charges, id)
	return nil
}

func sortByIssueDate(invs []*entity.Invoice) {
	for i := 1; i < len(invs); i++ {
		for j := i; j > 0 && invs[j].IssueDate.Before(invs[j-1].IssueDate); j-- {
			invs[j], invs[j-1] = invs[j-1], invs[j]
		}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ─── fakePaymentRepo ─────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	byID map[string]*entity.Payment
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	cp := *payment
	r.byID[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	cp := *payment
	r.byID[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, agencyID, id string) error {
	p := r.byID[id]
	if p == nil || p.AgencyID != agencyID {
		return nil
	}
	delete(r.byID, id)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, agencyID, id string) (*entity.Payment, error) {
	p := r.byID[id]
	if p == nil || p.AgencyID != agencyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.byID {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CountByInvoice(_ context.Context, invoiceID string) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.InvoiceID == invoiceID {
			n++
		}
	}
	return n, nil
}

// ─── fakeContractRepo ────────────────────────────────────────────────────────

type fakeContractRepo struct {
	byID map[string]*entity.Contract
}

var _ repository.ContractRepository = (*fakeContractRepo)(nil)

func (r *fakeContractRepo) Create(_ context.Context, contract *entity.Contract) error {
	cp := *contract
	r.byID[contract.ID] = &cp
	return nil
}

func (r *fakeContractRepo) Update(_ context.Context, contract *entity.Contract) error {
	cp := *contract
	r.byID[contract.ID] = &cp
	return nil
}

func (r *fakeContractRepo) GetByID(_ context.Context, agencyID, id string) (*entity.Contract, error) {
	c := r.byID[id]
	if c == nil || c.AgencyID != agencyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractRepo) List(_ context.Context, agencyID, status string, limit, offset int) ([]*entity.Contract, error) {
	var out []*entity.Contract
	for _, c := range r.byID {
		if c.AgencyID != agencyID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeContractRepo) ExistsOverlappingActive(_ context.Context, agencyID, propertyID, renterContactID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	for _, c := range r.byID {
		if c.AgencyID != agencyID || c.PropertyID != propertyID || c.RenterContactID != renterContactID {
			continue
		}
		if c.ID == excludeID || !c.IsActiveFamily() {
			continue
		}
		if !c.StartDate.After(endDate) && !c.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContractRepo) UpdateStatus(_ context.Context, agencyID, id, status string) error {
	if c := r.byID[id]; c != nil && c.AgencyID == agencyID {
		c.Status = status
	}
	return nil
}

func (r *fakeContractRepo) MarkInvoicesGenerated(_ context.Context, agencyID, id string) error {
	if c := r.byID[id]; c != nil && c.AgencyID == agencyID {
		c.InvoicesGenerated = true
	}
	return nil
}

func (r *fakeContractRepo) MarkExpiring(_ context.Context, endBefore time.Time) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.Status == entity.ContractStatusActive && !c.EndDate.After(endBefore) {
			c.Status = entity.ContractStatusExpiring
			n++
		}
	}
	return n, nil
}

func (r *fakeContractRepo) MarkExpired(_ context.Context, endBefore time.Time) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.IsActiveFamily() && c.EndDate.Before(endBefore) {
			c.Status = entity.ContractStatusExpired
			n++
		}
	}
	return n, nil
}

// ─── helpers de datos ────────────────────────────────────────────────────────

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monto(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
