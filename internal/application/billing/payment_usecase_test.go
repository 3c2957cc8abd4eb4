package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// facturaDe1000 factura issued con una línea de canon de 1000.
func facturaDe1000(t *testing.T, invoiceRepo *fakeInvoiceRepo) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID:              "invoice-1",
		AgencyID:        testAgency,
		ContractID:      "contract-1",
		RenterContactID: testRenter,
		Number:          "CTR-001-001",
		IssueDate:       fecha(2024, 1, 1),
		DueDate:         fecha(2024, 1, 5),
		Subtotal:        monto("1000"),
		TotalAmount:     monto("1000"),
		Status:          entity.InvoiceStatusIssued,
	}
	require.NoError(t, invoiceRepo.Create(context.Background(), inv))
	require.NoError(t, invoiceRepo.CreateCharge(context.Background(), &entity.InvoiceCharge{
		ID:          "charge-1",
		InvoiceID:   inv.ID,
		Kind:        entity.ChargeKindRent,
		Description: "Canon de arrendamiento enero 2024",
		Amount:      monto("1000"),
	}))
	return inv
}

func abono(amount, date string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{Amount: amount, PaymentDate: date, Method: "transfer"}
}

func TestCreatePayment_ParcialYLuegoPagada(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	_, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("300", "2024-01-03"))
	require.NoError(t, err)

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, stored.Status)
	assert.True(t, stored.AmountPaid.Equal(monto("300")))

	_, err = uc.Create(context.Background(), testAgency, "invoice-1", abono("700", "2024-01-04"))
	require.NoError(t, err)

	stored, err = invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
	assert.True(t, stored.AmountPaid.Equal(monto("1000")))
}

func TestCreatePayment_ExcedeSaldoRechazado(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	_, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("800", "2024-01-03"))
	require.NoError(t, err)

	// Saldo restante: 200. Un abono de 250 debe rechazarse informando el saldo.
	_, err = uc.Create(context.Background(), testAgency, "invoice-1", abono("250", "2024-01-04"))
	require.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	assert.Contains(t, err.Error(), "200.00", "el error informa el saldo disponible")

	// El rechazo no deja rastro: el estado sigue siendo el del primer abono.
	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.Equal(monto("800")))
	assert.Equal(t, entity.InvoiceStatusPartial, stored.Status)
}

func TestCreatePayment_ExactoAlSaldo(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	_, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("800", "2024-01-03"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), testAgency, "invoice-1", abono("200", "2024-01-04"))
	require.NoError(t, err)

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
}

func TestCreatePayment_MontoInvalido(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)
	uc := NewPaymentUseCase(tx)

	casos := []string{"", "abc", "-10", "10.123", "0"}
	for _, c := range casos {
		_, err := uc.Create(context.Background(), testAgency, "invoice-1", abono(c, "2024-01-03"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto %q", c)
	}
}

func TestCreatePayment_FacturaCancelada(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	inv := facturaDe1000(t, invoiceRepo)
	inv.Status = entity.InvoiceStatusCancelled
	require.NoError(t, invoiceRepo.UpdateTotals(context.Background(), inv))

	uc := NewPaymentUseCase(tx)
	_, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("100", "2024-01-03"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdatePayment_DevuelveElMontoViejoAlSaldo(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	p, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("800", "2024-01-03"))
	require.NoError(t, err)

	// Subir el abono de 800 a 1000: válido porque el monto viejo vuelve al saldo.
	nuevo := "1000"
	_, err = uc.Update(context.Background(), testAgency, p.ID, dto.UpdatePaymentRequest{Amount: &nuevo})
	require.NoError(t, err)

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
	assert.True(t, stored.AmountPaid.Equal(monto("1000")))

	// Pero 1100 sí excede el total.
	excede := "1100"
	_, err = uc.Update(context.Background(), testAgency, p.ID, dto.UpdatePaymentRequest{Amount: &excede})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
}

func TestDeletePayment_ReconciliaYNuncaProduceOverdue(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	inv := facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	p, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("1000", "2024-01-03"))
	require.NoError(t, err)

	// Simular que el job diario la marcó vencida después (p.ej. abono anulado
	// de una factura que ya pasó su fecha).
	inv.Status = entity.InvoiceStatusOverdue
	require.NoError(t, invoiceRepo.UpdateTotals(context.Background(), inv))

	tot, err := uc.Delete(context.Background(), testAgency, p.ID)
	require.NoError(t, err)
	assert.True(t, tot.Total.Equal(monto("1000")))

	n, err := paymentRepo.CountByInvoice(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.Zero(t, n)

	// El camino de abonos nunca re-deriva overdue: queda issued hasta el
	// siguiente tick diario.
	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusIssued, stored.Status)
	assert.True(t, stored.AmountPaid.IsZero())
}

// lockHookInvoiceRepo ejecuta un callback justo antes de tomar el lock de la
// factura, para intercalar una escritura "concurrente" ya confirmada.
type lockHookInvoiceRepo struct {
	*fakeInvoiceRepo
	beforeLock func()
}

func (r *lockHookInvoiceRepo) GetByIDForUpdate(ctx context.Context, agencyID, id string) (*entity.Invoice, error) {
	if r.beforeLock != nil {
		r.beforeLock()
	}
	return r.fakeInvoiceRepo.GetByIDForUpdate(ctx, agencyID, id)
}

type lockHookTxRunner struct {
	*fakeTxRunner
	hooked *lockHookInvoiceRepo
}

func (r *lockHookTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	return fn(r.hooked, r.payments)
}

// El monto que una corrección devuelve al saldo debe leerse con la factura ya
// bloqueada: si otra corrección del mismo abono se confirmó antes del lock,
// usar el monto viejo infla el saldo y admite un sobrepago.
func TestUpdatePayment_MontoCorregidoAntesDelLockNoSobrepaga(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewPaymentUseCase(tx)
	p, err := uc.Create(context.Background(), testAgency, "invoice-1", abono("800", "2024-01-03"))
	require.NoError(t, err)

	// Entre la lectura del abono y el lock, otra corrección lo baja a 100.
	raced := false
	hooked := &lockHookTxRunner{fakeTxRunner: tx, hooked: &lockHookInvoiceRepo{
		fakeInvoiceRepo: invoiceRepo,
		beforeLock: func() {
			if raced {
				return
			}
			raced = true
			stored := paymentRepo.byID[p.ID]
			stored.Amount = monto("100")
		},
	}}

	// Con el monto vigente (100), el saldo disponible es 1000: 1700 excede.
	nuevo := "1700"
	_, err = NewPaymentUseCase(hooked).Update(context.Background(), testAgency, p.ID, dto.UpdatePaymentRequest{Amount: &nuevo})
	require.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	// El invariante se sostiene: lo abonado nunca supera el total.
	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.LessThanOrEqual(stored.TotalAmount),
		"abonado %s vs total %s", stored.AmountPaid, stored.TotalAmount)
}

func TestDeletePayment_Inexistente(t *testing.T) {
	tx, _, _, _ := newFakes()
	uc := NewPaymentUseCase(tx)
	_, err := uc.Delete(context.Background(), testAgency, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
