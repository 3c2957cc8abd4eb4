package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

func TestAddCharge_AjusteReconciliaTotales(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	tot, err := uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind:        entity.ChargeKindAdjustment,
		Description: "Ajuste por reparación menor",
		Amount:      monto("-150"),
	})
	require.NoError(t, err)

	// El ajuste negativo baja subtotal y total.
	assert.True(t, tot.Subtotal.Equal(monto("850")), "subtotal = %s", tot.Subtotal)
	assert.True(t, tot.Total.Equal(monto("850")))
	assert.True(t, tot.LateFee.IsZero())

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(monto("850")))
	assert.Len(t, stored.Charges, 2)
}

func TestAddCharge_MoraManualRechazada(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	_, err := uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind:        entity.ChargeKindLateFee,
		Description: "mora manual",
		Amount:      monto("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddCharge_Validaciones(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)
	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)

	// kind desconocido
	_, err := uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind: "descuento", Description: "x", Amount: monto("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// monto cero
	_, err = uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind: entity.ChargeKindOther, Description: "x", Amount: monto("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// sin descripción
	_, err = uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind: entity.ChargeKindOther, Amount: monto("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddCharge_FacturaCancelada(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	inv := facturaDe1000(t, invoiceRepo)
	inv.Status = entity.InvoiceStatusCancelled
	require.NoError(t, invoiceRepo.UpdateTotals(context.Background(), inv))

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	_, err := uc.AddCharge(context.Background(), testAgency, "invoice-1", dto.AddChargeRequest{
		Kind: entity.ChargeKindOther, Description: "x", Amount: monto("10"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel_FacturaPagadaNoCancelable(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	pagos := NewPaymentUseCase(tx)
	_, err := pagos.Create(context.Background(), testAgency, "invoice-1", abono("1000", "2024-01-03"))
	require.NoError(t, err)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	err = uc.Cancel(context.Background(), testAgency, "invoice-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel_LaCanceladaNoReviveAlReconciliar(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	require.NoError(t, uc.Cancel(context.Background(), testAgency, "invoice-1"))

	reconcile := NewReconcileUseCase(tx)
	_, err := reconcile.Reconcile(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, stored.Status)
}

func TestDelete_ConAbonosRechazada(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	pagos := NewPaymentUseCase(tx)
	_, err := pagos.Create(context.Background(), testAgency, "invoice-1", abono("100", "2024-01-03"))
	require.NoError(t, err)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	err = uc.Delete(context.Background(), testAgency, "invoice-1")
	assert.ErrorIs(t, err, domain.ErrInvoiceHasPayments)

	// Sigue existiendo
	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestDelete_SinAbonosEliminaFacturaYCargos(t *testing.T) {
	tx, invoiceRepo, paymentRepo, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewInvoiceUseCase(tx, invoiceRepo, paymentRepo)
	require.NoError(t, uc.Delete(context.Background(), testAgency, "invoice-1"))

	stored, err := invoiceRepo.GetByID(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
	charges, err := invoiceRepo.ListCharges(context.Background(), "invoice-1")
	require.NoError(t, err)
	assert.Empty(t, charges)
}

func TestReconcile_Idempotente(t *testing.T) {
	tx, invoiceRepo, _, _ := newFakes()
	facturaDe1000(t, invoiceRepo)

	uc := NewReconcileUseCase(tx)
	first, err := uc.Reconcile(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)
	second, err := uc.Reconcile(context.Background(), testAgency, "invoice-1")
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.LateFee.Equal(second.LateFee))
	assert.True(t, first.Total.Equal(second.Total))
}
