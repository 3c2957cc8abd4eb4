package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

const (
	testAgency   = "agency-1"
	testProperty = "property-1"
	testRenter   = "renter-1"
	testOwner    = "owner-1"
)

// contratoBase contrato draft de enero a marzo de 2024, canon 1.500.000, vence el 5.
func contratoBase() *entity.Contract {
	return &entity.Contract{
		ID:              "contract-1",
		AgencyID:        testAgency,
		Number:          "CTR-001",
		PropertyID:      testProperty,
		RenterContactID: testRenter,
		OwnerContactID:  testOwner,
		StartDate:       fecha(2024, 1, 1),
		EndDate:         fecha(2024, 3, 1),
		RentAmount:      monto("1500000"),
		PaymentDay:      5,
		LateFeeType:     entity.LateFeePercent,
		LateFeeValue:    monto("10"),
		Status:          entity.ContractStatusDraft,
	}
}

func TestActivate_GeneraUnaFacturaPorMes(t *testing.T) {
	tx, invoiceRepo, _, contractRepo := newFakes()
	require.NoError(t, contractRepo.Create(context.Background(), contratoBase()))

	uc := NewActivateContractUseCase(tx)
	out, err := uc.Activate(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.ContractStatusActive, out.Contract.Status, "el contrato debe quedar activo")
	assert.True(t, out.Contract.InvoicesGenerated, "debe marcarse la generación")

	require.Len(t, out.Invoices, 3, "enero, febrero y marzo: una factura por mes")
	assert.Equal(t, "CTR-001-001", out.Invoices[0].Number)
	assert.Equal(t, "CTR-001-002", out.Invoices[1].Number)
	assert.Equal(t, "CTR-001-003", out.Invoices[2].Number)

	// Vencimiento el día 5 de cada mes
	assert.Equal(t, "2024-01-05", out.Invoices[0].DueDate)
	assert.Equal(t, "2024-02-05", out.Invoices[1].DueDate)
	assert.Equal(t, "2024-03-05", out.Invoices[2].DueDate)

	for _, inv := range out.Invoices {
		assert.Equal(t, entity.InvoiceStatusIssued, inv.Status)
		assert.True(t, inv.Subtotal.Equal(monto("1500000")), "subtotal = canon")
		assert.True(t, inv.TotalAmount.Equal(monto("1500000")), "total = canon")
		require.Len(t, inv.Charges, 1, "una línea de canon por factura")
		assert.Equal(t, entity.ChargeKindRent, inv.Charges[0].Kind)
	}

	// Persistidas en el repositorio
	stored, err := invoiceRepo.ListByContract(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestActivate_ReintentoNoDuplicaFacturas(t *testing.T) {
	tx, invoiceRepo, _, contractRepo := newFakes()
	require.NoError(t, contractRepo.Create(context.Background(), contratoBase()))

	uc := NewActivateContractUseCase(tx)
	first, err := uc.Activate(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)

	// Segunda activación: el guard InvoicesGenerated devuelve las existentes.
	second, err := uc.Activate(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)

	assert.Len(t, second.Invoices, len(first.Invoices), "mismo juego de facturas")
	stored, err := invoiceRepo.ListByContract(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)
	assert.Len(t, stored, 3, "sin duplicados tras el reintento")
}

func TestActivate_ContratoSolapadoRechazado(t *testing.T) {
	tx, _, _, contractRepo := newFakes()
	require.NoError(t, contractRepo.Create(context.Background(), contratoBase()))

	// Otro contrato vigente sobre el mismo inmueble y arrendatario, solapado.
	vigente := contratoBase()
	vigente.ID = "contract-2"
	vigente.Number = "CTR-002"
	vigente.StartDate = fecha(2024, 2, 1)
	vigente.EndDate = fecha(2024, 6, 30)
	vigente.Status = entity.ContractStatusActive
	require.NoError(t, contractRepo.Create(context.Background(), vigente))

	uc := NewActivateContractUseCase(tx)
	_, err := uc.Activate(context.Background(), testAgency, "contract-1")
	assert.ErrorIs(t, err, domain.ErrContractOverlap)
}

func TestActivate_ContratoCanceladoNoActivable(t *testing.T) {
	tx, _, _, contractRepo := newFakes()
	c := contratoBase()
	c.Status = entity.ContractStatusCancelled
	require.NoError(t, contractRepo.Create(context.Background(), c))

	uc := NewActivateContractUseCase(tx)
	_, err := uc.Activate(context.Background(), testAgency, "contract-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestActivate_ContratoDeOtraAgenciaNoVisible(t *testing.T) {
	tx, _, _, contractRepo := newFakes()
	require.NoError(t, contractRepo.Create(context.Background(), contratoBase()))

	uc := NewActivateContractUseCase(tx)
	_, err := uc.Activate(context.Background(), "otra-agencia", "contract-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivate_VencimientoAjustadoAFebrero(t *testing.T) {
	tx, _, _, contractRepo := newFakes()
	c := contratoBase()
	c.StartDate = fecha(2024, 1, 1)
	c.EndDate = fecha(2024, 2, 15)
	c.PaymentDay = 30
	require.NoError(t, contractRepo.Create(context.Background(), c))

	uc := NewActivateContractUseCase(tx)
	out, err := uc.Activate(context.Background(), testAgency, "contract-1")
	require.NoError(t, err)
	require.Len(t, out.Invoices, 2)

	assert.Equal(t, "2024-01-30", out.Invoices[0].DueDate)
	// 2024 es bisiesto: el día 30 se ajusta al 29.
	assert.Equal(t, "2024-02-29", out.Invoices[1].DueDate)
}
