package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

func charge(kind, amount string) *entity.InvoiceCharge {
	return &entity.InvoiceCharge{Kind: kind, Amount: decimal.RequireFromString(amount)}
}

func payment(amount string) *entity.Payment {
	return &entity.Payment{Amount: decimal.RequireFromString(amount)}
}

func TestComputeTotals_ParticionaPorKind(t *testing.T) {
	charges := []*entity.InvoiceCharge{
		charge(entity.ChargeKindRent, "1500000"),
		charge(entity.ChargeKindOther, "85000.50"),
		charge(entity.ChargeKindLateFee, "150000"),
		charge(entity.ChargeKindAdjustment, "-5000"),
	}
	tot := billing.ComputeTotals(charges, decimal.Zero, decimal.Zero)

	assert.Equal(t, "1580000.50", tot.Subtotal.StringFixed(2), "rent+other+adjustment")
	assert.Equal(t, "150000.00", tot.LateFee.StringFixed(2))
	assert.Equal(t, "1730000.50", tot.Total.StringFixed(2))
}

func TestComputeTotals_ConservaTaxYOtherCharges(t *testing.T) {
	charges := []*entity.InvoiceCharge{charge(entity.ChargeKindRent, "1000")}
	tax := decimal.RequireFromString("190")
	other := decimal.RequireFromString("10")

	tot := billing.ComputeTotals(charges, tax, other)
	assert.Equal(t, "1200.00", tot.Total.StringFixed(2), "total = subtotal + tax + other + mora")
}

func TestComputeTotals_Idempotente(t *testing.T) {
	charges := []*entity.InvoiceCharge{
		charge(entity.ChargeKindRent, "1500000"),
		charge(entity.ChargeKindLateFee, "75000"),
	}
	a := billing.ComputeTotals(charges, decimal.Zero, decimal.Zero)
	b := billing.ComputeTotals(charges, decimal.Zero, decimal.Zero)

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.LateFee.Equal(b.LateFee))
	assert.True(t, a.Total.Equal(b.Total))
}

func TestComputeTotals_SinCargos(t *testing.T) {
	tot := billing.ComputeTotals(nil, decimal.Zero, decimal.Zero)
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.LateFee.IsZero())
	assert.True(t, tot.Total.IsZero())
}

func TestComputePaymentState_Estados(t *testing.T) {
	total := decimal.NewFromInt(1000)

	paid, status := billing.ComputePaymentState(nil, total)
	assert.True(t, paid.IsZero())
	assert.Equal(t, entity.InvoiceStatusIssued, status, "sin abonos vuelve a issued, nunca a overdue")

	paid, status = billing.ComputePaymentState([]*entity.Payment{payment("400")}, total)
	assert.Equal(t, "400.00", paid.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusPartial, status)

	paid, status = billing.ComputePaymentState([]*entity.Payment{payment("400"), payment("600")}, total)
	assert.Equal(t, "1000.00", paid.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusPaid, status)
}

func TestComputePaymentState_TotalCeroEsPagada(t *testing.T) {
	// Un ajuste negativo puede dejar el total en cero: sin deuda pendiente, la
	// factura se deriva paid aun sin abonos (amountPaid >= total).
	paid, status := billing.ComputePaymentState(nil, decimal.Zero)
	assert.True(t, paid.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, status)
}

func TestComputePaymentState_SumaEsAutoritativa(t *testing.T) {
	// amountPaid siempre es la suma de los abonos vigentes, sin importar lo
	// que tuviera cacheado la factura.
	total := decimal.NewFromInt(500)
	paid, _ := billing.ComputePaymentState([]*entity.Payment{payment("100.25"), payment("200.50")}, total)
	assert.Equal(t, "300.75", paid.StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	d, err := billing.ParseAmount("1500000")
	require.NoError(t, err)
	assert.Equal(t, "1500000.00", billing.Format(d))

	d, err = billing.ParseAmount("  42.50 ")
	require.NoError(t, err)
	assert.Equal(t, "42.50", billing.Format(d))

	for _, bad := range []string{"", "abc", "-10", "1.005"} {
		_, err := billing.ParseAmount(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %q", bad)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	assert.Equal(t, "0.13", billing.Round2(decimal.RequireFromString("0.125")).StringFixed(2))
	assert.Equal(t, "0.12", billing.Round2(decimal.RequireFromString("0.124")).StringFixed(2))
}
