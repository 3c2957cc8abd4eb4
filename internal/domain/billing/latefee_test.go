package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/rentas-pro/internal/domain/billing"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

func TestComputeLateFee_Porcentaje(t *testing.T) {
	// 10% de 1.000.000 = 100.000
	fee := billing.ComputeLateFee(entity.LateFeePercent, decimal.NewFromInt(10), decimal.NewFromInt(1_000_000))
	assert.True(t, decimal.NewFromInt(100_000).Equal(fee), "fee = %s", fee)
}

func TestComputeLateFee_PorcentajeRedondeaHalfUp(t *testing.T) {
	// 1.5% de 333.33 = 4.99995 -> 5.00
	fee := billing.ComputeLateFee(entity.LateFeePercent, decimal.RequireFromString("1.5"), decimal.RequireFromString("333.33"))
	assert.Equal(t, "5.00", fee.StringFixed(2))
}

func TestComputeLateFee_Fijo(t *testing.T) {
	fee := billing.ComputeLateFee(entity.LateFeeFixed, decimal.NewFromInt(50_000), decimal.NewFromInt(1_000_000))
	assert.True(t, decimal.NewFromInt(50_000).Equal(fee))
}

func TestComputeLateFee_None(t *testing.T) {
	fee := billing.ComputeLateFee(entity.LateFeeNone, decimal.NewFromInt(10), decimal.NewFromInt(1_000_000))
	assert.True(t, fee.IsZero())
}

func TestLateFeeDescription_ConservaPolitica(t *testing.T) {
	assert.Contains(t, billing.LateFeeDescription(entity.LateFeePercent, decimal.NewFromInt(10)), "10%")
	assert.Contains(t, billing.LateFeeDescription(entity.LateFeeFixed, decimal.NewFromInt(50000)), "50000.00")
}
