package billing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeLateFee calcula el recargo por mora según la política del contrato.
//
//   - percent: Round2(subtotal * value / 100)
//   - fixed:   value tal cual
//   - none u otro: cero (la factura igual pasa a overdue, sin cargo)
func ComputeLateFee(feeType string, feeValue, subtotal decimal.Decimal) decimal.Decimal {
	switch feeType {
	case entity.LateFeePercent:
		return Round2(subtotal.Mul(feeValue).Div(hundred))
	case entity.LateFeeFixed:
		return feeValue
	default:
		return decimal.Zero
	}
}

// LateFeeDescription descripción de auditoría de la línea de mora: conserva
// la política con la que se calculó el recargo.
func LateFeeDescription(feeType string, feeValue decimal.Decimal) string {
	switch feeType {
	case entity.LateFeePercent:
		return "Recargo por mora (" + feeValue.String() + "% del subtotal)"
	case entity.LateFeeFixed:
		return "Recargo por mora (monto fijo " + Format(feeValue) + ")"
	default:
		return "Recargo por mora"
	}
}
