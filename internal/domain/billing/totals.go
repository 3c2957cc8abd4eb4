package billing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// Totals resultado de la reconciliación por cargos.
type Totals struct {
	Subtotal decimal.Decimal
	LateFee  decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals recalcula subtotal, mora y total de una factura a partir de su
// conjunto ACTUAL de cargos. Es la única fuente de verdad: los campos cacheados
// de la factura siempre son derivables de aquí y no pueden divergir.
//
// Los cargos se particionan por Kind: los kind=late_fee suman al acumulado de
// mora, el resto al subtotal. Tax y OtherCharges se conservan tal cual (no se
// derivan de cargos). Determinista e idempotente: dos invocaciones seguidas
// sobre la misma factura producen el mismo resultado.
func ComputeTotals(charges []*entity.InvoiceCharge, tax, otherCharges decimal.Decimal) Totals {
	subtotal := decimal.Zero
	lateFee := decimal.Zero
	for _, ch := range charges {
		if ch.Kind == entity.ChargeKindLateFee {
			lateFee = lateFee.Add(ch.Amount)
		} else {
			subtotal = subtotal.Add(ch.Amount)
		}
	}
	subtotal = Round2(subtotal)
	lateFee = Round2(lateFee)
	return Totals{
		Subtotal: subtotal,
		LateFee:  lateFee,
		Total:    Round2(subtotal.Add(tax).Add(otherCharges).Add(lateFee)),
	}
}

// ComputePaymentState recalcula el monto abonado y el estado de la factura a
// partir de sus abonos vigentes.
//
//   - paid    si amountPaid >= total (incluye el total cero: sin deuda, nada
//     que cobrar — un ajuste negativo puede dejar la factura en cero)
//   - partial si 0 < amountPaid < total
//   - issued  en caso contrario
//
// Nunca devuelve overdue: re-derivar la mora desde la fecha de vencimiento es
// trabajo del job diario, no de este motor. En consecuencia, anular el abono
// de una factura vencida la deja en issued hasta el siguiente tick diario;
// comportamiento acordado con producto, no "corregir" aquí.
func ComputePaymentState(payments []*entity.Payment, total decimal.Decimal) (amountPaid decimal.Decimal, status string) {
	amountPaid = decimal.Zero
	for _, p := range payments {
		amountPaid = amountPaid.Add(p.Amount)
	}
	amountPaid = Round2(amountPaid)
	switch {
	case amountPaid.GreaterThanOrEqual(total):
		status = entity.InvoiceStatusPaid
	case amountPaid.IsPositive():
		status = entity.InvoiceStatusPartial
	default:
		status = entity.InvoiceStatusIssued
	}
	return amountPaid, status
}
