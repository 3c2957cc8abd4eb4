package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/domain"
)

// Los montos cruzan la frontera del sistema como strings decimales con hasta
// dos dígitos fraccionarios. Internamente todo es decimal.Decimal; nunca
// float64, para que los totales no deriven por redondeo binario.

// Round2 redondea half-up a 2 decimales. Se aplica en cada frontera de
// cómputo de totales derivados.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format devuelve la forma canónica de un monto: dos decimales fijos.
func Format(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// ParseAmount parsea un monto decimal-string. Rechaza vacío, no-numérico,
// negativo y más de dos dígitos fraccionarios.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: monto vacío", domain.ErrInvalidInput)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q no es decimal", domain.ErrInvalidInput, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: monto negativo %s", domain.ErrInvalidInput, s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: monto %s con más de dos decimales", domain.ErrInvalidInput, s)
	}
	return d, nil
}
