package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentas-pro/internal/domain"
)

// ScheduledInvoice es una factura planificada del contrato: una por mes
// calendario entre el mes de inicio y el mes de fin, ambos inclusive.
type ScheduledInvoice struct {
	Sequence  int
	Number    string    // {contractNumber}-{seq:03d}
	Period    time.Time // primer día del mes facturado
	IssueDate time.Time // = Period
	DueDate   time.Time // día paymentDay del mes, ajustado al último día real
}

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthLabel devuelve "enero 2024" para el periodo dado.
func MonthLabel(period time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[period.Month()-1], period.Year())
}

// RentDescription descripción de la línea de canon de un periodo.
func RentDescription(period time.Time) string {
	return "Canon de arrendamiento " + MonthLabel(period)
}

// BuildSchedule expande un contrato en su plan de facturación mensual.
//
// Reglas:
//   - una factura por mes desde el mes de startDate hasta el mes de endDate inclusive
//   - IssueDate = día 1 del mes; DueDate = día paymentDay, ajustado al último
//     día del mes cuando el mes es más corto (paymentDay=30 en febrero -> 28/29)
//   - numeración {contractNumber}-001, -002, ... en orden cronológico
func BuildSchedule(contractNumber string, startDate, endDate time.Time, paymentDay int, rentAmount decimal.Decimal) ([]ScheduledInvoice, error) {
	if contractNumber == "" {
		return nil, fmt.Errorf("%w: número de contrato vacío", domain.ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}
	if paymentDay < 1 || paymentDay > 30 {
		return nil, fmt.Errorf("%w: paymentDay %d fuera de [1,30]", domain.ErrInvalidInput, paymentDay)
	}
	if !rentAmount.IsPositive() {
		return nil, fmt.Errorf("%w: canon no positivo %s", domain.ErrInvalidInput, rentAmount)
	}

	loc := startDate.Location()
	first := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(endDate.Year(), endDate.Month(), 1, 0, 0, 0, 0, loc)

	var plan []ScheduledInvoice
	seq := 1
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		due := paymentDay
		if d := daysInMonth(m); due > d {
			due = d
		}
		plan = append(plan, ScheduledInvoice{
			Sequence:  seq,
			Number:    fmt.Sprintf("%s-%03d", contractNumber, seq),
			Period:    m,
			IssueDate: m,
			DueDate:   time.Date(m.Year(), m.Month(), due, 0, 0, 0, 0, loc),
		})
		seq++
	}
	return plan, nil
}

// daysInMonth días reales del mes de m (el día 0 del mes siguiente).
func daysInMonth(m time.Time) int {
	return time.Date(m.Year(), m.Month()+1, 0, 0, 0, 0, 0, m.Location()).Day()
}
