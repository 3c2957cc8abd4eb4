// Package notify implementa las salidas de notificación del scheduler. Las
// implementaciones actuales registran en el log estructurado; el canal real
// (email, SMS) se conecta detrás de los mismos puertos.
package notify

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/application/scheduler"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/pkg/logger"
)

var (
	_ scheduler.ReminderDispatcher = (*LogReminderDispatcher)(nil)
	_ scheduler.InsurerReporter    = (*LogInsurerReporter)(nil)
)

// LogReminderDispatcher registra los recordatorios en el log.
type LogReminderDispatcher struct {
	log *logger.Logger
}

// NewLogReminderDispatcher construye el dispatcher.
func NewLogReminderDispatcher(log *logger.Logger) *LogReminderDispatcher {
	return &LogReminderDispatcher{log: log}
}

// SendDueSoon registra el recordatorio de vencimiento próximo.
func (d *LogReminderDispatcher) SendDueSoon(_ context.Context, inv *entity.Invoice, daysUntilDue int) error {
	d.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("agency_id", inv.AgencyID).
		Int("dias", daysUntilDue).
		Msg("recordatorio: factura por vencer")
	return nil
}

// SendOverdue registra el aviso de factura vencida.
func (d *LogReminderDispatcher) SendOverdue(_ context.Context, inv *entity.Invoice) error {
	d.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("agency_id", inv.AgencyID).
		Msg("aviso: factura vencida")
	return nil
}

// LogInsurerReporter registra el reporte mensual de pólizas en el log.
type LogInsurerReporter struct {
	log *logger.Logger
}

// NewLogInsurerReporter construye el reporter.
func NewLogInsurerReporter(log *logger.Logger) *LogInsurerReporter {
	return &LogInsurerReporter{log: log}
}

// ReportActivePolicies registra el resumen del corte mensual por aseguradora.
func (r *LogInsurerReporter) ReportActivePolicies(_ context.Context, month time.Time, policies []*entity.InsurancePolicy) error {
	byInsurer := make(map[string]int)
	for _, p := range policies {
		byInsurer[p.Insurer]++
	}
	for insurer, n := range byInsurer {
		r.log.Info().
			Str("mes", month.Format("2006-01")).
			Str("aseguradora", insurer).
			Int("polizas", n).
			Msg("reporte mensual de pólizas")
	}
	return nil
}
