package scheduler

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// LateFeeAccruer aplica la mora a una factura vencida (application/billing).
type LateFeeAccruer interface {
	Accrue(ctx context.Context, agencyID, invoiceID string) (*dto.InvoiceResponse, error)
}

// ReminderDispatcher puerto de salida para recordatorios al arrendatario.
// La implementación por defecto solo los registra en el log (infrastructure/notify).
type ReminderDispatcher interface {
	SendDueSoon(ctx context.Context, invoice *entity.Invoice, daysUntilDue int) error
	SendOverdue(ctx context.Context, invoice *entity.Invoice) error
}

// InsurerReporter puerto de salida para el reporte mensual de pólizas vigentes.
type InsurerReporter interface {
	ReportActivePolicies(ctx context.Context, month time.Time, policies []*entity.InsurancePolicy) error
}
