package scheduler

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
	"github.com/tu-usuario/rentas-pro/pkg/config"
	"github.com/tu-usuario/rentas-pro/pkg/logger"
)

// Scheduler corre los trabajos recurrentes del back office:
//
//   - job diario: mora sobre facturas vencidas ayer, recordatorios de
//     vencimiento y mantenimiento de estados de contrato (expiring/expired)
//   - job mensual (día 1): reporte de pólizas vigentes a aseguradoras
//
// Un ticker evalúa cada CheckInterval si cambió el día o el mes; cada corrida
// tiene su propio deadline (TickTimeout) y los errores por ítem se registran y
// se sigue con el resto: un fallo puntual no aborta la corrida.
type Scheduler struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	policies  repository.InsurancePolicyRepository
	accruer   LateFeeAccruer
	reminders ReminderDispatcher
	insurers  InsurerReporter
	cfg       config.SchedulerConfig
	log       *logger.Logger

	lastDaily   time.Time // día (truncado) de la última corrida diaria
	lastMonthly time.Time // mes de la última corrida mensual
}

// New construye el scheduler.
func New(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	policies repository.InsurancePolicyRepository,
	accruer LateFeeAccruer,
	reminders ReminderDispatcher,
	insurers InsurerReporter,
	cfg config.SchedulerConfig,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		invoices:  invoices,
		contracts: contracts,
		policies:  policies,
		accruer:   accruer,
		reminders: reminders,
		insurers:  insurers,
		cfg:       cfg,
		log:       log,
	}
}

// Start bloquea corriendo el ciclo hasta que ctx se cancele. Pensado para
// correr en su propia goroutine desde main.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().
		Dur("check_interval", s.cfg.CheckInterval).
		Int("reminder_days", s.cfg.ReminderDays).
		Msg("scheduler iniciado")

	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	// Primera evaluación inmediata: un reinicio a media mañana no debe
	// esperar al siguiente intervalo para ponerse al día.
	s.tick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler detenido")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick decide qué jobs tocan según la fecha y los ejecuta con su deadline.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	today := truncateDay(now)

	if today.After(s.lastDaily) {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.TickTimeout)
		s.runDaily(runCtx, today)
		cancel()
		s.lastDaily = today
	}

	if now.Day() == 1 {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if month.After(s.lastMonthly) {
			runCtx, cancel := context.WithTimeout(ctx, s.cfg.TickTimeout)
			s.runMonthly(runCtx, month)
			cancel()
			s.lastMonthly = month
		}
	}
}

// runDaily mora, recordatorios y mantenimiento de contratos.
func (s *Scheduler) runDaily(ctx context.Context, today time.Time) {
	s.log.Info().Str("fecha", today.Format("2006-01-02")).Msg("corrida diaria")

	s.accrueOverdue(ctx, today)
	s.sendReminders(ctx, today)
	s.maintainContracts(ctx, today)
}

// accrueOverdue aplica mora a las facturas que vencieron ayer y siguen sin
// pagar, y notifica el vencimiento. El guard de idempotencia del caso de uso
// hace inofensivo repetir una factura ya procesada.
func (s *Scheduler) accrueOverdue(ctx context.Context, today time.Time) {
	yesterday := today.AddDate(0, 0, -1)
	due, err := s.invoices.ListDueOn(ctx, yesterday, []string{entity.InvoiceStatusIssued, entity.InvoiceStatusPartial})
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudieron listar facturas vencidas")
		return
	}
	var applied int
	for _, inv := range due {
		if _, err := s.accruer.Accrue(ctx, inv.AgencyID, inv.ID); err != nil {
			s.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("falló la acumulación de mora")
			continue
		}
		if err := s.reminders.SendOverdue(ctx, inv); err != nil {
			s.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("no se pudo enviar aviso de mora")
		}
		applied++
	}
	if len(due) > 0 {
		s.log.Info().Int("vencidas", len(due)).Int("procesadas", applied).Msg("mora aplicada")
	}
}

// sendReminders avisa con ReminderDays de anticipación a facturas por vencer.
func (s *Scheduler) sendReminders(ctx context.Context, today time.Time) {
	target := today.AddDate(0, 0, s.cfg.ReminderDays)
	upcoming, err := s.invoices.ListDueOn(ctx, target, []string{entity.InvoiceStatusIssued, entity.InvoiceStatusPartial})
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudieron listar facturas por vencer")
		return
	}
	for _, inv := range upcoming {
		if err := s.reminders.SendDueSoon(ctx, inv, s.cfg.ReminderDays); err != nil {
			s.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("no se pudo enviar recordatorio")
		}
	}
}

// maintainContracts marca expiring los contratos que vencen dentro de 30 días
// y expired los que ya pasaron su fecha de fin.
func (s *Scheduler) maintainContracts(ctx context.Context, today time.Time) {
	expiring, err := s.contracts.MarkExpiring(ctx, today.AddDate(0, 0, 30))
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudieron marcar contratos por vencer")
	} else if expiring > 0 {
		s.log.Info().Int64("contratos", expiring).Msg("contratos marcados expiring")
	}

	expired, err := s.contracts.MarkExpired(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudieron marcar contratos vencidos")
	} else if expired > 0 {
		s.log.Info().Int64("contratos", expired).Msg("contratos marcados expired")
	}
}

// runMonthly reporta a las aseguradoras las pólizas vigentes al corte.
func (s *Scheduler) runMonthly(ctx context.Context, month time.Time) {
	s.log.Info().Str("mes", month.Format("2006-01")).Msg("corrida mensual")

	policies, err := s.policies.ListActiveAt(ctx, month)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudieron listar pólizas vigentes")
		return
	}
	if err := s.insurers.ReportActivePolicies(ctx, month, policies); err != nil {
		s.log.Error().Err(err).Msg("falló el reporte a aseguradoras")
		return
	}
	s.log.Info().Int("polizas", len(policies)).Msg("reporte a aseguradoras enviado")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
