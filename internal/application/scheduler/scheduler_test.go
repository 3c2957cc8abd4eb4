package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/pkg/config"
	"github.com/tu-usuario/rentas-pro/pkg/logger"
)

// Stubs mínimos de los puertos: registran las llamadas que recibe cada
// colaborador para verificar qué decidió el scheduler en cada corrida.

type stubInvoiceRepo struct {
	dueByDate map[string][]*entity.Invoice // clave: fecha YYYY-MM-DD
	listErr   error
	queried   []string
}

func (r *stubInvoiceRepo) ListDueOn(_ context.Context, dueDate time.Time, _ []string) ([]*entity.Invoice, error) {
	key := dueDate.Format("2006-01-02")
	r.queried = append(r.queried, key)
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.dueByDate[key], nil
}

// El scheduler solo usa ListDueOn; el resto del puerto no aplica aquí.
func (r *stubInvoiceRepo) Create(context.Context, *entity.Invoice) error              { return nil }
func (r *stubInvoiceRepo) CreateCharge(context.Context, *entity.InvoiceCharge) error { return nil }
func (r *stubInvoiceRepo) GetByID(context.Context, string, string) (*entity.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) GetByIDForUpdate(context.Context, string, string) (*entity.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) UpdateTotals(context.Context, *entity.Invoice) error { return nil }
func (r *stubInvoiceRepo) ListByContract(context.Context, string, string) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) List(context.Context, string, string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) ListCharges(context.Context, string) ([]*entity.InvoiceCharge, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) Delete(context.Context, string, string) error { return nil }

type stubContractRepo struct {
	expiringCalls []time.Time
	expiredCalls  []time.Time
}

func (r *stubContractRepo) MarkExpiring(_ context.Context, endBefore time.Time) (int64, error) {
	r.expiringCalls = append(r.expiringCalls, endBefore)
	return 1, nil
}

func (r *stubContractRepo) MarkExpired(_ context.Context, endBefore time.Time) (int64, error) {
	r.expiredCalls = append(r.expiredCalls, endBefore)
	return 0, nil
}

func (r *stubContractRepo) Create(context.Context, *entity.Contract) error { return nil }
func (r *stubContractRepo) Update(context.Context, *entity.Contract) error { return nil }
func (r *stubContractRepo) GetByID(context.Context, string, string) (*entity.Contract, error) {
	return nil, nil
}
func (r *stubContractRepo) List(context.Context, string, string, int, int) ([]*entity.Contract, error) {
	return nil, nil
}
func (r *stubContractRepo) ExistsOverlappingActive(context.Context, string, string, string, time.Time, time.Time, string) (bool, error) {
	return false, nil
}
func (r *stubContractRepo) UpdateStatus(context.Context, string, string, string) error { return nil }
func (r *stubContractRepo) MarkInvoicesGenerated(context.Context, string, string) error {
	return nil
}

type stubPolicyRepo struct {
	active []*entity.InsurancePolicy
}

func (r *stubPolicyRepo) ListActiveAt(context.Context, time.Time) ([]*entity.InsurancePolicy, error) {
	return r.active, nil
}
func (r *stubPolicyRepo) Create(context.Context, *entity.InsurancePolicy) error { return nil }
func (r *stubPolicyRepo) Update(context.Context, *entity.InsurancePolicy) error { return nil }
func (r *stubPolicyRepo) GetByID(context.Context, string, string) (*entity.InsurancePolicy, error) {
	return nil, nil
}
func (r *stubPolicyRepo) ListByContract(context.Context, string, string) ([]*entity.InsurancePolicy, error) {
	return nil, nil
}

type stubAccruer struct {
	accrued []string // invoice IDs
	failFor string   // si coincide, la acumulación falla
}

func (a *stubAccruer) Accrue(_ context.Context, _, invoiceID string) (*dto.InvoiceResponse, error) {
	if invoiceID == a.failFor {
		return nil, errors.New("fallo simulado")
	}
	a.accrued = append(a.accrued, invoiceID)
	return &dto.InvoiceResponse{ID: invoiceID, Status: entity.InvoiceStatusOverdue}, nil
}

type stubDispatcher struct {
	dueSoon []string
	overdue []string
}

func (d *stubDispatcher) SendDueSoon(_ context.Context, inv *entity.Invoice, _ int) error {
	d.dueSoon = append(d.dueSoon, inv.ID)
	return nil
}

func (d *stubDispatcher) SendOverdue(_ context.Context, inv *entity.Invoice) error {
	d.overdue = append(d.overdue, inv.ID)
	return nil
}

type stubReporter struct {
	months   []time.Time
	reported int
}

func (r *stubReporter) ReportActivePolicies(_ context.Context, month time.Time, policies []*entity.InsurancePolicy) error {
	r.months = append(r.months, month)
	r.reported += len(policies)
	return nil
}

func testConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:       true,
		CheckInterval: time.Hour,
		TickTimeout:   time.Minute,
		ReminderDays:  3,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newTestScheduler(invoices *stubInvoiceRepo, contracts *stubContractRepo, policies *stubPolicyRepo,
	accruer *stubAccruer, dispatcher *stubDispatcher, reporter *stubReporter) *Scheduler {
	return New(invoices, contracts, policies, accruer, dispatcher, reporter, testConfig(), testLogger())
}

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRunDaily_AcumulaMoraDeVencidasAyer(t *testing.T) {
	today := fecha(2024, 3, 15)
	invoices := &stubInvoiceRepo{dueByDate: map[string][]*entity.Invoice{
		"2024-03-14": {
			{ID: "inv-1", AgencyID: "agency-1", Status: entity.InvoiceStatusIssued},
			{ID: "inv-2", AgencyID: "agency-2", Status: entity.InvoiceStatusPartial},
		},
	}}
	accruer := &stubAccruer{}
	dispatcher := &stubDispatcher{}
	s := newTestScheduler(invoices, &stubContractRepo{}, &stubPolicyRepo{}, accruer, dispatcher, &stubReporter{})

	s.runDaily(context.Background(), today)

	assert.Equal(t, []string{"inv-1", "inv-2"}, accruer.accrued, "ambas facturas vencidas ayer")
	assert.Equal(t, []string{"inv-1", "inv-2"}, dispatcher.overdue, "aviso de mora por cada una")
	// Consultó ayer (mora) y hoy+3 (recordatorios)
	assert.Contains(t, invoices.queried, "2024-03-14")
	assert.Contains(t, invoices.queried, "2024-03-18")
}

func TestRunDaily_ErrorPorFacturaNoAbortaLaCorrida(t *testing.T) {
	today := fecha(2024, 3, 15)
	invoices := &stubInvoiceRepo{dueByDate: map[string][]*entity.Invoice{
		"2024-03-14": {
			{ID: "inv-1", Status: entity.InvoiceStatusIssued},
			{ID: "inv-2", Status: entity.InvoiceStatusIssued},
			{ID: "inv-3", Status: entity.InvoiceStatusIssued},
		},
	}}
	accruer := &stubAccruer{failFor: "inv-2"}
	dispatcher := &stubDispatcher{}
	s := newTestScheduler(invoices, &stubContractRepo{}, &stubPolicyRepo{}, accruer, dispatcher, &stubReporter{})

	s.runDaily(context.Background(), today)

	assert.Equal(t, []string{"inv-1", "inv-3"}, accruer.accrued, "el fallo de inv-2 no detiene al resto")
	assert.NotContains(t, dispatcher.overdue, "inv-2", "sin aviso para la que falló")
}

func TestRunDaily_RecordatoriosConAnticipacion(t *testing.T) {
	today := fecha(2024, 3, 15)
	invoices := &stubInvoiceRepo{dueByDate: map[string][]*entity.Invoice{
		"2024-03-18": {{ID: "inv-9", Status: entity.InvoiceStatusIssued}},
	}}
	dispatcher := &stubDispatcher{}
	s := newTestScheduler(invoices, &stubContractRepo{}, &stubPolicyRepo{}, &stubAccruer{}, dispatcher, &stubReporter{})

	s.runDaily(context.Background(), today)

	assert.Equal(t, []string{"inv-9"}, dispatcher.dueSoon)
}

func TestRunDaily_MantenimientoDeContratos(t *testing.T) {
	today := fecha(2024, 3, 15)
	contracts := &stubContractRepo{}
	s := newTestScheduler(&stubInvoiceRepo{}, contracts, &stubPolicyRepo{}, &stubAccruer{}, &stubDispatcher{}, &stubReporter{})

	s.runDaily(context.Background(), today)

	require.Len(t, contracts.expiringCalls, 1)
	assert.Equal(t, fecha(2024, 4, 14), contracts.expiringCalls[0], "expiring: vencen dentro de 30 días")
	require.Len(t, contracts.expiredCalls, 1)
	assert.Equal(t, today, contracts.expiredCalls[0], "expired: ya pasaron su fecha de fin")
}

func TestRunMonthly_ReportaPolizasVigentes(t *testing.T) {
	month := fecha(2024, 4, 1)
	policies := &stubPolicyRepo{active: []*entity.InsurancePolicy{
		{ID: "pol-1", Insurer: "Seguros Alfa"},
		{ID: "pol-2", Insurer: "Seguros Beta"},
	}}
	reporter := &stubReporter{}
	s := newTestScheduler(&stubInvoiceRepo{}, &stubContractRepo{}, policies, &stubAccruer{}, &stubDispatcher{}, reporter)

	s.runMonthly(context.Background(), month)

	require.Len(t, reporter.months, 1)
	assert.Equal(t, month, reporter.months[0])
	assert.Equal(t, 2, reporter.reported)
}

func TestTick_CorridaDiariaUnaVezPorDia(t *testing.T) {
	invoices := &stubInvoiceRepo{}
	contracts := &stubContractRepo{}
	s := newTestScheduler(invoices, contracts, &stubPolicyRepo{}, &stubAccruer{}, &stubDispatcher{}, &stubReporter{})

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	s.tick(context.Background(), now)
	s.tick(context.Background(), now.Add(2*time.Hour))
	assert.Len(t, contracts.expiringCalls, 1, "el mismo día no repite la corrida")

	s.tick(context.Background(), now.AddDate(0, 0, 1))
	assert.Len(t, contracts.expiringCalls, 2, "al cambiar el día vuelve a correr")
}

func TestTick_CorridaMensualSoloElDiaUno(t *testing.T) {
	reporter := &stubReporter{}
	s := newTestScheduler(&stubInvoiceRepo{}, &stubContractRepo{}, &stubPolicyRepo{}, &stubAccruer{}, &stubDispatcher{}, reporter)

	s.tick(context.Background(), time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	assert.Empty(t, reporter.months, "día 15: sin corrida mensual")

	s.tick(context.Background(), time.Date(2024, 4, 1, 0, 30, 0, 0, time.UTC))
	require.Len(t, reporter.months, 1, "día 1: corre el job mensual")

	// Otro tick el mismo día 1 no repite el reporte
	s.tick(context.Background(), time.Date(2024, 4, 1, 6, 30, 0, 0, time.UTC))
	assert.Len(t, reporter.months, 1)
}
