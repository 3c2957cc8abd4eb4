package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.InsurancePolicyRepository = (*PolicyRepo)(nil)

const policyColumns = `id, agency_id, contract_id, insurer, policy_number, premium_amount,
	start_date, end_date, created_at, updated_at`

// PolicyRepo implementación del puerto InsurancePolicyRepository sobre PostgreSQL (usable con pool o tx).
type PolicyRepo struct {
	q Querier
}

// NewPolicyRepository construye el adaptador de persistencia para pólizas. Pasar pool o tx (Querier).
func NewPolicyRepository(q Querier) *PolicyRepo {
	return &PolicyRepo{q: q}
}

// Create persiste una nueva póliza.
func (r *PolicyRepo) Create(ctx context.Context, p *entity.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AgencyID, p.ContractID, p.Insurer, p.PolicyNumber, p.PremiumAmount,
		p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

// Update actualiza una póliza existente.
func (r *PolicyRepo) Update(ctx context.Context, p *entity.InsurancePolicy) error {
	query := `
		UPDATE insurance_policies
		SET insurer = $3, policy_number = $4, premium_amount = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE agency_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		p.AgencyID, p.ID, p.Insurer, p.PolicyNumber, p.PremiumAmount, p.StartDate, p.EndDate, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	return nil
}

// GetByID obtiene una póliza por ID dentro de la agencia.
func (r *PolicyRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.InsurancePolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM insurance_policies WHERE agency_id = $1 AND id = $2`
	var p entity.InsurancePolicy
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&p.ID, &p.AgencyID, &p.ContractID, &p.Insurer, &p.PolicyNumber, &p.PremiumAmount,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return &p, nil
}

// ListByContract lista las pólizas de un contrato.
func (r *PolicyRepo) ListByContract(ctx context.Context, agencyID, contractID string) ([]*entity.InsurancePolicy, error) {
	query := `SELECT ` + policyColumns + `
		FROM insurance_policies WHERE agency_id = $1 AND contract_id = $2 ORDER BY start_date`
	rows, err := r.q.Query(ctx, query, agencyID, contractID)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	return r.scanRows(rows)
}

// ListActiveAt pólizas vigentes en la fecha dada, de todas las agencias
// (reporte mensual a aseguradoras).
func (r *PolicyRepo) ListActiveAt(ctx context.Context, at time.Time) ([]*entity.InsurancePolicy, error) {
	query := `SELECT ` + policyColumns + `
		FROM insurance_policies WHERE start_date <= $1 AND end_date >= $1 ORDER BY insurer, policy_number`
	rows, err := r.q.Query(ctx, query, at)
	if err != nil {
		return nil, fmt.Errorf("list active policies: %w", err)
	}
	return r.scanRows(rows)
}

func (r *PolicyRepo) scanRows(rows pgx.Rows) ([]*entity.InsurancePolicy, error) {
	defer rows.Close()
	var list []*entity.InsurancePolicy
	for rows.Next() {
		var p entity.InsurancePolicy
		if err := rows.Scan(&p.ID, &p.AgencyID, &p.ContractID, &p.Insurer, &p.PolicyNumber, &p.PremiumAmount,
			&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
