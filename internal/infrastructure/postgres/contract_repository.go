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

var _ repository.ContractRepository = (*ContractRepo)(nil)

const contractColumns = `id, agency_id, number, property_id, renter_contact_id, owner_contact_id,
	start_date, end_date, rent_amount, payment_day, late_fee_type, late_fee_value, status,
	invoices_generated, created_at, updated_at`

// ContractRepo implementación del puerto ContractRepository sobre PostgreSQL (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador de persistencia para contratos. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create persiste un nuevo contrato. Number es único por agencia.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.AgencyID, c.Number, c.PropertyID, c.RenterContactID, c.OwnerContactID,
		c.StartDate, c.EndDate, c.RentAmount, c.PaymentDay, c.LateFeeType, c.LateFeeValue, c.Status,
		c.InvoicesGenerated, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// Update actualiza un contrato existente.
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts
		SET end_date = $3, rent_amount = $4, payment_day = $5, late_fee_type = $6,
			late_fee_value = $7, status = $8, updated_at = $9
		WHERE agency_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		c.AgencyID, c.ID, c.EndDate, c.RentAmount, c.PaymentDay, c.LateFeeType,
		c.LateFeeValue, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID dentro de la agencia.
func (r *ContractRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE agency_id = $1 AND id = $2`
	var c entity.Contract
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&c.ID, &c.AgencyID, &c.Number, &c.PropertyID, &c.RenterContactID, &c.OwnerContactID,
		&c.StartDate, &c.EndDate, &c.RentAmount, &c.PaymentDay, &c.LateFeeType, &c.LateFeeValue, &c.Status,
		&c.InvoicesGenerated, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// List lista contratos de la agencia; status vacío lista todos.
func (r *ContractRepo) List(ctx context.Context, agencyID, status string, limit, offset int) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + `
		FROM contracts WHERE agency_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, agencyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(
			&c.ID, &c.AgencyID, &c.Number, &c.PropertyID, &c.RenterContactID, &c.OwnerContactID,
			&c.StartDate, &c.EndDate, &c.RentAmount, &c.PaymentDay, &c.LateFeeType, &c.LateFeeValue, &c.Status,
			&c.InvoicesGenerated, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ExistsOverlappingActive verifica si hay otro contrato vigente
// (signed/active/expiring) del mismo inmueble y arrendatario con rango de
// fechas solapado. Rangos inclusivos: se solapan si start <= otro.end y
// end >= otro.start.
func (r *ContractRepo) ExistsOverlappingActive(ctx context.Context, agencyID, propertyID, renterContactID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM contracts
			WHERE agency_id = $1 AND property_id = $2 AND renter_contact_id = $3
			  AND status = ANY($4)
			  AND start_date <= $6 AND end_date >= $5
			  AND ($7 = '' OR id <> $7)
		)`
	var exists bool
	err := r.q.QueryRow(ctx, query,
		agencyID, propertyID, renterContactID, entity.ActiveFamilyStatuses, startDate, endDate, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check contract overlap: %w", err)
	}
	return exists, nil
}

// UpdateStatus cambia solo el estado del contrato.
func (r *ContractRepo) UpdateStatus(ctx context.Context, agencyID, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE contracts SET status = $3, updated_at = now() WHERE agency_id = $1 AND id = $2`,
		agencyID, id, status,
	)
	if err != nil {
		return fmt.Errorf("update contract status: %w", err)
	}
	return nil
}

// MarkInvoicesGenerated fija el guard de idempotencia de la generación.
func (r *ContractRepo) MarkInvoicesGenerated(ctx context.Context, agencyID, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE contracts SET invoices_generated = true, updated_at = now() WHERE agency_id = $1 AND id = $2`,
		agencyID, id,
	)
	if err != nil {
		return fmt.Errorf("mark invoices generated: %w", err)
	}
	return nil
}

// MarkExpiring marca expiring los contratos activos cuyo fin cae antes de endBefore.
func (r *ContractRepo) MarkExpiring(ctx context.Context, endBefore time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE contracts SET status = $1, updated_at = now()
		 WHERE status = $2 AND end_date <= $3`,
		entity.ContractStatusExpiring, entity.ContractStatusActive, endBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("mark contracts expiring: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// MarkExpired marca expired los contratos vigentes cuyo fin ya pasó.
func (r *ContractRepo) MarkExpired(ctx context.Context, endBefore time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE contracts SET status = $1, updated_at = now()
		 WHERE status = ANY($2) AND end_date < $3`,
		entity.ContractStatusExpired, entity.ActiveFamilyStatuses, endBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("mark contracts expired: %w", err)
	}
	return cmd.RowsAffected(), nil
}
