package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.ExtractedChargeRepository = (*ExtractedChargeRepo)(nil)

// ExtractedChargeRepo implementación del puerto ExtractedChargeRepository sobre PostgreSQL (usable con pool o tx).
type ExtractedChargeRepo struct {
	q Querier
}

// NewExtractedChargeRepository construye el adaptador de persistencia para cargos extraídos. Pasar pool o tx (Querier).
func NewExtractedChargeRepository(q Querier) *ExtractedChargeRepo {
	return &ExtractedChargeRepo{q: q}
}

// Create persiste un nuevo cargo extraído (estado pending).
func (r *ExtractedChargeRepo) Create(ctx context.Context, ec *entity.ExtractedCharge) error {
	query := `
		INSERT INTO extracted_charges (id, agency_id, invoice_id, amount, reference, period, confidence, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		ec.ID, ec.AgencyID, ec.InvoiceID, ec.Amount, ec.Reference, ec.Period, ec.Confidence, ec.Status,
		ec.CreatedAt, ec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert extracted charge: %w", err)
	}
	return nil
}

// GetByID obtiene un cargo extraído por ID dentro de la agencia.
func (r *ExtractedChargeRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.ExtractedCharge, error) {
	query := `
		SELECT id, agency_id, invoice_id, amount, reference, period, confidence, status, created_at, updated_at
		FROM extracted_charges WHERE agency_id = $1 AND id = $2`
	var ec entity.ExtractedCharge
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&ec.ID, &ec.AgencyID, &ec.InvoiceID, &ec.Amount, &ec.Reference, &ec.Period, &ec.Confidence, &ec.Status,
		&ec.CreatedAt, &ec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get extracted charge: %w", err)
	}
	return &ec, nil
}

// ListPending lista los cargos extraídos pendientes de revisión.
func (r *ExtractedChargeRepo) ListPending(ctx context.Context, agencyID string, limit, offset int) ([]*entity.ExtractedCharge, error) {
	query := `
		SELECT id, agency_id, invoice_id, amount, reference, period, confidence, status, created_at, updated_at
		FROM extracted_charges WHERE agency_id = $1 AND status = $2
		ORDER BY created_at LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, agencyID, entity.ExtractedPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending extracted charges: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExtractedCharge
	for rows.Next() {
		var ec entity.ExtractedCharge
		if err := rows.Scan(&ec.ID, &ec.AgencyID, &ec.InvoiceID, &ec.Amount, &ec.Reference, &ec.Period,
			&ec.Confidence, &ec.Status, &ec.CreatedAt, &ec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan extracted charge: %w", err)
		}
		list = append(list, &ec)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de revisión (approved/rejected).
func (r *ExtractedChargeRepo) UpdateStatus(ctx context.Context, agencyID, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE extracted_charges SET status = $3, updated_at = now() WHERE agency_id = $1 AND id = $2`,
		agencyID, id, status,
	)
	if err != nil {
		return fmt.Errorf("update extracted charge status: %w", err)
	}
	return nil
}
