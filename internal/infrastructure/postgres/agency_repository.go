package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.AgencyRepository = (*AgencyRepo)(nil)

// AgencyRepo implementación del puerto AgencyRepository sobre PostgreSQL (usable con pool o tx).
type AgencyRepo struct {
	q Querier
}

// NewAgencyRepository construye el adaptador de persistencia para agencias. Pasar pool o tx (Querier).
func NewAgencyRepository(q Querier) *AgencyRepo {
	return &AgencyRepo{q: q}
}

// Create persiste una nueva agencia.
func (r *AgencyRepo) Create(ctx context.Context, a *entity.Agency) error {
	query := `
		INSERT INTO agencies (id, name, tax_id, address, phone, email, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.TaxID, a.Address, a.Phone, a.Email, a.Plan, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agency: %w", err)
	}
	return nil
}

// GetByID obtiene una agencia por ID.
func (r *AgencyRepo) GetByID(ctx context.Context, id string) (*entity.Agency, error) {
	query := `
		SELECT id, name, tax_id, address, phone, email, plan, status, created_at, updated_at
		FROM agencies WHERE id = $1`
	var a entity.Agency
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.TaxID, &a.Address, &a.Phone, &a.Email, &a.Plan, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agency: %w", err)
	}
	return &a, nil
}

// List lista agencias con paginación.
func (r *AgencyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Agency, error) {
	query := `
		SELECT id, name, tax_id, address, phone, email, plan, status, created_at, updated_at
		FROM agencies ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Agency
	for rows.Next() {
		var a entity.Agency
		if err := rows.Scan(&a.ID, &a.Name, &a.TaxID, &a.Address, &a.Phone, &a.Email, &a.Plan, &a.Status,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan agency: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
