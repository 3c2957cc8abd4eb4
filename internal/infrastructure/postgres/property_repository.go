package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementación del puerto PropertyRepository sobre PostgreSQL (usable con pool o tx).
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador de persistencia para inmuebles. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

// Create persiste un nuevo inmueble.
func (r *PropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (id, agency_id, owner_contact_id, address, city, description, reference_rent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AgencyID, p.OwnerContactID, p.Address, p.City, p.Description, p.ReferenceRent, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// Update actualiza un inmueble existente.
func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	query := `
		UPDATE properties SET address = $3, city = $4, description = $5, reference_rent = $6, updated_at = $7
		WHERE agency_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, p.AgencyID, p.ID, p.Address, p.City, p.Description, p.ReferenceRent, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

// GetByID obtiene un inmueble por ID dentro de la agencia.
func (r *PropertyRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Property, error) {
	query := `
		SELECT id, agency_id, owner_contact_id, address, city, description, reference_rent, created_at, updated_at
		FROM properties WHERE agency_id = $1 AND id = $2`
	var p entity.Property
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&p.ID, &p.AgencyID, &p.OwnerContactID, &p.Address, &p.City, &p.Description, &p.ReferenceRent,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// List lista los inmuebles de la agencia con paginación.
func (r *PropertyRepo) List(ctx context.Context, agencyID string, limit, offset int) ([]*entity.Property, error) {
	query := `
		SELECT id, agency_id, owner_contact_id, address, city, description, reference_rent, created_at, updated_at
		FROM properties WHERE agency_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, agencyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(&p.ID, &p.AgencyID, &p.OwnerContactID, &p.Address, &p.City, &p.Description,
			&p.ReferenceRent, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un inmueble.
func (r *PropertyRepo) Delete(ctx context.Context, agencyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM properties WHERE agency_id = $1 AND id = $2`, agencyID, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}
