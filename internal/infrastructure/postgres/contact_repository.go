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

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación del puerto ContactRepository sobre PostgreSQL (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador de persistencia para contactos. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, agency_id, kind, name, document_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.AgencyID, c.Kind, c.Name, c.DocumentID, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Update actualiza un contacto existente.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET name = $3, email = $4, phone = $5, updated_at = $6
		WHERE agency_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, c.AgencyID, c.ID, c.Name, c.Email, c.Phone, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto por ID dentro de la agencia.
func (r *ContactRepo) GetByID(ctx context.Context, agencyID, id string) (*entity.Contact, error) {
	query := `
		SELECT id, agency_id, kind, name, document_id, email, phone, created_at, updated_at
		FROM contacts WHERE agency_id = $1 AND id = $2`
	var c entity.Contact
	err := r.q.QueryRow(ctx, query, agencyID, id).Scan(
		&c.ID, &c.AgencyID, &c.Kind, &c.Name, &c.DocumentID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// List lista contactos de la agencia; kind vacío lista todos.
func (r *ContactRepo) List(ctx context.Context, agencyID, kind string, limit, offset int) ([]*entity.Contact, error) {
	query := `
		SELECT id, agency_id, kind, name, document_id, email, phone, created_at, updated_at
		FROM contacts WHERE agency_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, agencyID, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.AgencyID, &c.Kind, &c.Name, &c.DocumentID, &c.Email, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un contacto.
func (r *ContactRepo) Delete(ctx context.Context, agencyID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE agency_id = $1 AND id = $2`, agencyID, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
