package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// ContractRepository puerto de persistencia para contratos de arrendamiento.
type ContractRepository interface {
	Create(ctx context.Context, contract *entity.Contract) error
	Update(ctx context.Context, contract *entity.Contract) error
	GetByID(ctx context.Context, agencyID, id string) (*entity.Contract, error)
	List(ctx context.Context, agencyID, status string, limit, offset int) ([]*entity.Contract, error)

	// ExistsOverlappingActive verifica si existe otro contrato vigente
	// (signed/active/expiring) para el mismo inmueble y arrendatario cuyo
	// rango [startDate, endDate] se solape con el dado. excludeID permite
	// omitir el propio contrato al validar una actualización.
	ExistsOverlappingActive(ctx context.Context, agencyID, propertyID, renterContactID string, startDate, endDate time.Time, excludeID string) (bool, error)

	UpdateStatus(ctx context.Context, agencyID, id, status string) error

	// MarkInvoicesGenerated fija el guard de idempotencia de la generación.
	MarkInvoicesGenerated(ctx context.Context, agencyID, id string) error

	// MarkExpiring/MarkExpired mantenimiento de estados por fecha (job diario).
	MarkExpiring(ctx context.Context, endBefore time.Time) (int64, error)
	MarkExpired(ctx context.Context, endBefore time.Time) (int64, error)
}
