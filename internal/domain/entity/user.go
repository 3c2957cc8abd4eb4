package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleGestor   = "gestor"
	RoleContador = "contador"
)

// User representa un usuario del sistema (pertenece a una Agency).
type User struct {
	ID           string
	AgencyID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gestor, contador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
