package dto

import "time"

// CreateContactRequest entrada para crear un contacto (arrendatario o propietario).
type CreateContactRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=renter owner"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	DocumentID string `json:"document_id" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateContactRequest entrada parcial para actualizar un contacto.
type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID         string    `json:"id"`
	AgencyID   string    `json:"agency_id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	DocumentID string    `json:"document_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactListResponse listado paginado de contactos.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
