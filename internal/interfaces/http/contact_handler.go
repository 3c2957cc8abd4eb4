package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/application/usecase"
)

// ContactHandler maneja las peticiones HTTP para contactos (protegido).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create registra un contacto (arrendatario o propietario).
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	var in dto.CreateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), agencyID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un contacto.
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	id := c.Params("id")
	out, err := h.uc.GetByID(c.Context(), agencyID, id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List lista contactos; ?kind=renter|owner filtra por tipo.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), agencyID, c.Query("kind"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza un contacto.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	id := c.Params("id")
	var in dto.UpdateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), agencyID, id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un contacto.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), agencyID, id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
