package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
)

// OCRHandler maneja la ingesta de facturas de servicios por OCR (protegido).
type OCRHandler struct {
	uc *billing.ExtractedChargeUseCase
}

// NewOCRHandler construye el handler.
func NewOCRHandler(uc *billing.ExtractedChargeUseCase) *OCRHandler {
	return &OCRHandler{uc: uc}
}

// SubmitBill recibe el PDF de una factura de servicios y crea el cargo
// extraído en estado pending.
func (h *OCRHandler) SubmitBill(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	var in dto.SubmitBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InvoiceID == "" || in.PDFBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_id y pdf_base64 son requeridos"})
	}
	out, err := h.uc.SubmitBill(c.Context(), agencyID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending lista los cargos extraídos a la espera de revisión.
func (h *OCRHandler) ListPending(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListPending(c.Context(), agencyID, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Approve convierte el cargo extraído en una línea real de la factura.
func (h *OCRHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetAgencyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Reject descarta el cargo extraído sin tocar la factura.
func (h *OCRHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.Context(), GetAgencyID(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
