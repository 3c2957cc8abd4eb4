package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/application/dto"
	"github.com/tu-usuario/rentas-pro/internal/application/usecase"
)

// ContractHandler maneja las peticiones HTTP para contratos (protegido).
// La activación delega en el caso de uso de facturación, que genera el plan
// completo de facturas en la misma transacción.
type ContractHandler struct {
	uc       *usecase.ContractUseCase
	activate *billing.ActivateContractUseCase
	invoices *billing.InvoiceUseCase
	policies *usecase.PolicyUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *usecase.ContractUseCase, activate *billing.ActivateContractUseCase, invoices *billing.InvoiceUseCase, policies *usecase.PolicyUseCase) *ContractHandler {
	return &ContractHandler{uc: uc, activate: activate, invoices: invoices, policies: policies}
}

// Create registra un contrato en estado draft.
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), agencyID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un contrato.
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetAgencyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List lista contratos; ?status= filtra por estado.
func (h *ContractHandler) List(c *fiber.Ctx) error {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "agency_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), agencyID, c.Query("status"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update modifica un contrato no activo.
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetAgencyID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Activate activa el contrato y genera (o devuelve) sus facturas.
func (h *ContractHandler) Activate(c *fiber.Ctx) error {
	out, err := h.activate.Activate(c.Context(), GetAgencyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListInvoices lista las facturas del contrato en orden cronológico.
func (h *ContractHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.ListByContract(c.Context(), GetAgencyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListPolicies lista las pólizas del contrato.
func (h *ContractHandler) ListPolicies(c *fiber.Ctx) error {
	out, err := h.policies.ListByContract(c.Context(), GetAgencyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
