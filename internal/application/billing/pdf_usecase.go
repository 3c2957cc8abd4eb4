package billing

import (
	"context"

	"github.com/tu-usuario/rentas-pro/internal/domain"
	"github.com/tu-usuario/rentas-pro/internal/domain/repository"
)

// InvoicePDFUseCase arma el contexto completo de una factura (agencia,
// arrendatario, contrato) y delega el render al generador de PDF.
type InvoicePDFUseCase struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	contacts  repository.ContactRepository
	agencies  repository.AgencyRepository
	generator InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	contacts repository.ContactRepository,
	agencies repository.AgencyRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoices:  invoices,
		contracts: contracts,
		contacts:  contacts,
		agencies:  agencies,
		generator: generator,
	}
}

// Generate devuelve el PDF de la factura con sus cargos y abonos vigentes.
func (uc *InvoicePDFUseCase) Generate(ctx context.Context, agencyID, invoiceID string) ([]byte, error) {
	inv, err := uc.invoices.GetByID(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	contract, err := uc.contracts.GetByID(ctx, agencyID, inv.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	renter, err := uc.contacts.GetByID(ctx, agencyID, inv.RenterContactID)
	if err != nil {
		return nil, err
	}
	if renter == nil {
		return nil, domain.ErrNotFound
	}
	agency, err := uc.agencies.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, agency, renter, contract)
}
