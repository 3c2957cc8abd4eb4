package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentas-pro/internal/application/auth"
	"github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/application/usecase"
	"github.com/tu-usuario/rentas-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AgencyUC    *usecase.AgencyUseCase
	ContactUC   *usecase.ContactUseCase
	PropertyUC  *usecase.PropertyUseCase
	ContractUC  *usecase.ContractUseCase
	PolicyUC    *usecase.PolicyUseCase
	ActivateUC  *billing.ActivateContractUseCase
	InvoiceUC   *billing.InvoiceUseCase
	ReconcileUC *billing.ReconcileUseCase
	PaymentUC   *billing.PaymentUseCase
	PDFUC       *billing.InvoicePDFUseCase
	ExtractedUC *billing.ExtractedChargeUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Agencies (bootstrap, público)
	agencies := api.Group("/agencies")
	agencyHandler := NewAgencyHandler(deps.AgencyUC)
	agencies.Get("/", agencyHandler.List)
	agencies.Post("/", agencyHandler.Create)
	agencies.Get("/:id", agencyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// El contador solo consulta; admin y gestor mutan.
	writers := RequireRole(entity.RoleAdmin, entity.RoleGestor)

	// Contacts (protegido)
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", writers, contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", writers, contactHandler.Update)
	contacts.Delete("/:id", writers, contactHandler.Delete)

	// Properties (protegido)
	properties := protected.Group("/properties")
	propertyHandler := NewPropertyHandler(deps.PropertyUC)
	properties.Post("/", writers, propertyHandler.Create)
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Put("/:id", writers, propertyHandler.Update)
	properties.Delete("/:id", writers, propertyHandler.Delete)

	// Contracts (protegido)
	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC, deps.ActivateUC, deps.InvoiceUC, deps.PolicyUC)
	contracts.Post("/", writers, contractHandler.Create)
	contracts.Get("/", contractHandler.List)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", writers, contractHandler.Update)
	contracts.Post("/:id/activate", writers, contractHandler.Activate)
	contracts.Get("/:id/invoices", contractHandler.ListInvoices)
	contracts.Get("/:id/policies", contractHandler.ListPolicies)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ReconcileUC, deps.PDFUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/charges", writers, invoiceHandler.AddCharge)
	invoices.Post("/:id/reconcile", writers, invoiceHandler.Reconcile)
	invoices.Post("/:id/cancel", writers, invoiceHandler.Cancel)
	invoices.Delete("/:id", writers, invoiceHandler.Delete)
	invoices.Post("/:id/payments", writers, paymentHandler.Create)

	// Payments (protegido)
	payments := protected.Group("/payments")
	payments.Put("/:id", writers, paymentHandler.Update)
	payments.Delete("/:id", writers, paymentHandler.Delete)

	// Policies (protegido)
	policies := protected.Group("/policies")
	policyHandler := NewPolicyHandler(deps.PolicyUC)
	policies.Post("/", writers, policyHandler.Create)
	policies.Get("/:id", policyHandler.GetByID)

	// OCR (protegido)
	ocr := protected.Group("/ocr")
	ocrHandler := NewOCRHandler(deps.ExtractedUC)
	ocr.Post("/bills", writers, ocrHandler.SubmitBill)
	ocr.Get("/charges", ocrHandler.ListPending)
	ocr.Post("/charges/:id/approve", writers, ocrHandler.Approve)
	ocr.Post("/charges/:id/reject", writers, ocrHandler.Reject)
}
