package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrContractOverlap: ya existe un contrato vigente (signed/active/expiring)
	// para el mismo inmueble y arrendatario con fechas que se solapan.
	ErrContractOverlap = errors.New("contrato vigente con fechas solapadas")

	// ErrPaymentExceedsBalance: el abono supera el saldo pendiente de la factura.
	// Quien lo envuelva debe incluir el saldo calculado para mostrarlo al usuario.
	ErrPaymentExceedsBalance = errors.New("el abono excede el saldo pendiente")

	// ErrInvoiceHasPayments: la factura tiene abonos registrados y no puede eliminarse.
	ErrInvoiceHasPayments = errors.New("la factura tiene abonos registrados")
)
