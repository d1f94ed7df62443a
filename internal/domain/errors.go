package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrTransactionNotFound = errors.New("transacción no encontrada")
	ErrAgentNotFound       = errors.New("agente no encontrado")
	ErrPhoneAlreadyExists  = errors.New("el teléfono ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidSelection    = errors.New("selección requerida ausente")
	ErrInvalidCode         = errors.New("código de confirmación incorrecto")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrPermissionDenied    = errors.New("transición no permitida para este usuario")
	ErrSellerNotVerified   = errors.New("el vendedor no está verificado")
	ErrStaleWrite          = errors.New("la transacción cambió desde la última lectura")
)

// PermissionDeniedMessage es el mensaje uniforme que ve el usuario cuando el
// guard rechaza una acción. Se expone tal cual a la capa de presentación.
const PermissionDeniedMessage = "Action not allowed — waiting for the previous step to be completed."
