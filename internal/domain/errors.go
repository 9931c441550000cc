package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrValidation y ErrNotFound son condiciones esperadas que el llamador
// corrige y reintenta. ErrIntegrity indica un defecto de orden en el código
// llamador (ej. cabecera sin líneas) y aborta la operación sin escrituras
// parciales. ErrStoreUnavailable es fatal para la sesión.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrIntegrity         = errors.New("violación de integridad")
	ErrStoreUnavailable  = errors.New("almacén de datos no disponible")
	ErrAccessDenied      = errors.New("acceso denegado")
	ErrSessionTerminated = errors.New("sesión terminada por intentos fallidos")
)
