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
	ErrInvalidPassword    = errors.New("contraseña incorrecta")
	ErrNoAdminRole        = errors.New("se requiere el rol admin")
	ErrInvalidStage       = errors.New("etapa de producción inválida")

	// ErrNoFieldsToUpdate indica un patch vacío: error del cliente, distinto de "0 filas afectadas".
	ErrNoFieldsToUpdate = errors.New("no hay campos para actualizar")
)
