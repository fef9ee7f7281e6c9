package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El contexto se añade con fmt.Errorf("%w: ...", ErrX) y se compara con errors.Is.
var (
	ErrValidation       = errors.New("entrada inválida")
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrAccessDenied     = errors.New("acceso denegado")
	ErrAmbiguousTarget  = errors.New("empresa destino ambigua")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrInvalidOperation = errors.New("operación no permitida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrInactiveAccount  = errors.New("cuenta inactiva")
	ErrTokenRevoked     = errors.New("token revocado")
)

// ErrSuperUserInSubCompany regla del guard: una subempresa no puede crear sus propios superusuarios.
// Envuelve ErrInvalidOperation para que errors.Is siga funcionando.
var ErrSuperUserInSubCompany = &RuleError{
	Base: ErrInvalidOperation,
	Msg:  "Super users cannot be created for sub-companies. Assign parent company super users instead.",
}

// RuleError error de regla de negocio con mensaje propio para el cliente.
type RuleError struct {
	Base error
	Msg  string
}

func (e *RuleError) Error() string { return e.Msg }
func (e *RuleError) Unwrap() error { return e.Base }
