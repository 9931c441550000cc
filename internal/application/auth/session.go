package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
)

// DefaultMaxAttempts intentos fallidos acumulados que terminan la sesión.
const DefaultMaxAttempts = 3

// Verifier contrato mínimo que Session necesita del guard.
type Verifier interface {
	Verify(ctx context.Context, username, secret string) (*dto.Grant, error)
}

// Session envuelve al guard con el contador de intentos de una sesión
// interactiva. Al acumular maxAttempts denegaciones la sesión queda
// terminada: los intentos siguientes devuelven ErrSessionTerminated sin
// evaluar credenciales. No es un re-prompt, es un corte duro.
type Session struct {
	guard       Verifier
	maxAttempts int
	denied      int
}

// NewSession construye una sesión de verificación. maxAttempts <= 0 usa
// DefaultMaxAttempts.
func NewSession(guard Verifier, maxAttempts int) *Session {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Session{guard: guard, maxAttempts: maxAttempts}
}

// Verify delega en el guard mientras la sesión siga viva y cuenta las
// denegaciones. Un error de almacén no cuenta como intento. Tras cada
// denegación el llamador consulta Terminated para decidir si cierra.
func (s *Session) Verify(ctx context.Context, username, secret string) (*dto.Grant, error) {
	if s.Terminated() {
		return nil, domain.ErrSessionTerminated
	}
	grant, err := s.guard.Verify(ctx, username, secret)
	if errors.Is(err, domain.ErrAccessDenied) {
		s.denied++
	}
	return grant, err
}

// Terminated informa si la sesión ya agotó sus intentos.
func (s *Session) Terminated() bool {
	return s.denied >= s.maxAttempts
}

// Remaining intentos que quedan antes del corte.
func (s *Session) Remaining() int {
	if s.Terminated() {
		return 0
	}
	return s.maxAttempts - s.denied
}
