package auth

import (
	"context"
	"crypto/subtle"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/access"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// AccessGuard verifica pares usuario/secreto contra los digests salados
// almacenados. Es sin estado por llamada; el conteo de intentos vive en
// Session, del lado del llamador.
type AccessGuard struct {
	userRepo repository.UserRepository
	salt     string
}

// NewAccessGuard construye el guard con la sal fija del almacén.
func NewAccessGuard(userRepo repository.UserRepository, salt string) *AccessGuard {
	return &AccessGuard{userRepo: userRepo, salt: salt}
}

// Verify concede acceso si el usuario existe y el digest del secreto
// coincide con el almacenado. Usuario inexistente y secreto incorrecto
// devuelven exactamente el mismo ErrAccessDenied: ninguna señal distingue
// los dos casos.
func (g *AccessGuard) Verify(ctx context.Context, username, secret string) (*dto.Grant, error) {
	digest := access.Digest(secret, g.salt)
	user, err := g.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Comparación de todos modos, para no delatar la ausencia por tiempo.
		subtle.ConstantTimeCompare([]byte(digest), []byte(digest))
		return nil, domain.ErrAccessDenied
	}
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.Digest)) != 1 {
		return nil, domain.ErrAccessDenied
	}
	return &dto.Grant{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
