package auth_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/access"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), access.DefaultSalt, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestVerify_AdminDeFabrica(t *testing.T) {
	db := openTestStore(t)
	guard := auth.NewAccessGuard(sqlite.NewUserRepository(db), access.DefaultSalt)

	grant, err := guard.Verify(context.Background(), "ADMIN", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", grant.Username)
	assert.Equal(t, entity.RoleAdmin, grant.Role)
}

// Usuario inexistente y secreto incorrecto deben ser indistinguibles.
func TestVerify_DenegacionUniforme(t *testing.T) {
	db := openTestStore(t)
	guard := auth.NewAccessGuard(sqlite.NewUserRepository(db), access.DefaultSalt)
	ctx := context.Background()

	_, errWrongSecret := guard.Verify(ctx, "ADMIN", "incorrecto")
	_, errUnknownUser := guard.Verify(ctx, "fantasma", "incorrecto")

	assert.ErrorIs(t, errWrongSecret, domain.ErrAccessDenied)
	assert.ErrorIs(t, errUnknownUser, domain.ErrAccessDenied)
	assert.Equal(t, errWrongSecret.Error(), errUnknownUser.Error())
}

// countingVerifier cuenta las evaluaciones reales de credenciales.
type countingVerifier struct {
	calls int
}

func (v *countingVerifier) Verify(_ context.Context, _, _ string) (*dto.Grant, error) {
	v.calls++
	return nil, domain.ErrAccessDenied
}

func TestSession_CorteDuroTrasTresDenegaciones(t *testing.T) {
	guard := &countingVerifier{}
	session := auth.NewSession(guard, 0) // 0 usa el máximo por defecto
	ctx := context.Background()

	for i := 0; i < auth.DefaultMaxAttempts; i++ {
		_, err := session.Verify(ctx, "ADMIN", "incorrecto")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	}
	assert.True(t, session.Terminated())
	assert.Equal(t, 0, session.Remaining())

	// El cuarto intento ni siquiera evalúa credenciales.
	_, err := session.Verify(ctx, "ADMIN", "ADMIN")
	assert.ErrorIs(t, err, domain.ErrSessionTerminated)
	assert.Equal(t, auth.DefaultMaxAttempts, guard.calls)
}

func TestSession_ExitoNoConsumeIntentos(t *testing.T) {
	db := openTestStore(t)
	guard := auth.NewAccessGuard(sqlite.NewUserRepository(db), access.DefaultSalt)
	session := auth.NewSession(guard, 3)
	ctx := context.Background()

	_, err := session.Verify(ctx, "ADMIN", "incorrecto")
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Equal(t, 2, session.Remaining())

	grant, err := session.Verify(ctx, "ADMIN", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, grant.Role)
	assert.Equal(t, 2, session.Remaining(), "un acceso concedido no descuenta intentos")
	assert.False(t, session.Terminated())
}

func TestUserUseCase_AltaYVerificacion(t *testing.T) {
	db := openTestStore(t)
	userRepo := sqlite.NewUserRepository(db)
	users := auth.NewUserUseCase(userRepo, access.DefaultSalt)
	guard := auth.NewAccessGuard(userRepo, access.DefaultSalt)
	ctx := context.Background()

	created, err := users.Create(ctx, dto.CreateUserRequest{
		Username: "maria", Secret: "secreto123", Role: entity.RoleStandard,
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", created.Username)

	grant, err := guard.Verify(ctx, "maria", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStandard, grant.Role)
}

func TestUserUseCase_UpdateCambiaSecreto(t *testing.T) {
	db := openTestStore(t)
	userRepo := sqlite.NewUserRepository(db)
	users := auth.NewUserUseCase(userRepo, access.DefaultSalt)
	guard := auth.NewAccessGuard(userRepo, access.DefaultSalt)
	ctx := context.Background()

	created, err := users.Create(ctx, dto.CreateUserRequest{
		Username: "maria", Secret: "viejo", Role: entity.RoleStandard,
	})
	require.NoError(t, err)

	_, err = users.Update(ctx, created.ID, dto.UpdateUserRequest{Secret: "nuevo", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = guard.Verify(ctx, "maria", "viejo")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	grant, err := guard.Verify(ctx, "maria", "nuevo")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, grant.Role)
}

func TestUserUseCase_Validaciones(t *testing.T) {
	db := openTestStore(t)
	users := auth.NewUserUseCase(sqlite.NewUserRepository(db), access.DefaultSalt)
	ctx := context.Background()

	_, err := users.Create(ctx, dto.CreateUserRequest{Username: "", Secret: "x", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = users.Create(ctx, dto.CreateUserRequest{Username: "maria", Secret: "", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = users.Create(ctx, dto.CreateUserRequest{Username: "maria", Secret: "x", Role: "SUPERUSER"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = users.Update(ctx, 99, dto.UpdateUserRequest{Secret: "x", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_Duplicado(t *testing.T) {
	db := openTestStore(t)
	users := auth.NewUserUseCase(sqlite.NewUserRepository(db), access.DefaultSalt)
	ctx := context.Background()

	_, err := users.Create(ctx, dto.CreateUserRequest{Username: "maria", Secret: "x", Role: entity.RoleStandard})
	require.NoError(t, err)

	_, err = users.Create(ctx, dto.CreateUserRequest{Username: "maria", Secret: "y", Role: entity.RoleStandard})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUseCase_DeleteYList(t *testing.T) {
	db := openTestStore(t)
	users := auth.NewUserUseCase(sqlite.NewUserRepository(db), access.DefaultSalt)
	ctx := context.Background()

	created, err := users.Create(ctx, dto.CreateUserRequest{Username: "maria", Secret: "x", Role: entity.RoleStandard})
	require.NoError(t, err)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2) // ADMIN sembrado + maria

	require.NoError(t, users.Delete(ctx, created.ID))
	assert.ErrorIs(t, users.Delete(ctx, created.ID), domain.ErrNotFound)

	list, err = users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ADMIN", list[0].Username)
}
