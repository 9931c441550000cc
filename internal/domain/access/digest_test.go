package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-core/internal/domain/access"
)

// Vector fijo: cambiarlo rompe la compatibilidad con los digests ya
// guardados en almacenes existentes.
func TestDigest_VectorConocido(t *testing.T) {
	got := access.Digest(access.DefaultAdminSecret, access.DefaultSalt)
	assert.Equal(t, "184cafd9c6621fcd150c085459326f245d356ced4e68dbbdfc1d8976", got)
}

func TestDigest_Determinista(t *testing.T) {
	a := access.Digest("secreto123", access.DefaultSalt)
	b := access.Digest("secreto123", access.DefaultSalt)
	assert.Equal(t, a, b)
	assert.Len(t, a, 56) // sha224 en hex

	c := access.Digest("secreto123", "otra-sal")
	assert.NotEqual(t, a, c)
}
