package access

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultSalt sal fija histórica de los almacenes existentes. Cambiarla
// invalida todos los digests ya guardados.
const DefaultSalt = "mahalKitaPwedeBa@02251980"

// DefaultAdminSecret secreto inicial del usuario ADMIN que se siembra al
// crear un almacén nuevo, para que siempre sea accesible.
const DefaultAdminSecret = "ADMIN"

// Digest calcula hex(sha224(secret ++ salt)). Es determinista a propósito:
// el arranque del almacén necesita poder sembrar el digest conocido de
// ADMIN sin pasos interactivos.
func Digest(secret, salt string) string {
	sum := sha256.Sum224([]byte(secret + salt))
	return hex.EncodeToString(sum[:])
}
