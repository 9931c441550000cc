package dto

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Username string
	Secret   string
	Role     string
}

// UpdateUserRequest cambio de secreto y/o rol de un usuario existente.
// El username es inmutable.
type UpdateUserRequest struct {
	Secret string
	Role   string
}

// UserResponse usuario expuesto a la capa de interfaz; nunca incluye el
// digest.
type UserResponse struct {
	ID       int64
	Username string
	Role     string
}

// Grant resultado de una verificación de credenciales exitosa.
type Grant struct {
	UserID   int64
	Username string
	Role     string
}
