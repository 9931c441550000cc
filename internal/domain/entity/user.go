package entity

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleStandard = "STANDARD"
)

// User usuario del sistema. Digest es el hash de una vía del secreto con la
// sal fija; el secreto en claro nunca se persiste.
type User struct {
	ID       int64
	Username string
	Digest   string
	Role     string
}

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStandard
}
