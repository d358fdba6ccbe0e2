package entity

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User representa una cuenta de acceso a la API. Las cuentas se siembran
// desde configuración (operación pequeña, sin colección persistida de usuarios).
type User struct {
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después del arranque
	Name         string
	Role         string // admin, operador
}
