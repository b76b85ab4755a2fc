package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleCajero    = "cajero"
	RoleBodeguero = "bodeguero"
)

// User usuario del sistema. El hash de contraseña se verifica también al cerrar
// caja (re-autenticación antes de la conciliación).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol elevado.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
