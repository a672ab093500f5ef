package entity

import "time"

// Papéis válidos para User.
const (
	RoleDono        = "dono"
	RoleAdmin       = "admin"
	RoleFuncionario = "funcionario"
)

// ValidRole informa se o papel é conhecido.
func ValidRole(r string) bool {
	return r == RoleDono || r == RoleAdmin || r == RoleFuncionario
}

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // dono, admin, funcionario
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
