package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when a firebase uid has no local account.
var ErrUserNotFound = errors.New("user not found")

// Roles the coordination office may assign to an account.
const (
	RoleEstudiante  = "estudiante"
	RoleDocente     = "docente"
	RoleCoordinador = "coordinador"
	RoleJefatura    = "jefatura"
)

// IsValidRole reports whether role is one of the assignable roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleEstudiante, RoleDocente, RoleCoordinador, RoleJefatura:
		return true
	}
	return false
}

// User is a provisioned account of the coordination office. The role decides
// which workflow operations the user may trigger; participant identity inside
// a proyecto is checked separately by the aggregate.
type User struct {
	FirebaseUID string    `json:"firebase_uid"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
