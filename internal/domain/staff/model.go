package staff

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleVeterinarian Role = "VETERINARIAN"
	RoleReceptionist Role = "RECEPTIONIST"
)

// ParseRole es case-insensitive.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleVeterinarian, RoleReceptionist:
		return r, true
	default:
		return "", false
	}
}

// Account es un usuario interno de la clínica. Los veterinarios atienden citas.
type Account struct {
	ID       string
	FullName string
	Email    string
	Role     Role

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Role   Role // "" = todos
	Active *bool
}
