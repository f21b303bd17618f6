package auth

import "strings"

// Roles de staff reconocidos por la API.
const (
	RoleAdmin        = "ADMIN"
	RoleVeterinarian = "VETERINARIAN"
	RoleReceptionist = "RECEPTIONIST"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
