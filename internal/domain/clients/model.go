package clients

import "time"

// Client es el dueño (tutor) de una o más mascotas.
type Client struct {
	ID         string
	FullName   string
	DocumentID string
	Email      string
	Phone      string
	Address    string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter: Active nil = todos.
type ListFilter struct {
	Active *bool
}
