package servicetypes

import "time"

// ServiceType es un tipo de atención ofrecida (consulta, vacunación, cirugía...).
type ServiceType struct {
	ID              string
	Name            string
	Description     string
	DurationMinutes int
	Price           float64

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Active *bool
}
