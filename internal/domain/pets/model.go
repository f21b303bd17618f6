package pets

import "time"

// Species es texto libre normalizado a minúsculas; estas son las más comunes.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func ParseSex(s string) (Sex, bool) {
	switch Sex(s) {
	case "":
		return SexUnknown, true
	case SexMale, SexFemale, SexUnknown:
		return Sex(s), true
	default:
		return "", false
	}
}

// Pet representa el perfil básico de una mascota registrada en la clínica.
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	Microchip string

	Notes string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner es lo mínimo que pets necesita saber del cliente dueño.
type Owner struct {
	ID     string
	Active bool
}

type ListFilter struct {
	Active *bool
}
