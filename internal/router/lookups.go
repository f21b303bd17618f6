package router

import (
	"context"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/servicetypes"
	"vet-clinic/internal/domain/staff"
)

// Adapters entre módulos. Cada dominio define la interfaz que necesita
// y acá se resuelve con el service del otro módulo.

type petOwnerLookup struct{ clients *clients.Service }

func (l petOwnerLookup) GetOwner(ctx context.Context, id string) (pets.Owner, error) {
	c, err := l.clients.GetByID(ctx, id)
	if err != nil {
		return pets.Owner{}, err
	}
	return pets.Owner{ID: c.ID, Active: c.Active}, nil
}

type appointmentPetLookup struct{ pets *pets.Service }

func (l appointmentPetLookup) GetPet(ctx context.Context, id string) (appointments.PetRef, error) {
	p, err := l.pets.GetByID(ctx, id)
	if err != nil {
		return appointments.PetRef{}, err
	}
	return appointments.PetRef{
		ID:      p.ID,
		Name:    p.Name,
		Species: string(p.Species),
		OwnerID: p.OwnerID,
		Active:  p.Active,
	}, nil
}

func (l appointmentPetLookup) PetIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	return l.pets.IDsByOwner(ctx, ownerID)
}

type appointmentOwnerLookup struct{ clients *clients.Service }

func (l appointmentOwnerLookup) GetOwner(ctx context.Context, id string) (appointments.OwnerRef, error) {
	c, err := l.clients.GetByID(ctx, id)
	if err != nil {
		return appointments.OwnerRef{}, err
	}
	return appointments.OwnerRef{
		ID:       c.ID,
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Active:   c.Active,
	}, nil
}

type appointmentStaffLookup struct{ staff *staff.Service }

func (l appointmentStaffLookup) GetStaff(ctx context.Context, id string) (appointments.StaffRef, error) {
	a, err := l.staff.GetByID(ctx, id)
	if err != nil {
		return appointments.StaffRef{}, err
	}
	return appointments.StaffRef{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Role:     string(a.Role),
		Active:   a.Active,
	}, nil
}

type appointmentServiceTypeLookup struct{ types *servicetypes.Service }

func (l appointmentServiceTypeLookup) GetServiceType(ctx context.Context, id string) (appointments.ServiceTypeRef, error) {
	st, err := l.types.GetByID(ctx, id)
	if err != nil {
		return appointments.ServiceTypeRef{}, err
	}
	return appointments.ServiceTypeRef{
		ID:              st.ID,
		Name:            st.Name,
		DurationMinutes: st.DurationMinutes,
		Price:           st.Price,
	}, nil
}
