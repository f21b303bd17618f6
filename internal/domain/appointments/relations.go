package appointments

import (
	"context"
)

// relationCache resuelve pet/owner/veterinarian/service type con lookups explícitos,
// memoizando por id dentro de una misma operación (un listado no repite lookups).
// Una relación que falla queda nil y no corta la respuesta.
type relationCache struct {
	svc *Service

	pets         map[string]*PetRef
	owners       map[string]*OwnerRef
	staff        map[string]*StaffRef
	serviceTypes map[string]*ServiceTypeRef
}

func newRelationCache(svc *Service) *relationCache {
	return &relationCache{
		svc:          svc,
		pets:         map[string]*PetRef{},
		owners:       map[string]*OwnerRef{},
		staff:        map[string]*StaffRef{},
		serviceTypes: map[string]*ServiceTypeRef{},
	}
}

func (c *relationCache) attachAll(ctx context.Context, items []Appointment) []Detail {
	out := make([]Detail, 0, len(items))
	for _, a := range items {
		out = append(out, c.attach(ctx, a))
	}
	return out
}

func (c *relationCache) attach(ctx context.Context, a Appointment) Detail {
	d := Detail{Appointment: a}

	d.Pet = c.pet(ctx, a.PetID)
	if d.Pet != nil {
		d.Owner = c.owner(ctx, d.Pet.OwnerID)
	}
	d.Veterinarian = c.vet(ctx, a.VeterinarianID)
	d.ServiceType = c.serviceType(ctx, a.ServiceTypeID)
	return d
}

func (c *relationCache) pet(ctx context.Context, id string) *PetRef {
	if id == "" || c.svc.pets == nil {
		return nil
	}
	if v, ok := c.pets[id]; ok {
		return v
	}
	var ref *PetRef
	if p, err := c.svc.pets.GetPet(ctx, id); err == nil {
		ref = &p
	} else {
		c.svc.log.Debug().Err(err).Str("pet_id", id).Msg("pet relation unresolved")
	}
	c.pets[id] = ref
	return ref
}

func (c *relationCache) owner(ctx context.Context, id string) *OwnerRef {
	if id == "" || c.svc.owners == nil {
		return nil
	}
	if v, ok := c.owners[id]; ok {
		return v
	}
	var ref *OwnerRef
	if o, err := c.svc.owners.GetOwner(ctx, id); err == nil {
		ref = &o
	} else {
		c.svc.log.Debug().Err(err).Str("owner_id", id).Msg("owner relation unresolved")
	}
	c.owners[id] = ref
	return ref
}

func (c *relationCache) vet(ctx context.Context, id string) *StaffRef {
	if id == "" || c.svc.staff == nil {
		return nil
	}
	if v, ok := c.staff[id]; ok {
		return v
	}
	var ref *StaffRef
	if st, err := c.svc.staff.GetStaff(ctx, id); err == nil {
		ref = &st
	} else {
		c.svc.log.Debug().Err(err).Str("veterinarian_id", id).Msg("veterinarian relation unresolved")
	}
	c.staff[id] = ref
	return ref
}

func (c *relationCache) serviceType(ctx context.Context, id string) *ServiceTypeRef {
	if id == "" || c.svc.serviceTypes == nil {
		return nil
	}
	if v, ok := c.serviceTypes[id]; ok {
		return v
	}
	var ref *ServiceTypeRef
	if st, err := c.svc.serviceTypes.GetServiceType(ctx, id); err == nil {
		ref = &st
	} else {
		c.svc.log.Debug().Err(err).Str("service_type_id", id).Msg("service type relation unresolved")
	}
	c.serviceTypes[id] = ref
	return ref
}
