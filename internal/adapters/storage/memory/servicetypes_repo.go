package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/servicetypes"
	"vet-clinic/internal/platform/apperr"
)

type serviceTypeRepo struct {
	mu   sync.RWMutex
	byID map[string]servicetypes.ServiceType
}

func NewServiceTypeRepo() servicetypes.Repository {
	return &serviceTypeRepo{
		byID: make(map[string]servicetypes.ServiceType),
	}
}

func (r *serviceTypeRepo) nameTaken(st servicetypes.ServiceType) bool {
	for _, o := range r.byID {
		if o.ID != st.ID && strings.EqualFold(o.Name, st.Name) {
			return true
		}
	}
	return false
}

func (r *serviceTypeRepo) Create(ctx context.Context, st servicetypes.ServiceType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(st.ID) == "" {
		return errors.New("service type id required")
	}
	if _, exists := r.byID[st.ID]; exists || r.nameTaken(st) {
		return apperr.ErrDuplicate
	}
	r.byID[st.ID] = st
	return nil
}

func (r *serviceTypeRepo) Update(ctx context.Context, st servicetypes.ServiceType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[st.ID]; !exists {
		return apperr.ErrNoRows
	}
	if r.nameTaken(st) {
		return apperr.ErrDuplicate
	}
	r.byID[st.ID] = st
	return nil
}

func (r *serviceTypeRepo) GetByID(ctx context.Context, id string) (servicetypes.ServiceType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[id]
	if !ok {
		return servicetypes.ServiceType{}, apperr.ErrNoRows
	}
	return st, nil
}

func (r *serviceTypeRepo) FindByName(ctx context.Context, name string) (servicetypes.ServiceType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, st := range r.byID {
		if strings.EqualFold(st.Name, strings.TrimSpace(name)) {
			return st, nil
		}
	}
	return servicetypes.ServiceType{}, apperr.ErrNoRows
}

func (r *serviceTypeRepo) List(ctx context.Context, f servicetypes.ListFilter) ([]servicetypes.ServiceType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]servicetypes.ServiceType, 0)
	for _, st := range r.byID {
		if f.Active != nil && st.Active != *f.Active {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *serviceTypeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}
