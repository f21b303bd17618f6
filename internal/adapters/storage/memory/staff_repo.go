package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/staff"
	"vet-clinic/internal/platform/apperr"
)

type staffRepo struct {
	mu   sync.RWMutex
	byID map[string]staff.Account
}

func NewStaffRepo() staff.Repository {
	return &staffRepo{
		byID: make(map[string]staff.Account),
	}
}

func (r *staffRepo) emailTaken(a staff.Account) bool {
	for _, o := range r.byID {
		if o.ID != a.ID && strings.EqualFold(o.Email, a.Email) {
			return true
		}
	}
	return false
}

func (r *staffRepo) Create(ctx context.Context, a staff.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("staff id required")
	}
	if _, exists := r.byID[a.ID]; exists || r.emailTaken(a) {
		return apperr.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *staffRepo) Update(ctx context.Context, a staff.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNoRows
	}
	if r.emailTaken(a) {
		return apperr.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (staff.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return staff.Account{}, apperr.ErrNoRows
	}
	return a, nil
}

func (r *staffRepo) FindByEmail(ctx context.Context, email string) (staff.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return staff.Account{}, apperr.ErrNoRows
}

func (r *staffRepo) List(ctx context.Context, f staff.ListFilter) ([]staff.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]staff.Account, 0)
	for _, a := range r.byID {
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.Active != nil && a.Active != *f.Active {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}
