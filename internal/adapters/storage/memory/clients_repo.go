package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/platform/apperr"
)

type clientRepo struct {
	mu   sync.RWMutex
	byID map[string]clients.Client
}

func NewClientRepo() clients.Repository {
	return &clientRepo{
		byID: make(map[string]clients.Client),
	}
}

// uniqueClash replica los índices únicos de postgres (document_id, lower(email)).
func (r *clientRepo) uniqueClash(c clients.Client) bool {
	for _, o := range r.byID {
		if o.ID == c.ID {
			continue
		}
		if o.DocumentID == c.DocumentID {
			return true
		}
		if c.Email != "" && strings.EqualFold(o.Email, c.Email) {
			return true
		}
	}
	return false
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("client id required")
	}
	if _, exists := r.byID[c.ID]; exists || r.uniqueClash(c) {
		return apperr.ErrDuplicate
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return apperr.ErrNoRows
	}
	if r.uniqueClash(c) {
		return apperr.ErrDuplicate
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, apperr.ErrNoRows
	}
	return c, nil
}

func (r *clientRepo) FindByDocument(ctx context.Context, documentID string) (clients.Client, error) {
	return r.find(func(c clients.Client) bool { return c.DocumentID == documentID })
}

func (r *clientRepo) FindByEmail(ctx context.Context, email string) (clients.Client, error) {
	return r.find(func(c clients.Client) bool { return c.Email != "" && strings.EqualFold(c.Email, email) })
}

func (r *clientRepo) find(match func(clients.Client) bool) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if match(c) {
			return c, nil
		}
	}
	return clients.Client{}, apperr.ErrNoRows
}

func (r *clientRepo) List(ctx context.Context, f clients.ListFilter) ([]clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clients.Client, 0)
	for _, c := range r.byID {
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}
