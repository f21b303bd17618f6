package pets

import (
	"context"

	"vet-clinic/internal/platform/apperr"
)

// IDsByOwner devuelve los ids de las mascotas de un dueño (activas o no).
// Lo consume appointments vía adapter para evitar ciclos de imports (pets <-> appointments).
func (s *Service) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list pets by owner", err)
	}
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
