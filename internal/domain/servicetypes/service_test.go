package servicetypes

import (
	"context"
	"strings"
	"testing"

	"vet-clinic/internal/platform/apperr"
)

type testRepo struct {
	byID map[string]ServiceType
}

func (r *testRepo) Create(_ context.Context, st ServiceType) error {
	r.byID[st.ID] = st
	return nil
}

func (r *testRepo) Update(_ context.Context, st ServiceType) error {
	if _, ok := r.byID[st.ID]; !ok {
		return apperr.ErrNoRows
	}
	r.byID[st.ID] = st
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (ServiceType, error) {
	st, ok := r.byID[id]
	if !ok {
		return ServiceType{}, apperr.ErrNoRows
	}
	return st, nil
}

func (r *testRepo) FindByName(_ context.Context, name string) (ServiceType, error) {
	for _, st := range r.byID {
		if strings.EqualFold(st.Name, name) {
			return st, nil
		}
	}
	return ServiceType{}, apperr.ErrNoRows
}

func (r *testRepo) List(_ context.Context, _ ListFilter) ([]ServiceType, error) {
	out := make([]ServiceType, 0, len(r.byID))
	for _, st := range r.byID {
		out = append(out, st)
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type fakeAppointments map[string]int

func (f fakeAppointments) CountByServiceType(_ context.Context, id string) (int, error) {
	return f[id], nil
}

func TestCreate_UniqueNameCaseInsensitive(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]ServiceType{}}, fakeAppointments{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Name: "Vacunación", DurationMinutes: 20, Price: 25}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "VACUNACIÓN"}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "Cirugía", Price: -1}); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input for negative price, got %v", err)
	}
}

func TestDelete_GuardedByAppointments(t *testing.T) {
	appts := fakeAppointments{}
	svc := NewService(&testRepo{byID: map[string]ServiceType{}}, appts)
	ctx := context.Background()

	st, _ := svc.Create(ctx, CreateInput{Name: "Consulta general", DurationMinutes: 30})
	appts[st.ID] = 3

	if err := svc.Delete(ctx, st.ID); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	appts[st.ID] = 0
	if err := svc.Delete(ctx, st.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, st.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]ServiceType{}}, fakeAppointments{})
	ctx := context.Background()

	st, _ := svc.Create(ctx, CreateInput{Name: "Baño", DurationMinutes: 45, Price: 15})
	price := 18.5

	updated, err := svc.Update(ctx, st.ID, UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Price != price || updated.DurationMinutes != 45 || updated.Name != "Baño" {
		t.Fatalf("unexpected update result %#v", updated)
	}
}
