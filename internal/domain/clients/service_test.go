package clients

import (
	"context"
	"testing"
	"time"

	"vet-clinic/internal/platform/apperr"
)

type testRepo struct {
	byID map[string]Client
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Client{}}
}

func (r *testRepo) Create(_ context.Context, c Client) error {
	if _, ok := r.byID[c.ID]; ok {
		return apperr.ErrDuplicate
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(_ context.Context, c Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return apperr.ErrNoRows
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return Client{}, apperr.ErrNoRows
	}
	return c, nil
}

func (r *testRepo) FindByDocument(_ context.Context, doc string) (Client, error) {
	for _, c := range r.byID {
		if c.DocumentID == doc {
			return c, nil
		}
	}
	return Client{}, apperr.ErrNoRows
}

func (r *testRepo) FindByEmail(_ context.Context, email string) (Client, error) {
	for _, c := range r.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return Client{}, apperr.ErrNoRows
}

func (r *testRepo) List(_ context.Context, f ListFilter) ([]Client, error) {
	out := make([]Client, 0)
	for _, c := range r.byID {
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		out = append(out, c)
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

type fakePets map[string]int

func (f fakePets) CountByOwner(_ context.Context, ownerID string) (int, error) {
	return f[ownerID], nil
}

func newTestService(pets fakePets) *Service {
	svc := NewService(newTestRepo(), pets)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestCreate_DefaultsActiveAndNormalizesEmail(t *testing.T) {
	svc := newTestService(fakePets{})

	c, err := svc.Create(context.Background(), CreateInput{
		FullName:   "  Ana Pérez ",
		DocumentID: "12345678",
		Email:      " Ana@Example.COM ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Active || c.Email != "ana@example.com" || c.FullName != "Ana Pérez" || c.ID == "" {
		t.Fatalf("unexpected client %#v", c)
	}
}

func TestCreate_RejectsDuplicates(t *testing.T) {
	svc := newTestService(fakePets{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{FullName: "Ana", DocumentID: "1", Email: "ana@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(ctx, CreateInput{FullName: "Otra", DocumentID: "1"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on document, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{FullName: "Otra", DocumentID: "2", Email: "ANA@example.com"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on email, got %v", err)
	}
}

func TestCreate_ValidatesInput(t *testing.T) {
	svc := newTestService(fakePets{})

	cases := []CreateInput{
		{DocumentID: "1"},
		{FullName: "Ana"},
		{FullName: "Ana", DocumentID: "1", Email: "not-an-email"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Fatalf("expected invalid input for %#v, got %v", in, err)
		}
	}
}

func TestUpdate_AllowsKeepingOwnDocument(t *testing.T) {
	svc := newTestService(fakePets{})
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{FullName: "Ana", DocumentID: "1"})
	phone := "555-1234"
	doc := "1"

	updated, err := svc.Update(ctx, c.ID, UpdateInput{Phone: &phone, DocumentID: &doc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("expected phone to be updated, got %q", updated.Phone)
	}
}

func TestActivateDeactivate(t *testing.T) {
	svc := newTestService(fakePets{})
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{FullName: "Ana", DocumentID: "1"})

	off, err := svc.Deactivate(ctx, c.ID)
	if err != nil || off.Active {
		t.Fatalf("expected inactive client, got %#v err=%v", off, err)
	}

	inactive := false
	list, _ := svc.List(ctx, ListFilter{Active: &inactive})
	if len(list) != 1 {
		t.Fatalf("expected 1 inactive client, got %d", len(list))
	}

	on, err := svc.Activate(ctx, c.ID)
	if err != nil || !on.Active {
		t.Fatalf("expected active client, got %#v err=%v", on, err)
	}

	if _, err := svc.Activate(ctx, "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_GuardedByPets(t *testing.T) {
	pets := fakePets{}
	svc := newTestService(pets)
	ctx := context.Background()

	c, _ := svc.Create(ctx, CreateInput{FullName: "Ana", DocumentID: "1"})
	pets[c.ID] = 2

	if err := svc.Delete(ctx, c.ID); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state while client has pets, got %v", err)
	}

	pets[c.ID] = 0
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(ctx, c.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
