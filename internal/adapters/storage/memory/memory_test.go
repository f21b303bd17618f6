package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/apperr"
)

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestAppointmentRepo_SlotGuard(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	a := appointments.Appointment{ID: "a1", PetID: "p1", VeterinarianID: "v1", Date: day("2026-03-10"), StartTime: "10:00", Status: appointments.StatusScheduled}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	clash := a
	clash.ID = "a2"
	if err := repo.Create(ctx, clash); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// una cancelada no ocupa el slot
	cancelled := clash
	cancelled.Status = appointments.StatusCancelled
	if err := repo.Create(ctx, cancelled); err != nil {
		t.Fatalf("expected cancelled appointment to be stored, got %v", err)
	}

	taken, _ := repo.SlotTaken(ctx, "v1", day("2026-03-10"), "10:00", "")
	if !taken {
		t.Fatalf("expected slot taken")
	}
	taken, _ = repo.SlotTaken(ctx, "v1", day("2026-03-10"), "10:00", "a1")
	if taken {
		t.Fatalf("expected slot free when excluding itself")
	}

	// reactivar la cancelada sobre el slot ocupado falla
	cancelled.Status = appointments.StatusScheduled
	if err := repo.Update(ctx, cancelled); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on update, got %v", err)
	}

	if err := repo.Update(ctx, appointments.Appointment{ID: "ghost"}); !errors.Is(err, apperr.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestAppointmentRepo_ConcurrentCreatesOneWins(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, appointments.Appointment{
				ID:             string(rune('a'+i)) + "-id",
				VeterinarianID: "v1",
				Date:           day("2026-03-10"),
				StartTime:      "10:00",
				Status:         appointments.StatusScheduled,
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else if !errors.Is(err, apperr.ErrDuplicate) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one winner, got %d", ok)
	}
}

func TestAppointmentRepo_ListFiltersAndOrder(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	seed := []appointments.Appointment{
		{ID: "1", PetID: "p1", VeterinarianID: "v1", Date: day("2026-03-10"), StartTime: "09:00", Status: appointments.StatusScheduled, ServiceTypeID: "st"},
		{ID: "2", PetID: "p1", VeterinarianID: "v1", Date: day("2026-03-10"), StartTime: "11:00", Status: appointments.StatusConfirmed},
		{ID: "3", PetID: "p2", VeterinarianID: "v2", Date: day("2026-03-12"), StartTime: "08:00", Status: appointments.StatusScheduled},
		{ID: "4", PetID: "p3", VeterinarianID: "v1", Date: day("2026-03-11"), StartTime: "10:00", Status: appointments.StatusCancelled},
	}
	for _, a := range seed {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("seed %s: %v", a.ID, err)
		}
	}

	all, _ := repo.List(ctx, appointments.Filter{})
	want := []string{"3", "4", "2", "1"}
	for i, a := range all {
		if a.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], a.ID)
		}
	}

	d := day("2026-03-10")
	byDate, _ := repo.List(ctx, appointments.Filter{Date: &d})
	if len(byDate) != 2 || byDate[0].ID != "1" || byDate[1].ID != "2" {
		t.Fatalf("expected by-date ascending, got %#v", byDate)
	}

	byPets, _ := repo.List(ctx, appointments.Filter{PetIDs: []string{"p2", "p3"}})
	if len(byPets) != 2 {
		t.Fatalf("expected 2 for pet set, got %d", len(byPets))
	}

	byStatus, _ := repo.List(ctx, appointments.Filter{Status: appointments.StatusScheduled, VeterinarianID: "v1"})
	if len(byStatus) != 1 || byStatus[0].ID != "1" {
		t.Fatalf("unexpected status+vet filter %#v", byStatus)
	}

	if n, _ := repo.CountByPet(ctx, "p1"); n != 2 {
		t.Fatalf("expected 2 for p1, got %d", n)
	}
	if n, _ := repo.CountByServiceType(ctx, "st"); n != 1 {
		t.Fatalf("expected 1 for service type, got %d", n)
	}
}

func TestClientRepo_Uniqueness(t *testing.T) {
	repo := NewClientRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, clients.Client{ID: "c1", DocumentID: "123", Email: "ana@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, clients.Client{ID: "c2", DocumentID: "123"}); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected duplicate document, got %v", err)
	}
	if err := repo.Create(ctx, clients.Client{ID: "c3", DocumentID: "456", Email: "ANA@example.com"}); !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected duplicate email, got %v", err)
	}

	got, err := repo.FindByEmail(ctx, "Ana@Example.com")
	if err != nil || got.ID != "c1" {
		t.Fatalf("expected case-insensitive match, got %#v err=%v", got, err)
	}
	if _, err := repo.FindByDocument(ctx, "999"); !errors.Is(err, apperr.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestPetRepo_OwnerQueries(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	now := time.Now()

	_ = repo.Create(ctx, pets.Pet{ID: "p1", OwnerID: "o1", Active: true, CreatedAt: now})
	_ = repo.Create(ctx, pets.Pet{ID: "p2", OwnerID: "o1", Active: false, CreatedAt: now.Add(time.Second)})
	_ = repo.Create(ctx, pets.Pet{ID: "p3", OwnerID: "o2", Active: true, CreatedAt: now.Add(2 * time.Second)})

	byOwner, _ := repo.ListByOwner(ctx, "o1")
	if len(byOwner) != 2 || byOwner[0].ID != "p1" {
		t.Fatalf("unexpected owner list %#v", byOwner)
	}
	if n, _ := repo.CountByOwner(ctx, "o1"); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}

	active := true
	list, _ := repo.List(ctx, pets.ListFilter{Active: &active})
	if len(list) != 2 {
		t.Fatalf("expected 2 active pets, got %d", len(list))
	}

	if err := repo.Delete(ctx, "p2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "p2"); !errors.Is(err, apperr.ErrNoRows) {
		t.Fatalf("expected ErrNoRows after delete, got %v", err)
	}
}
