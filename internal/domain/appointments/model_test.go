package appointments

import "testing"

func TestParseStatus_AliasesAndCase(t *testing.T) {
	cases := map[string]Status{
		"scheduled":   StatusScheduled,
		"PROGRAMADA":  StatusScheduled,
		" confirmada": StatusConfirmed,
		"en_curso":    StatusInProgress,
		"Completed":   StatusCompleted,
		"CANCELADA":   StatusCancelled,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Fatalf("%q: expected %s, got %s ok=%v", in, want, got, ok)
		}
	}
	if _, ok := ParseStatus("BOGUS"); ok {
		t.Fatalf("expected BOGUS to be rejected")
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := [][2]Status{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tr := range allowed {
		if !tr[0].CanTransitionTo(tr[1]) {
			t.Fatalf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]Status{
		{StatusScheduled, StatusInProgress},
		{StatusScheduled, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusCancelled},
	}
	for _, tr := range denied {
		if tr[0].CanTransitionTo(tr[1]) {
			t.Fatalf("expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Fatalf("unexpected terminal states")
	}
}

func TestParseClockAndDate(t *testing.T) {
	for in, want := range map[string]string{"9:05": "09:05", "14:30": "14:30", "08:00:00": "08:00"} {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s err=%v", in, want, got, err)
		}
	}
	if _, err := ParseClock("noon"); err == nil {
		t.Fatalf("expected error for malformed time")
	}

	d, err := ParseDate("2026-03-10")
	if err != nil || d.Hour() != 0 || d.Location().String() != "UTC" {
		t.Fatalf("expected midnight UTC, got %v err=%v", d, err)
	}
	if _, err := ParseDate("2026-13-01"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}
