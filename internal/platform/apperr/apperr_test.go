package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not found", NotFound("x"), KindNotFound},
		{"wrapped conflict", fmt.Errorf("ctx: %w", Conflict("slot")), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestFromStorage(t *testing.T) {
	if err := FromStorage(fmt.Errorf("scan: %w", ErrNoRows), "pet not found", ""); !Is(err, KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := FromStorage(ErrDuplicate, "", "email already registered"); !Is(err, KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if err := FromStorage(ErrForeignKey, "", ""); !Is(err, KindInvalidInput) {
		t.Fatalf("expected InvalidInput for dangling reference, got %v", err)
	}

	cause := errors.New("connection reset")
	err := FromStorage(cause, "", "")
	if !Is(err, KindInternal) {
		t.Fatalf("expected Internal, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be retained")
	}
	if MessageOf(err) != "internal error" {
		t.Fatalf("internal cause must not leak, got %q", MessageOf(err))
	}
}

func TestHTTPStatus(t *testing.T) {
	want := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindInvalidState: http.StatusBadRequest,
		KindInvalidInput: http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindInternal:     http.StatusInternalServerError,
	}
	for k, st := range want {
		if got := HTTPStatus(k); got != st {
			t.Fatalf("%s: expected %d, got %d", k, st, got)
		}
	}
}
