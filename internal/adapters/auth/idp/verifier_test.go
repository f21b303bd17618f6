package idp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet-clinic/internal/ports/auth"
)

func newIDP(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "staff-9", Email: "r@clinic.test", Roles: []string{"RECEPTIONIST"}})
		case "anon":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier(t *testing.T) {
	srv := newIDP(t)
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "key", Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := NewVerifier(client)
	ctx := context.Background()

	c, err := v.Verify(ctx, "good")
	if err != nil || c.UserID != "staff-9" || !c.HasRole(auth.RoleReceptionist) {
		t.Fatalf("unexpected claims %#v err=%v", c, err)
	}

	if _, err := v.Verify(ctx, "bad"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := v.Verify(ctx, "boom"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if _, err := v.Verify(ctx, "anon"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for missing user, got %v", err)
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	client, _ := NewClient(Config{BaseURL: "http://idp.local"})
	if _, err := NewVerifier(client).Verify(context.Background(), "good"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
