package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic/internal/platform/apperr"
)

func TestError_MapsKindToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.NotFound("pet not found"), http.StatusNotFound, "pet not found"},
		{apperr.Conflict("slot already booked"), http.StatusConflict, "slot already booked"},
		{apperr.InvalidState("pet is inactive"), http.StatusBadRequest, "pet is inactive"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		Error(rec, req, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("expected %d, got %d", tc.status, rec.Code)
		}
		var res Result
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Success || res.Message != tc.msg || res.StatusCode != tc.status {
			t.Fatalf("unexpected envelope %#v", res)
		}
	}
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients?active=false", nil)
	v, err := QueryBool(req, "active")
	if err != nil || v == nil || *v {
		t.Fatalf("expected false, got %v err=%v", v, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/clients", nil)
	if v, _ := QueryBool(req, "active"); v != nil {
		t.Fatalf("expected nil when absent")
	}

	req = httptest.NewRequest(http.MethodGet, "/clients?active=maybe", nil)
	if _, err := QueryBool(req, "active"); err == nil {
		t.Fatalf("expected error for malformed bool")
	}
}
