package httpx

import (
	"encoding/json"
	"net/http"

	"vet-clinic/internal/platform/apperr"

	"github.com/rs/zerolog"
)

// Result es el sobre común de todas las respuestas de la API.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, status int, msg string, data any) {
	WriteJSON(w, status, Result{
		Success:    true,
		Message:    msg,
		Data:       data,
		StatusCode: status,
	})
}

func Fail(w http.ResponseWriter, status int, msg string, kind apperr.Kind) {
	WriteJSON(w, status, Result{
		Success:    false,
		Message:    msg,
		Error:      string(kind),
		StatusCode: status,
	})
}

// Error traduce err al status HTTP correspondiente.
// Los errores internos se loguean con su causa y salen al cliente como "internal error".
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	Fail(w, apperr.HTTPStatus(kind), apperr.MessageOf(err), kind)
}

func BadRequest(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusBadRequest, msg, apperr.KindInvalidInput)
}

func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
}

// DecodeJSON decodifica el body rechazando campos desconocidos.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
