package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/httpx"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Recover reemplaza a chimw.Recoverer: loguea el stack con zerolog y responde con el sobre JSON.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				logger.Error().
					Str("request_id", chimw.GetReqID(r.Context())).
					Str("panic", fmt.Sprintf("%v", rec)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				httpx.Fail(w, http.StatusInternalServerError, "internal error", apperr.KindInternal)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
