package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// statusRecorder captures the status code written by the handler so the
// completion log line can carry it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger injects a request-scoped logger into the context and logs one
// line per served request with the response status.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, req.WithContext(ctx))

			reqLogger.Info().Int("status", rec.status).Msg("request served")
		})
	}
}
