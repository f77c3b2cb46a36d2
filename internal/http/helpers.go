package http

import (
	"net/http"

	applog "fueltracker/internal/log"
)

// requireAdmin runs next only when the request carries the admin secret.
// Every attempt is logged with its outcome; the secret never is.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplied, provided := adminCredential(r)
		decision := s.gate.Authorize(supplied, provided)

		logger := applog.FromContext(r.Context())
		logger.InfoContext(r.Context(), "Admin access attempt",
			applog.FieldOperation, applog.OpAuthorize,
			applog.FieldAccessGrant, decision.String(),
			applog.FieldPath, r.URL.Path)

		if err := decision.Err(); err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r)
	}
}
