package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Require rejects requests without a valid admin session with 401.
// The session is available to next through FromContext.
func (s *Service) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.Current(r)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "unauthorized"
			if !errors.Is(err, ErrUnauthorized) {
				s.log.ErrorContext(r.Context(), "session lookup failed", slog.String("error", err.Error()))
				status = http.StatusInternalServerError
				msg = "internal server error"
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
