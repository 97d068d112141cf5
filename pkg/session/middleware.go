package session

import (
	"net/http"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

// Middleware attaches the request's session to the context, starting one if
// needed, and persists it after the handler when it was modified.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, err := m.Ensure(ctx, w, r)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to start session", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))

		if session.Modified() {
			if err := m.Save(ctx, session); err != nil {
				m.logger.ErrorContext(ctx, "failed to save session", logger.Error(err))
			}
		}
	})
}
