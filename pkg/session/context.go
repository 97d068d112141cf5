package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// UserIDFromContext returns the logged-in customer, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	session, ok := FromContext(ctx)
	if !ok || !session.IsAuthenticated() {
		return "", false
	}
	return session.UserID, true
}

// IsAdmin reports whether the request belongs to an administrator session.
func IsAdmin(ctx context.Context) bool {
	session, ok := FromContext(ctx)
	return ok && session.IsAdmin()
}

// LogExtractor adds the logged-in user to log records.
// Pass it to logger.WithContextExtractors.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.UserID(userID), true
}
