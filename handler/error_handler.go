package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

// ErrorPageParams is passed to ErrorHandlerConfig.ErrorPage.
type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is passed to ErrorHandlerConfig.ErrorToast.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" or "error"
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the error for regular requests. Without it a plain
	// text body is written.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders the error for DataStar requests.
	ErrorToast func(ErrorToastParams) templ.Component

	// Translate resolves HTTPError keys into messages. Keys are shown
	// verbatim when nil.
	Translate func(ctx context.Context, key string) string

	ToastTarget string // default "#toast-container"
}

// NewErrorHandler logs the error at a level matching its status and answers
// with an error page, or with a toast patch for DataStar requests. Errors
// that are not HTTPError become 500.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := middleware.GetReqID(r.Context())

		status, key := classify(err)
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		msg := key
		if cfg.Translate != nil {
			msg = cfg.Translate(r.Context(), key)
		}

		if IsDataStar(r) && cfg.ErrorToast != nil {
			kind := "error"
			if level == slog.LevelWarn {
				kind = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: msg, Type: kind, RequestID: requestID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
			if err := resp.Render(ctx.ResponseWriter(), r); err != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(err))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), msg, status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			Message:    msg,
			StatusCode: status,
			RequestID:  requestID,
			RetryURL:   r.URL.Path,
		})
		if err := TemplWithStatus(page, status).Render(ctx.ResponseWriter(), r); err != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(err))
		}
	}
}

func classify(err error) (int, string) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Key
	}
	return ErrInternalServerError.Code, ErrInternalServerError.Key
}
