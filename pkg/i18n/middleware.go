package i18n

import (
	"net/http"
	"strings"
)

// maxAcceptLanguageLength bounds the header handed to the matcher.
const maxAcceptLanguageLength = 4096

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	queryParam string
	cookieName string
}

// WithQueryParam sets the query parameter that selects a language
// explicitly. Empty disables it.
func WithQueryParam(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.queryParam = name }
}

// WithCookie sets the cookie that remembers a language choice. Empty
// disables it.
func WithCookie(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.cookieName = name }
}

// Middleware stores the request language in the context. The query
// parameter wins over the cookie, which wins over Accept-Language. Every
// candidate is matched against the translator's languages.
func Middleware(t *Translator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{queryParam: "lang", cookieName: "lang"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var prefs []string
			if cfg.queryParam != "" {
				if v := strings.TrimSpace(r.URL.Query().Get(cfg.queryParam)); v != "" {
					prefs = append(prefs, v)
				}
			}
			if cfg.cookieName != "" {
				if c, err := r.Cookie(cfg.cookieName); err == nil && c.Value != "" {
					prefs = append(prefs, c.Value)
				}
			}
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				if len(accept) > maxAcceptLanguageLength {
					accept = accept[:maxAcceptLanguageLength]
				}
				prefs = append(prefs, accept)
			}

			lang := t.DefaultLanguage()
			if len(prefs) > 0 {
				lang = t.Match(prefs...)
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
