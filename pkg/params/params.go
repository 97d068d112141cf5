package params

import (
	"github.com/dmitrymomot/shopreviews/pkg/sanitizer"
)

// Params reads request parameters with the shop's precedence rules:
// the submitted body first, then the query string, then the caller's default.
type Params struct {
	src    RequestSource
	escape bool
}

// Option configures Params.
type Option func(*Params)

// WithEscaping turns escaping of Escaped results on or off. Escaping is on
// by default.
func WithEscaping(escape bool) Option {
	return func(p *Params) {
		p.escape = escape
	}
}

// New creates a parameter accessor over src.
func New(src RequestSource, opts ...Option) *Params {
	p := &Params{src: src, escape: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ForSession creates an accessor for the current session. Authenticated
// administrators get their parameters unescaped.
//
// SECURITY: the admin bypass hands raw input to admin handlers. Any admin
// code that renders parameters must escape them itself.
func ForSession(src RequestSource, isAdmin bool) *Params {
	return New(src, WithEscaping(!isAdmin))
}

// Escapes reports whether Escaped sanitizes values.
func (p *Params) Escapes() bool {
	return p.escape
}

// Raw returns the unescaped value of name, or def when it was not submitted.
func (p *Params) Raw(name string, def any) any {
	if p.src != nil {
		if v, ok := p.src.Lookup(name, ScopeForm); ok {
			return v
		}
		if v, ok := p.src.Lookup(name, ScopeQuery); ok {
			return v
		}
	}
	return def
}

// Escaped returns the value of name passed through sanitizer.Sanitize.
// The default is escaped as well. Keys listed in raw are left untouched
// when the value is a map.
func (p *Params) Escaped(name string, def any, raw ...string) any {
	v := p.Raw(name, def)
	if v == nil || !p.escape {
		return v
	}
	return sanitizer.Sanitize(v, raw...)
}

// String returns the escaped string value of name. Missing parameters and
// non-string values yield def, escaped like any other value.
func (p *Params) String(name, def string) string {
	if s, ok := p.Escaped(name, def).(string); ok {
		return s
	}
	if !p.escape {
		return def
	}
	return sanitizer.String(def)
}

// Has reports whether name was submitted in either scope.
func (p *Params) Has(name string) bool {
	return p.Raw(name, nil) != nil
}
