package params

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/shopreviews/pkg/sanitizer"
)

// DefaultMaxMemory bounds the in-memory part of multipart bodies (10MB).
const DefaultMaxMemory = 10 << 20

// Scope names where a request parameter was submitted.
type Scope int

const (
	// ScopeForm is the submitted request body.
	ScopeForm Scope = iota
	// ScopeQuery is the URL query string.
	ScopeQuery
)

func (s Scope) String() string {
	switch s {
	case ScopeForm:
		return "form"
	case ScopeQuery:
		return "query"
	default:
		return "scope(" + strconv.Itoa(int(s)) + ")"
	}
}

// RequestSource exposes submitted parameters without touching global state.
// Lookup returns a string, a *sanitizer.Map for bracketed names, or false
// when name is absent from scope.
type RequestSource interface {
	Lookup(name string, scope Scope) (any, bool)
}

// Values is a RequestSource over already parsed form and query trees.
type Values struct {
	form  *sanitizer.Map
	query *sanitizer.Map
}

// NewValues wraps parsed trees. Nil trees behave as empty.
func NewValues(form, query *sanitizer.Map) *Values {
	return &Values{form: form, query: query}
}

// Lookup implements RequestSource.
func (v *Values) Lookup(name string, scope Scope) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch scope {
	case ScopeForm:
		return v.form.Get(name)
	case ScopeQuery:
		return v.query.Get(name)
	default:
		return nil, false
	}
}

// Form returns the parsed body tree.
func (v *Values) Form() *sanitizer.Map { return v.form }

// Query returns the parsed query tree.
func (v *Values) Query() *sanitizer.Map { return v.query }

// FromRequest parses the query string and, for POST, PUT and PATCH requests,
// the urlencoded or multipart body. Parameter order is preserved for the
// query string and urlencoded bodies. The body of an urlencoded request is
// restored so later readers still see it.
func FromRequest(r *http.Request) (*Values, error) {
	query, err := ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, errors.Join(ErrInvalidQuery, err)
	}

	form := sanitizer.NewMap(0)
	if hasBody(r) {
		form, err = parseBody(r)
		if err != nil {
			return nil, err
		}
	}

	return NewValues(form, query), nil
}

func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func parseBody(r *http.Request) (*sanitizer.Map, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return sanitizer.NewMap(0), nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errors.Join(ErrInvalidForm, err)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxMemory+1))
		if err != nil {
			return nil, errors.Join(ErrInvalidForm, err)
		}
		if len(body) > DefaultMaxMemory {
			return nil, ErrBodyTooLarge
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		form, err := ParseQuery(string(body))
		if err != nil {
			return nil, errors.Join(ErrInvalidForm, err)
		}
		return form, nil

	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, errors.Join(ErrInvalidForm, err)
		}
		form := sanitizer.NewMap(0)
		if r.MultipartForm == nil {
			return form, nil
		}
		// multipart values arrive unordered; sort for stable iteration.
		names := make([]string, 0, len(r.MultipartForm.Value))
		for name := range r.MultipartForm.Value {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			for _, value := range r.MultipartForm.Value[name] {
				insert(form, name, value)
			}
		}
		return form, nil

	default:
		// Other bodies (JSON, binary) carry no form parameters.
		return sanitizer.NewMap(0), nil
	}
}

// ParseQuery decodes an urlencoded string into an ordered tree.
//
// Bracketed names nest: "a[b]=1" yields {a: {b: "1"}} and "tags[]=x&tags[]=y"
// yields {tags: {"0": "x", "1": "y"}}. A repeated plain name keeps its last
// value. Pairs with an empty name are skipped.
func ParseQuery(raw string) (*sanitizer.Map, error) {
	out := sanitizer.NewMap(0)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(name)
		if err != nil {
			return nil, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		insert(out, name, value)
	}
	return out, nil
}

// insert places value into root following the bracket segments of name.
func insert(root *sanitizer.Map, name, value string) {
	base, segments := splitName(name)
	if len(segments) == 0 {
		root.Set(base, value)
		return
	}

	current := root
	key := base
	for _, seg := range segments {
		child, ok := current.Get(key)
		next, isMap := child.(*sanitizer.Map)
		if !ok || !isMap {
			next = sanitizer.NewMap(0)
			current.Set(key, next)
		}
		current = next
		key = seg
		if key == "" {
			key = strconv.Itoa(current.Len())
		}
	}
	current.Set(key, value)
}

// splitName separates "a[b][c]" into "a" and ["b", "c"]. Names with
// unbalanced brackets are returned whole.
func splitName(name string) (string, []string) {
	open := strings.IndexByte(name, '[')
	if open <= 0 {
		return name, nil
	}

	base := name[:open]
	rest := name[open:]
	var segments []string
	for rest != "" {
		if rest[0] != '[' {
			return name, nil
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return name, nil
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return base, segments
}
