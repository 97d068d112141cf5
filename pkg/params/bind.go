package params

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/shopreviews/pkg/sanitizer"
)

// AdminResolver reports whether the request belongs to an authenticated
// administrator session.
type AdminResolver func(r *http.Request) bool

// BindOption configures Bind.
type BindOption func(*bindConfig)

type bindConfig struct {
	isAdmin AdminResolver
}

// WithAdminResolver enables the admin escaping bypass for requests the
// resolver accepts.
func WithAdminResolver(fn AdminResolver) BindOption {
	return func(c *bindConfig) {
		if fn != nil {
			c.isAdmin = fn
		}
	}
}

var (
	mapType = reflect.TypeOf((*sanitizer.Map)(nil))
	anyType = reflect.TypeOf((*any)(nil)).Elem()
)

// Bind returns a binder that fills struct fields tagged `param:"name"` from
// the request, body first and query second. Values are escaped unless the
// tag carries the raw option (`param:"html,raw"`) or the request is an
// admin request.
//
// Supported field types: string, signed and unsigned integers, floats,
// bool, pointers to those, *sanitizer.Map and any.
//
// Example:
//
//	type DeleteRequest struct {
//		ReviewID string `param:"reviewId"`
//		Page     int    `param:"pgNr"`
//	}
//
//	http.HandleFunc("/delete", handler.Wrap(h.delete,
//		handler.WithBinders[handler.Context, DeleteRequest](params.Bind()),
//	))
func Bind(opts ...BindOption) func(r *http.Request, v any) error {
	cfg := &bindConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(r *http.Request, v any) error {
		src, err := FromRequest(r)
		if err != nil {
			return err
		}
		isAdmin := cfg.isAdmin != nil && cfg.isAdmin(r)
		return bindStruct(v, ForSession(src, isAdmin))
	}
}

func bindStruct(v any, p *Params) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, raw, ok := parseTag(fieldType.Tag.Get("param"))
		if !ok {
			continue
		}

		var value any
		if raw {
			value = p.Raw(name, nil)
		} else {
			value = p.Escaped(name, nil)
		}
		if value == nil {
			continue
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrInvalidValue, fieldType.Name, err)
		}
	}
	return nil
}

func parseTag(tag string) (name string, raw bool, ok bool) {
	if tag == "" || tag == "-" {
		return "", false, false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "raw" {
			raw = true
		}
	}
	return parts[0], raw, parts[0] != ""
}

func setField(field reflect.Value, value any) error {
	ft := field.Type()

	switch {
	case ft == mapType:
		m, ok := value.(*sanitizer.Map)
		if !ok {
			return fmt.Errorf("expected nested parameters, got %T", value)
		}
		field.Set(reflect.ValueOf(m))
		return nil
	case ft == anyType:
		field.Set(reflect.ValueOf(&value).Elem())
		return nil
	case ft.Kind() == reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(ft.Elem()))
		}
		return setField(field.Elem(), value)
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a single value, got %T", value)
	}

	switch ft.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(s), ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", ft.Kind())
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", s)
	}
}
