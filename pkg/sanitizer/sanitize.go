package sanitizer

import "strings"

// specialChars escapes the characters that are unsafe in request data.
// strings.Replacer scans the input once, so entities it inserts are never
// rescanned and the ampersand cannot be escaped twice within a single call.
var specialChars = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
	"\x00", "",
	`\`, "&#092;",
	"\n", "&#10;",
	"\r", "&#13;",
)

// String escapes the fixed set of special characters in s.
func String(s string) string {
	return specialChars.Replace(s)
}

// Sanitize returns a copy of v with special characters escaped.
//
// A string is escaped with String. A *Map is rebuilt entry by entry: keys
// listed in raw are copied verbatim, every other key and its value are
// sanitized recursively. The raw list applies to the current level only and
// is not passed down to nested maps. Any other value is returned unchanged.
//
// Sanitize is not idempotent: "&amp;" becomes "&amp;amp;". Sanitize raw
// input exactly once.
func Sanitize(v any, raw ...string) any {
	switch val := v.(type) {
	case string:
		return String(val)
	case *Map:
		return sanitizeMap(val, raw)
	default:
		return v
	}
}

// SanitizeInPlace stores the result of Sanitize(*v, raw...) back into *v.
func SanitizeInPlace(v *any, raw ...string) {
	if v == nil {
		return
	}
	*v = Sanitize(*v, raw...)
}

func sanitizeMap(m *Map, raw []string) *Map {
	if m == nil {
		return nil
	}

	out := NewMap(m.Len())
	for key, val := range m.All() {
		if isRaw(key, raw) {
			out.Set(key, val)
			continue
		}
		// The escaped key replaces the original one; the original text is
		// never inserted into out.
		out.Set(String(key), Sanitize(val))
	}
	return out
}

func isRaw(key string, raw []string) bool {
	for _, r := range raw {
		if r == key {
			return true
		}
	}
	return false
}
