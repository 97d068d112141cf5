package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopreviews/pkg/sanitizer"
)

type richObject struct {
	Note string
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escapes every special character",
			input:    "&\\o<x>i\"'d\x00",
			expected: "&amp;&#092;o&lt;x&gt;i&quot;&#039;d",
		},
		{
			name:     "carriage return",
			input:    "text\r",
			expected: "text&#13;",
		},
		{
			name:     "line feed",
			input:    "text\n",
			expected: "text&#10;",
		},
		{
			name:     "crlf keeps order",
			input:    "text\r\n",
			expected: "text&#13;&#10;",
		},
		{
			name:     "lfcr keeps order",
			input:    "text\n\r",
			expected: "text&#10;&#13;",
		},
		{
			name:     "removes nul bytes",
			input:    "a\x00b\x00",
			expected: "ab",
		},
		{
			name:     "leaves safe text alone",
			input:    "plain review text, 5/5 stars!",
			expected: "plain review text, 5/5 stars!",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "multibyte text",
			input:    "Größe <ü>",
			expected: "Größe &lt;ü&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.String(tt.input))
			assert.Equal(t, tt.expected, sanitizer.Sanitize(tt.input))
		})
	}
}

func TestSanitize_OpaqueValues(t *testing.T) {
	t.Parallel()

	obj := &richObject{Note: "<b>not touched</b>"}
	plain := map[string]any{"k": "<v>"}

	tests := []struct {
		name  string
		input any
	}{
		{name: "pointer to struct", input: obj},
		{name: "integer", input: 42},
		{name: "float", input: 4.5},
		{name: "bool", input: true},
		{name: "nil", input: nil},
		{name: "byte slice", input: []byte("<x>")},
		{name: "plain go map", input: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.input, sanitizer.Sanitize(tt.input))
		})
	}

	t.Run("returns the same pointer", func(t *testing.T) {
		t.Parallel()
		got := sanitizer.Sanitize(obj)
		assert.Same(t, obj, got)
		assert.Equal(t, "<b>not touched</b>", obj.Note)
	})
}

func TestSanitize_Map(t *testing.T) {
	t.Parallel()

	t.Run("escapes values", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(sanitizer.P("0", "&\\o<x>i\"'d\x00"))
		out := sanitizer.Sanitize(in).(*sanitizer.Map)

		v, ok := out.Get("0")
		require.True(t, ok)
		assert.Equal(t, "&amp;&#092;o&lt;x&gt;i&quot;&#039;d", v)
	})

	t.Run("escapes keys and drops the original key", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(sanitizer.P("asd&", "a%&"))
		out := sanitizer.Sanitize(in).(*sanitizer.Map)

		assert.Equal(t, []string{"asd&amp;"}, out.Keys())
		assert.False(t, out.Has("asd&"))
		v, _ := out.Get("asd&amp;")
		assert.Equal(t, "a%&amp;", v)
	})

	t.Run("raw keys are copied verbatim", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(
			sanitizer.P("first", "first char &"),
			sanitizer.P("second", "second char &"),
			sanitizer.P("third", "third char &"),
		)
		out := sanitizer.Sanitize(in, "first", "third").(*sanitizer.Map)

		assert.Equal(t, []string{"first", "second", "third"}, out.Keys())
		first, _ := out.Get("first")
		second, _ := out.Get("second")
		third, _ := out.Get("third")
		assert.Equal(t, "first char &", first)
		assert.Equal(t, "second char &amp;", second)
		assert.Equal(t, "third char &", third)
	})

	t.Run("raw key with special characters keeps key and nested value", func(t *testing.T) {
		t.Parallel()

		nested := sanitizer.MapOf(sanitizer.P("<k>", "<v>"))
		in := sanitizer.MapOf(sanitizer.P("<raw>", nested))
		out := sanitizer.Sanitize(in, "<raw>").(*sanitizer.Map)

		v, ok := out.Get("<raw>")
		require.True(t, ok)
		assert.Same(t, nested, v)
	})

	t.Run("raw keys do not propagate into nested maps", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(
			sanitizer.P("outer", sanitizer.MapOf(sanitizer.P("html", "<p>"))),
			sanitizer.P("html", "<p>"),
		)
		out := sanitizer.Sanitize(in, "html").(*sanitizer.Map)

		top, _ := out.Get("html")
		assert.Equal(t, "<p>", top)

		outer, _ := out.Get("outer")
		inner, _ := outer.(*sanitizer.Map).Get("html")
		assert.Equal(t, "&lt;p&gt;", inner)
	})

	t.Run("recurses into nested maps and keeps order", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(
			sanitizer.P("z", "1"),
			sanitizer.P("a", sanitizer.MapOf(
				sanitizer.P("b'", "it's"),
				sanitizer.P("c", sanitizer.MapOf(sanitizer.P("d", "x\ny"))),
			)),
			sanitizer.P("m", 7),
		)
		out := sanitizer.Sanitize(in).(*sanitizer.Map)

		assert.Equal(t, []string{"z", "a", "m"}, out.Keys())
		a, _ := out.Get("a")
		am := a.(*sanitizer.Map)
		assert.Equal(t, []string{"b&#039;", "c"}, am.Keys())
		b, _ := am.Get("b&#039;")
		assert.Equal(t, "it&#039;s", b)
		c, _ := am.Get("c")
		d, _ := c.(*sanitizer.Map).Get("d")
		assert.Equal(t, "x&#10;y", d)
		m, _ := out.Get("m")
		assert.Equal(t, 7, m)
	})

	t.Run("does not modify the input", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(sanitizer.P("k&", "v&"))
		_ = sanitizer.Sanitize(in)

		assert.Equal(t, []string{"k&"}, in.Keys())
		v, _ := in.Get("k&")
		assert.Equal(t, "v&", v)
	})

	t.Run("colliding escaped keys keep a single entry", func(t *testing.T) {
		t.Parallel()

		in := sanitizer.MapOf(
			sanitizer.P("a&amp;", "raw"),
			sanitizer.P("a&", "escaped"),
		)
		out := sanitizer.Sanitize(in, "a&amp;").(*sanitizer.Map)

		assert.Equal(t, []string{"a&amp;"}, out.Keys())
		v, _ := out.Get("a&amp;")
		assert.Equal(t, "escaped", v)
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()

		var in *sanitizer.Map
		out := sanitizer.Sanitize(in)
		assert.Nil(t, out.(*sanitizer.Map))
	})
}

// Sanitizing already escaped text escapes the ampersand again. Callers escape
// raw input exactly once.
func TestSanitize_NotIdempotent(t *testing.T) {
	t.Parallel()

	once := sanitizer.Sanitize("Tom & Jerry")
	assert.Equal(t, "Tom &amp; Jerry", once)

	twice := sanitizer.Sanitize(once)
	assert.Equal(t, "Tom &amp;amp; Jerry", twice)
	assert.NotEqual(t, once, twice)

	assert.Equal(t, "&amp;amp;", sanitizer.String("&amp;"))
}

func TestSanitize_StableWithoutAmpersands(t *testing.T) {
	t.Parallel()

	once := sanitizer.String("no specials here")
	assert.Equal(t, once, sanitizer.String(once))
}

func TestSanitizeInPlace(t *testing.T) {
	t.Parallel()

	t.Run("string slot", func(t *testing.T) {
		t.Parallel()

		var v any = "&\\o<x>i\"'d\x00"
		original := v
		sanitizer.SanitizeInPlace(&v)

		assert.Equal(t, "&amp;&#092;o&lt;x&gt;i&quot;&#039;d", v)
		assert.Equal(t, sanitizer.Sanitize(original), v)
	})

	t.Run("map slot with raw keys", func(t *testing.T) {
		t.Parallel()

		var v any = sanitizer.MapOf(
			sanitizer.P("keep", "&"),
			sanitizer.P("escape", "&"),
		)
		sanitizer.SanitizeInPlace(&v, "keep")

		m := v.(*sanitizer.Map)
		keep, _ := m.Get("keep")
		escape, _ := m.Get("escape")
		assert.Equal(t, "&", keep)
		assert.Equal(t, "&amp;", escape)
	})

	t.Run("opaque slot", func(t *testing.T) {
		t.Parallel()

		obj := &richObject{Note: "\n"}
		var v any = obj
		sanitizer.SanitizeInPlace(&v)
		assert.Same(t, obj, v)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() { sanitizer.SanitizeInPlace(nil) })
	})
}
