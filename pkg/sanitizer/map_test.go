package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/shopreviews/pkg/sanitizer"
)

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var m sanitizer.Map
		m.Set("a", 1)
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("set keeps first position", func(t *testing.T) {
		t.Parallel()

		m := sanitizer.MapOf(sanitizer.P("a", 1), sanitizer.P("b", 2))
		m.Set("a", 3)

		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, _ := m.Get("a")
		assert.Equal(t, 3, v)
	})

	t.Run("delete removes key and order entry", func(t *testing.T) {
		t.Parallel()

		m := sanitizer.MapOf(sanitizer.P("a", 1), sanitizer.P("b", 2), sanitizer.P("c", 3))
		m.Delete("b")
		m.Delete("missing")

		assert.Equal(t, []string{"a", "c"}, m.Keys())
		assert.False(t, m.Has("b"))
	})

	t.Run("all stops early", func(t *testing.T) {
		t.Parallel()

		m := sanitizer.MapOf(sanitizer.P("a", 1), sanitizer.P("b", 2), sanitizer.P("c", 3))
		var seen []string
		for k := range m.All() {
			seen = append(seen, k)
			if k == "b" {
				break
			}
		}
		assert.Equal(t, []string{"a", "b"}, seen)
	})

	t.Run("keys returns a copy", func(t *testing.T) {
		t.Parallel()

		m := sanitizer.MapOf(sanitizer.P("a", 1))
		keys := m.Keys()
		keys[0] = "mutated"
		assert.Equal(t, []string{"a"}, m.Keys())
	})

	t.Run("clone is shallow", func(t *testing.T) {
		t.Parallel()

		nested := sanitizer.MapOf(sanitizer.P("x", "y"))
		m := sanitizer.MapOf(sanitizer.P("n", nested))
		c := m.Clone()
		c.Set("extra", true)

		assert.Equal(t, 1, m.Len())
		v, _ := c.Get("n")
		assert.Same(t, nested, v)
	})

	t.Run("to map recurses", func(t *testing.T) {
		t.Parallel()

		m := sanitizer.MapOf(
			sanitizer.P("a", "1"),
			sanitizer.P("n", sanitizer.MapOf(sanitizer.P("x", "y"))),
		)
		assert.Equal(t, map[string]any{
			"a": "1",
			"n": map[string]any{"x": "y"},
		}, m.ToMap())
	})

	t.Run("nil map reads", func(t *testing.T) {
		t.Parallel()

		var m *sanitizer.Map
		assert.Equal(t, 0, m.Len())
		assert.Nil(t, m.Keys())
		assert.False(t, m.Has("a"))
		assert.Nil(t, m.Clone())
		assert.Nil(t, m.ToMap())
		m.Delete("a")
		for range m.All() {
			t.Fatal("nil map must not yield")
		}
	})
}
