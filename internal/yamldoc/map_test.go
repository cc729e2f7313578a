package yamldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSetKeepsPosition(t *testing.T) {
	m := MapOf("a", 1, "b", 2, "c", 3)
	m.Set("b", 20)
	m.Set("d", 4)

	assert.Equal(t, []string{"a", "b", "c", "d"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestMapDelete(t *testing.T) {
	m := MapOf("a", 1, "b", 2, "c", 3)
	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
	assert.Equal(t, 2, m.Len())
}

func TestNilMapIsEmpty(t *testing.T) {
	var m *Map

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
	assert.Nil(t, m.Clone())
}

func TestMapCloneIsDeep(t *testing.T) {
	inner := MapOf("entity", "cuisine")
	m := MapOf("mappings", []any{inner})

	clone := m.Clone()
	inner.Set("entity", "changed")

	v, _ := clone.Get("mappings")
	items := v.([]any)
	got, _ := items[0].(*Map).Get("entity")
	assert.Equal(t, "cuisine", got)
}

func TestMapEqual(t *testing.T) {
	tests := []struct {
		name string
		a    *Map
		b    *Map
		want bool
	}{
		{
			name: "order does not matter",
			a:    MapOf("active_loop", "f", "requested_slot", "s"),
			b:    MapOf("requested_slot", "s", "active_loop", "f"),
			want: true,
		},
		{
			name: "different value",
			a:    MapOf("active_loop", "f"),
			b:    MapOf("active_loop", "g"),
			want: false,
		},
		{
			name: "extra key",
			a:    MapOf("active_loop", "f"),
			b:    MapOf("active_loop", "f", "requested_slot", "s"),
			want: false,
		},
		{
			name: "nested lists",
			a:    MapOf("intent", []any{"a", "b"}),
			b:    MapOf("intent", []any{"a", "b"}),
			want: true,
		},
		{
			name: "list order matters",
			a:    MapOf("intent", []any{"a", "b"}),
			b:    MapOf("intent", []any{"b", "a"}),
			want: false,
		},
		{
			name: "quoted equals plain string",
			a:    MapOf("version", Quoted("3.0")),
			b:    MapOf("version", "3.0"),
			want: true,
		},
		{
			name: "both empty",
			a:    NewMap(),
			b:    nil,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestMapOfPanicsOnOddArgs(t *testing.T) {
	assert.Panics(t, func() { MapOf("a") })
	assert.Panics(t, func() { MapOf(1, "a") })
}
