package migrate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"domain-migrator/internal/yamldoc"
)

func mustParse(t *testing.T, src string) *yamldoc.Map {
	t.Helper()

	doc, err := yamldoc.Parse([]byte(src))
	require.NoError(t, err)

	return doc
}

func entry(t *testing.T, m *yamldoc.Map, key string) *yamldoc.Map {
	t.Helper()

	v, ok := m.Get(key)
	require.True(t, ok, "%s missing", key)

	m, isMap := v.(*yamldoc.Map)
	require.True(t, isMap, "expected a mapping, got %T", v)

	return m
}

func assertDocEqual(t *testing.T, want string, got *yamldoc.Map) {
	t.Helper()

	expected := mustParse(t, want)
	if !expected.Equal(got) {
		out, err := yamldoc.Marshal(got)
		require.NoError(t, err)
		t.Fatalf("documents differ\nwant:\n%s\ngot:\n%s", want, out)
	}
}
