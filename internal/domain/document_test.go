package domain

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-migrator/internal/yamldoc"
)

func TestSection(t *testing.T) {
	slots := yamldoc.MapOf("cuisine", yamldoc.MapOf("type", "text"))
	doc := yamldoc.MapOf(KeySlots, slots, KeyForms, nil, KeyIntents, []any{"greet"})

	got, err := Section(doc, KeySlots)
	require.NoError(t, err)
	assert.Same(t, slots, got)

	forms, err := Section(doc, KeyForms)
	require.NoError(t, err)
	assert.Equal(t, 0, forms.Len())

	missing, err := Section(doc, KeyResponses)
	require.NoError(t, err)
	assert.Equal(t, 0, missing.Len())

	_, err = Section(doc, KeyIntents)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestEntry(t *testing.T) {
	forms := yamldoc.MapOf("empty_form", nil, "bad_form", "oops", "ok_form", yamldoc.MapOf("a", 1))

	empty, err := Entry(forms, "form", "empty_form")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	ok, err := Entry(forms, "form", "ok_form")
	require.NoError(t, err)
	assert.Equal(t, 1, ok.Len())

	_, err = Entry(forms, "form", "bad_form")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), `form "bad_form"`)
}

func TestEntities(t *testing.T) {
	doc := yamldoc.MapOf(KeyEntities, []any{
		"cuisine",
		yamldoc.MapOf("city", yamldoc.MapOf("roles", []any{"from", "to"})),
		42,
	})

	raw, err := RawEntities(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"cuisine", "city"}, EntityNames(raw))

	none, err := RawEntities(yamldoc.NewMap())
	require.NoError(t, err)
	assert.Empty(t, EntityNames(none))

	_, err = RawEntities(yamldoc.MapOf(KeyEntities, "cuisine"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name         string
		doc          *yamldoc.Map
		wantVersion  string
		wantPresent  bool
		wantMigrated bool
	}{
		{name: "legacy", doc: yamldoc.MapOf(KeyVersion, "2.0"), wantVersion: "2.0", wantPresent: true},
		{name: "target string", doc: yamldoc.MapOf(KeyVersion, "3.0"), wantVersion: "3.0", wantPresent: true, wantMigrated: true},
		{name: "target quoted", doc: yamldoc.MapOf(KeyVersion, yamldoc.Quoted("3.0")), wantVersion: "3.0", wantPresent: true, wantMigrated: true},
		{name: "numeric", doc: yamldoc.MapOf(KeyVersion, 3.0), wantVersion: "3", wantPresent: true},
		{name: "absent", doc: yamldoc.NewMap()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Version(tt.doc)
			assert.Equal(t, tt.wantVersion, v)
			assert.Equal(t, tt.wantPresent, ok)
			assert.Equal(t, tt.wantMigrated, IsMigrated(tt.doc))
		})
	}
}

func TestHasSlotsOrForms(t *testing.T) {
	assert.True(t, HasSlotsOrForms(yamldoc.MapOf(KeySlots, nil)))
	assert.True(t, HasSlotsOrForms(yamldoc.MapOf(KeyForms, yamldoc.NewMap())))
	assert.False(t, HasSlotsOrForms(yamldoc.MapOf(KeyIntents, []any{"greet"})))
}
