package yamldoc

import (
	"testing"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsOrder(t *testing.T) {
	src := `
version: "2.0"
slots:
  cuisine:
    type: text
    auto_fill: false
intents:
  - greet
  - bye
entities:
  - cuisine
`

	m, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"version", "slots", "intents", "entities"}, m.Keys())

	v, _ := m.Get("version")
	assert.Equal(t, "2.0", v)

	slots, _ := m.Get("slots")
	cuisine, _ := slots.(*Map).Get("cuisine")
	assert.Equal(t, []string{"type", "auto_fill"}, cuisine.(*Map).Keys())

	autoFill, _ := cuisine.(*Map).Get("auto_fill")
	assert.Equal(t, false, autoFill)

	intents, _ := m.Get("intents")
	assert.Equal(t, []any{"greet", "bye"}, intents)
}

func TestParseEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n", "# just a comment\n", "~\n"} {
		m, err := Parse([]byte(src))
		require.NoError(t, err, "input %q", src)
		assert.Equal(t, 0, m.Len())
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotMapping))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("slots: [unclosed\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotMapping))
}

func TestParseResolvesAliasesAndMergeKeys(t *testing.T) {
	src := `
base: &base
  type: text
  influence_conversation: false
slots:
  name:
    <<: *base
    type: any
  other: *base
`

	m, err := Parse([]byte(src))
	require.NoError(t, err)

	slots, _ := m.Get("slots")
	name, _ := slots.(*Map).Get("name")
	assert.Equal(t, []string{"type", "influence_conversation"}, name.(*Map).Keys())

	typ, _ := name.(*Map).Get("type")
	assert.Equal(t, "any", typ)

	other, _ := slots.(*Map).Get("other")
	assert.True(t, other.(*Map).Equal(MapOf("type", "text", "influence_conversation", false)))
}

func TestMarshalRoundTrip(t *testing.T) {
	src := `version: "2.0"
intents:
  - greet
slots:
  cuisine:
    type: text
    mappings:
      - type: from_entity
        entity: cuisine
responses:
  utter_greet:
    - text: Hey!
`

	m, err := Parse([]byte(src))
	require.NoError(t, err)

	out, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMarshalQuotedVersion(t *testing.T) {
	m := MapOf("version", Quoted("3.0"), "intents", []any{"greet"})

	out, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "version: \"3.0\"\nintents:\n  - greet\n", string(out))

	back, err := Parse(out)
	require.NoError(t, err)

	v, _ := back.Get("version")
	assert.Equal(t, "3.0", v)
}

func TestMarshalStringSlice(t *testing.T) {
	m := MapOf("required_slots", []string{"a", "b"})

	out, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "required_slots:\n  - a\n  - b\n", string(out))
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := MapOf("version", Quoted("3.0"), "entities", []any{"cuisine"})

	require.NoError(t, WriteFile(fs, "/data/domain.yml", m))

	data, err := afero.ReadFile(fs, "/data/domain.yml")
	require.NoError(t, err)
	assert.Equal(t, "version: \"3.0\"\nentities:\n  - cuisine\n", string(data))

	back, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, back.Equal(m))

	err = WriteFile(afero.NewReadOnlyFs(fs), "/data/other.yml", m)
	require.Error(t, err)
}
