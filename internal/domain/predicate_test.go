package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-migrator/internal/yamldoc"
)

func TestIsYAMLFile(t *testing.T) {
	assert.True(t, IsYAMLFile("domain.yml"))
	assert.True(t, IsYAMLFile("dir/Domain.YAML"))
	assert.False(t, IsYAMLFile("domain.json"))
	assert.False(t, IsYAMLFile("domain"))
}

func TestIsDomain(t *testing.T) {
	tests := map[string]struct {
		content string
		want    bool
	}{
		"intents":        {content: "intents:\n  - greet\n", want: true},
		"slots":          {content: "slots:\n  a:\n    type: text\n", want: true},
		"session config": {content: "session_config:\n  session_expiration_time: 60\n", want: true},
		"responses":      {content: "responses:\n  utter_greet:\n    - text: hi\n", want: true},
		"null section":   {content: "forms:\n", want: true},
		"training data":  {content: "nlu:\n  - intent: greet\n", want: false},
		"empty":          {content: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := yamldoc.Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, IsDomain(doc))
		})
	}
}
