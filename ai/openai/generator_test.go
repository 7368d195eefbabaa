package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedArticle(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		got, err := parseGeneratedArticle(`{"title": "Titular", "content": "Cuerpo.", "tags": ["economía", "chile", "minería"]}`)
		require.NoError(t, err)
		assert.Equal(t, "Titular", got.Title)
		assert.Equal(t, "Cuerpo.", got.Content)
		assert.Equal(t, []string{"economía", "chile", "minería"}, got.Tags)
	})

	t.Run("markdown fenced json", func(t *testing.T) {
		raw := "```json\n{\"title\": \"Titular\", \"content\": \"Cuerpo.\", \"tags\": []}\n```"
		got, err := parseGeneratedArticle(raw)
		require.NoError(t, err)
		assert.Equal(t, "Titular", got.Title)
		assert.Empty(t, got.Tags)
	})

	t.Run("tags as comma-joined string", func(t *testing.T) {
		got, err := parseGeneratedArticle(`{"title": "T", "content": "C", "tags": "política, europa , elecciones"}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"política", "europa", "elecciones"}, got.Tags)
	})

	t.Run("missing tags field", func(t *testing.T) {
		got, err := parseGeneratedArticle(`{"title": "T", "content": "C"}`)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("repairs unquoted keys", func(t *testing.T) {
		got, err := parseGeneratedArticle(`{title": "T", content": "C", "tags": []}`)
		require.NoError(t, err)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "C", got.Content)
	})

	t.Run("not json at all", func(t *testing.T) {
		_, err := parseGeneratedArticle("Lo siento, no puedo ayudar con eso.")
		assert.Error(t, err)
	})

	t.Run("tags as object is rejected", func(t *testing.T) {
		_, err := parseGeneratedArticle(`{"title": "T", "content": "C", "tags": {"a": 1}}`)
		assert.Error(t, err)
	})
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"well formed untouched", `{"a": 1, "b": "x"}`, `{"a": 1, "b": "x"}`},
		{"missing quote after brace", `{title": "x"}`, `{"title": "x"}`},
		{"missing quote after comma", `{"a": 1, tags": []}`, `{"a": 1, "tags": []}`},
		{"underscored key", `{core_tags": []}`, `{"core_tags": []}`},
		{"value strings untouched", `{"a": "b, c: d"}`, `{"a": "b, c: d"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, repairJSON(tc.in))
		})
	}
}
