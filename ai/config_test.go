package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, cfg.EmbeddingHost, cfg.GeneratorHost)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://gpu-box:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithGeneratorModel("gpt-4o-mini"),
		WithLanguage("PT"),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://gpu-box:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://gpu-box:9100/v1", cfg.GeneratorHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
	assert.Equal(t, "pt", cfg.Language, "language code is lowercased")
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tc.host))
			cfg.Normalize()
			assert.Equal(t, tc.want, cfg.EmbeddingHost)
			assert.Equal(t, tc.want, cfg.GeneratorHost)
		})
	}
}

func TestConfig_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing generator host", func(c *Config) { c.GeneratorHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing generator model", func(c *Config) { c.GeneratorModel = "" }},
		{"missing language", func(c *Config) { c.Language = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGeneratedArticle_Degraded(t *testing.T) {
	gen := &GeneratedArticle{Title: "Nuevo titular", Content: "cuerpo"}
	assert.False(t, gen.Degraded("Original headline"))

	degraded := &GeneratedArticle{Title: "Original headline", Content: "summary"}
	assert.True(t, degraded.Degraded("Original headline"))
}
