package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintURL(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FingerprintURL("https://example.com/noticias/1")
		b := FingerprintURL("https://example.com/noticias/1")
		assert.Equal(t, a, b)
	})

	t.Run("distinct urls produce distinct fingerprints", func(t *testing.T) {
		a := FingerprintURL("https://example.com/noticias/1")
		b := FingerprintURL("https://example.com/noticias/2")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty url has a fingerprint too", func(t *testing.T) {
		// The validation layer rejects empty URLs; the fingerprint itself
		// must still be well-defined.
		assert.NotPanics(t, func() { FingerprintURL("") })
	})
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "hola", 10, "hola"},
		{"exactly at limit", "hola", 4, "hola"},
		{"longer than limit", "hola mundo", 4, "hola"},
		{"zero limit", "hola", 0, ""},
		{"negative limit", "hola", -1, ""},
		{"multibyte runes not split", "año nuevo", 3, "año"},
		{"empty input", "", 5, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateRunes(tc.in, tc.n))
		})
	}
}
