package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacetalabs/gaceta/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"URL fingerprint", core.FingerprintURL("https://example.com/news/1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalArticle(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		article *core.Article
	}{
		{
			name: "full article",
			article: &core.Article{
				Id:              core.ID(7),
				URL:             "https://example.com/news/economia-7",
				Title:           "Síntesis: mercados al alza",
				Content:         "Los mercados cerraron al alza tras el anuncio.",
				Summary:         "Los mercados cerraron al alza...",
				OriginalContent: "Markets closed higher after the announcement.",
				Tags:            "economía,mercados",
				Source:          "Reuters",
				Status:          core.StatusDraft,
				PublishedAt:     now.Add(-2 * time.Hour),
				CreatedAt:       now,
			},
		},
		{
			name: "no publish time",
			article: &core.Article{
				Id:        core.ID(8),
				URL:       "https://example.com/news/8",
				Title:     "Sin fecha",
				Content:   "Cuerpo.",
				Status:    core.StatusPublished,
				CreatedAt: now,
			},
		},
		{
			name: "degraded ingest, empty content",
			article: &core.Article{
				Id:        core.ID(9),
				URL:       "https://example.com/news/9",
				Title:     "Título traducido",
				Summary:   "Resumen traducido",
				Status:    core.StatusDraft,
				CreatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalArticle(tt.article)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalArticle(data)
			require.NoError(t, err)
			assert.Equal(t, tt.article, decoded)
		})
	}
}

func TestUnmarshalArticle_Truncated(t *testing.T) {
	article := &core.Article{
		Id:      core.ID(1),
		URL:     "https://example.com/a",
		Title:   "Titular",
		Content: "Cuerpo del artículo.",
		Status:  core.StatusDraft,
	}
	data := MarshalArticle(article)

	_, err := UnmarshalArticle(data[:len(data)/2])
	assert.Error(t, err)
}

func TestTimeMUS_ZeroRoundTrip(t *testing.T) {
	buf := make([]byte, TimeMUS.Size(time.Time{}))
	n := TimeMUS.Marshal(time.Time{}, buf)
	require.Equal(t, len(buf), n)

	decoded, _, err := TimeMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.True(t, decoded.IsZero())
}
