package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() *Article {
	return &Article{
		URL:    "https://example.com/noticias/42",
		Title:  "Un titular cualquiera",
		Source: "Ejemplo",
		Status: StatusDraft,
	}
}

func TestValidateArticle(t *testing.T) {
	t.Run("valid article", func(t *testing.T) {
		require.NoError(t, ValidateArticle(validArticle()))
	})

	t.Run("nil article", func(t *testing.T) {
		err := ValidateArticle(nil)
		assert.ErrorIs(t, err, ErrInvalidArticle)
	})

	t.Run("empty url", func(t *testing.T) {
		a := validArticle()
		a.URL = ""
		err := ValidateArticle(a)
		assert.ErrorIs(t, err, ErrInvalidArticle)
		assert.ErrorIs(t, err, ErrEmptyURL)
	})

	t.Run("empty title", func(t *testing.T) {
		a := validArticle()
		a.Title = ""
		err := ValidateArticle(a)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("unknown status", func(t *testing.T) {
		a := validArticle()
		a.Status = "retracted"
		err := ValidateArticle(a)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("future publish time", func(t *testing.T) {
		a := validArticle()
		a.PublishedAt = time.Now().Add(48 * time.Hour)
		err := ValidateArticle(a)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("zero publish time is allowed", func(t *testing.T) {
		a := validArticle()
		a.PublishedAt = time.Time{}
		assert.NoError(t, ValidateArticle(a))
	})

	t.Run("empty content is allowed", func(t *testing.T) {
		// The translation-fallback path can produce an empty body when the
		// feed entry carried no summary.
		a := validArticle()
		a.Content = ""
		a.Summary = ""
		assert.NoError(t, ValidateArticle(a))
	})
}

func TestValidateStatus(t *testing.T) {
	for _, status := range []ArticleStatus{StatusDraft, StatusPublished, StatusArchived} {
		assert.NoError(t, ValidateStatus(status))
	}
	assert.ErrorIs(t, ValidateStatus(""), ErrInvalidStatus)
	assert.ErrorIs(t, ValidateStatus("DRAFT"), ErrInvalidStatus)
}
