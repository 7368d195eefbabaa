package gaceta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacetalabs/gaceta/ai/mock"
	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/ingestion"
)

func openTestNewsroom(t *testing.T) *Newsroom {
	t.Helper()
	nr, err := Open(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { nr.Close() })
	return nr
}

func seedArticle(t *testing.T, nr *Newsroom, url string) *core.Article {
	t.Helper()
	inserted, err := nr.Articles().InsertArticle(context.Background(), &core.Article{
		URL:             url,
		Title:           "Titular sembrado",
		Content:         "Cuerpo del artículo sembrado.",
		Summary:         "Cuerpo del artículo sembrado...",
		OriginalContent: "Seeded article body.",
		Source:          "Reuters",
	})
	require.NoError(t, err)
	require.NoError(t, nr.Index().AddArticle(context.Background(), inserted))
	return inserted
}

func TestOpen(t *testing.T) {
	t.Run("create new newsroom", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "newsroom")
		nr, err := Open(dataDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, nr)
		defer nr.Close()

		assert.NotNil(t, nr.Articles())
		assert.NotNil(t, nr.Index())
		assert.NotNil(t, nr.Provider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the article store directory should be
		dataDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "articles"), []byte("x"), 0644))

		nr, err := Open(dataDir, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, nr)
	})
}

func TestNewsroom_Close(t *testing.T) {
	nr, err := Open(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, nr.Close())
}

func TestNewsroom_FactoryMethods(t *testing.T) {
	nr := openTestNewsroom(t)

	t.Run("can create orchestrator", func(t *testing.T) {
		orch, err := nr.NewOrchestrator(ingestion.WithPoolSize(1))
		require.NoError(t, err)
		require.NotNil(t, orch)
		orch.Release()
	})

	t.Run("can create rebuilder", func(t *testing.T) {
		rebuilder, err := nr.NewRebuilder(nil, os.Stderr)
		require.NoError(t, err)
		require.NotNil(t, rebuilder)
	})
}

func TestNewsroom_Search(t *testing.T) {
	nr := openTestNewsroom(t)
	seeded := seedArticle(t, nr, "https://example.com/news/1")

	matches, err := nr.Search(context.Background(), "Titular sembrado. Cuerpo del artículo sembrado...", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, seeded.Id, matches[0].ArticleID)
}

func TestNewsroom_Refine(t *testing.T) {
	nr := openTestNewsroom(t)
	seeded := seedArticle(t, nr, "https://example.com/news/1")
	ctx := context.Background()

	refined, err := nr.Refine(ctx, seeded.Id, "más conciso")
	require.NoError(t, err)
	assert.Contains(t, refined, "más conciso")

	stored, err := nr.Articles().GetArticle(ctx, seeded.Id)
	require.NoError(t, err)
	assert.Equal(t, refined, stored.Content)

	_, err = nr.Refine(ctx, core.ID(9999), "da igual")
	assert.Error(t, err)
}

func TestNewsroom_Audit(t *testing.T) {
	nr := openTestNewsroom(t)
	seeded := seedArticle(t, nr, "https://example.com/news/1")

	report, err := nr.Audit(context.Background(), seeded.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, report)
}

func TestNewsroom_PublishArchive(t *testing.T) {
	nr := openTestNewsroom(t)
	seeded := seedArticle(t, nr, "https://example.com/news/1")
	ctx := context.Background()

	published, err := nr.Publish(ctx, seeded.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusPublished, published.Status)

	archived, err := nr.Archive(ctx, seeded.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusArchived, archived.Status)

	stored, err := nr.Articles().GetArticle(ctx, seeded.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusArchived, stored.Status)
}

func TestNewsroom_EndToEnd(t *testing.T) {
	nr := openTestNewsroom(t)
	ctx := context.Background()

	feeds := staticFeeds{
		"https://feeds.example.com/rss": {
			{Link: "https://example.com/e2e/1", Title: "Primera noticia", Summary: "Resumen de la primera."},
			{Link: "https://example.com/e2e/2", Title: "Segunda noticia", Summary: "Resumen de la segunda."},
		},
	}
	orch, err := nr.NewOrchestrator(ingestion.WithFeedSource(feeds), ingestion.WithPoolSize(1))
	require.NoError(t, err)
	defer orch.Release()

	count, err := orch.Ingest(ctx, "https://feeds.example.com/rss", "Reuters")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, nr.Index().Len())

	matches, err := nr.Search(ctx, "Síntesis: Primera noticia. Artículo reescrito a partir de: Resumen de la primera....", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	article, err := nr.Articles().GetArticle(ctx, matches[0].ArticleID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/e2e/1", article.URL)
}

// staticFeeds is an in-memory ingestion.FeedSource for end-to-end tests.
type staticFeeds map[string][]ingestion.Entry

func (s staticFeeds) Fetch(ctx context.Context, feedURL string) ([]ingestion.Entry, error) {
	return s[feedURL], nil
}
