package reindex

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/storage"
	"github.com/gacetalabs/gaceta/storage/badger"
)

// fakeIndexer records rebuild operations and can fail specific articles.
type fakeIndexer struct {
	resets  int
	added   []core.ID
	failIDs map[core.ID]error
}

func (f *fakeIndexer) Reset() error {
	f.resets++
	f.added = nil
	return nil
}

func (f *fakeIndexer) AddArticle(ctx context.Context, article *core.Article) error {
	if err, ok := f.failIDs[article.Id]; ok {
		return err
	}
	f.added = append(f.added, article.Id)
	return nil
}

func seedArticles(t *testing.T, repo storage.ArticleRepository, n int) []*core.Article {
	t.Helper()
	articles := make([]*core.Article, n)
	for i := 0; i < n; i++ {
		article := &core.Article{
			URL:     fmt.Sprintf("https://example.com/news/%d", i),
			Title:   fmt.Sprintf("Titular %d", i),
			Content: fmt.Sprintf("Cuerpo del artículo %d.", i),
			Summary: fmt.Sprintf("Resumen %d...", i),
			Source:  "Reuters",
		}
		inserted, err := repo.InsertArticle(context.Background(), article)
		require.NoError(t, err)
		articles[i] = inserted
	}
	return articles
}

func fastConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewRebuilder_Validation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	_, err = NewRebuilder(nil, &fakeIndexer{}, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewRebuilder(repo, nil, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrIndexerRequired)
}

func TestRun_RebuildsAllInOrder(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	seeded := seedArticles(t, repo, 5)
	index := &fakeIndexer{}

	var out bytes.Buffer
	rebuilder, err := NewRebuilder(repo, index, fastConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, rebuilder.Run(context.Background()))

	assert.Equal(t, 1, index.resets)
	require.Len(t, index.added, len(seeded))
	for i, id := range index.added {
		assert.Equal(t, seeded[i].Id, id)
	}
	assert.Contains(t, out.String(), "Reindex complete")
}

func TestRun_EmptyStore(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	index := &fakeIndexer{}
	var out bytes.Buffer
	rebuilder, err := NewRebuilder(repo, index, fastConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, rebuilder.Run(context.Background()))

	// The reset still runs so stale snapshots do not outlive an empty store.
	assert.Equal(t, 1, index.resets)
	assert.Empty(t, index.added)
	assert.Contains(t, out.String(), "No articles found")
}

func TestRun_SkipsPersistentlyFailingArticle(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	seeded := seedArticles(t, repo, 4)
	index := &fakeIndexer{
		failIDs: map[core.ID]error{seeded[1].Id: assert.AnError},
	}

	var out bytes.Buffer
	rebuilder, err := NewRebuilder(repo, index, fastConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, rebuilder.Run(context.Background()))

	assert.Len(t, index.added, 3)
	assert.NotContains(t, index.added, seeded[1].Id)
	assert.Contains(t, out.String(), "1 skipped")
}

func TestRun_ContextCanceled(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	seedArticles(t, repo, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	index := &fakeIndexer{failIDs: map[core.ID]error{}}
	rebuilder, err := NewRebuilder(repo, index, fastConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	err = rebuilder.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
