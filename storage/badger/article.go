package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/storage"
)

const insertAttempts = 2

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend     *Backend
	idSeq       *badger.Sequence
	ownsBackend bool
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository on an existing backend.
func NewArticleRepository(backend *Backend) (*ArticleRepository, error) {
	idSeq, err := backend.GetSequence(articleIDSeq)
	if err != nil {
		return nil, err
	}

	return &ArticleRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// NewRepository opens a BadgerDB database at path and returns an article
// repository that owns the underlying backend. Close releases both.
func NewRepository(path string) (storage.ArticleRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	repo, err := NewArticleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// Close releases the ID sequence, and the backend when this repository
// owns it.
func (r *ArticleRepository) Close() error {
	err := r.idSeq.Release()
	if r.ownsBackend {
		if closeErr := r.backend.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *ArticleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertArticle adds a new article to storage.
//
// The URL index read inside the transaction makes two racing inserts of the
// same URL conflict at commit. The losing transaction retries once, observes
// the committed URL entry, and fails with ErrDuplicateURL.
func (r *ArticleRepository) InsertArticle(ctx context.Context, article *core.Article) (*core.Article, error) {
	if article != nil && article.Status == "" {
		article.Status = core.StatusDraft
	}
	if err := core.ValidateArticle(article); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		err = r.backend.WithTx(func(tx *badger.Txn) error {
			urlKey := makeURLKey(core.FingerprintURL(article.URL))
			_, getErr := tx.Get(urlKey)
			if getErr == nil {
				return storage.ErrDuplicateURL
			}
			if getErr != badger.ErrKeyNotFound {
				return getErr
			}

			if article.Id == 0 {
				nextID, seqErr := r.idSeq.Next()
				if seqErr != nil {
					return seqErr
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, seqErr = r.idSeq.Next()
					if seqErr != nil {
						return seqErr
					}
				}
				article.Id = core.ID(nextID)
			}

			article.CreatedAt = time.Now().UTC()

			if setErr := tx.Set(makeArticleKey(article.Id), storage.MarshalArticle(article)); setErr != nil {
				return setErr
			}
			if setErr := tx.Set(urlKey, storage.MarshalID(article.Id)); setErr != nil {
				return setErr
			}
			if setErr := tx.Set(makeSourceKey(article.Source, article.Id), storage.MarshalID(article.Id)); setErr != nil {
				return setErr
			}
			return tx.Commit()
		}, true)

		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}

	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticleByURL retrieves the article stored under the given URL.
// Returns (nil, nil) when no article with that URL exists. The stored URL is
// compared against the query to rule out fingerprint collisions.
func (r *ArticleRepository) FindArticleByURL(ctx context.Context, url string) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		urlKey := makeURLKey(core.FingerprintURL(url))
		id, err := r.readIndexedID(tx, urlKey)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}

		article, err := r.readArticle(tx, makeArticleKey(id))
		if err != nil {
			return err
		}
		if article != nil && article.URL == url {
			result = article
		}
		return nil
	}, false)
	return result, err
}

// GetArticle retrieves a single article by ID.
func (r *ArticleRepository) GetArticle(ctx context.Context, id core.ID) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readArticle(tx, makeArticleKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetArticles retrieves multiple articles by their IDs.
func (r *ArticleRepository) GetArticles(ctx context.Context, ids ...core.ID) ([]*core.Article, error) {
	var result []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			article, err := r.readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article != nil {
				result = append(result, article)
			}
		}
		return nil
	}, false)
	return result, err
}

// UpdateArticle updates an existing article. CreatedAt is preserved from the
// stored article. URL and source index entries follow any field changes.
func (r *ArticleRepository) UpdateArticle(ctx context.Context, article *core.Article) (*core.Article, error) {
	if err := core.ValidateArticle(article); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArticleKey(article.Id)

		old, err := r.readArticle(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		article.CreatedAt = old.CreatedAt

		if old.URL != article.URL {
			newURLKey := makeURLKey(core.FingerprintURL(article.URL))
			owner, err := r.readIndexedID(tx, newURLKey)
			if err != nil {
				return err
			}
			if owner != 0 && owner != article.Id {
				return storage.ErrDuplicateURL
			}
			if err := tx.Delete(makeURLKey(core.FingerprintURL(old.URL))); err != nil {
				return err
			}
			if err := tx.Set(newURLKey, storage.MarshalID(article.Id)); err != nil {
				return err
			}
		}

		if old.Source != article.Source {
			if err := tx.Delete(makeSourceKey(old.Source, old.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeSourceKey(article.Source, article.Id), storage.MarshalID(article.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalArticle(article)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle removes an article and its index entries by ID.
func (r *ArticleRepository) DeleteArticle(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArticleKey(id)

		article, err := r.readArticle(tx, key)
		if err != nil {
			return err
		}
		if article == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeURLKey(core.FingerprintURL(article.URL))); err != nil {
			return err
		}
		if err := tx.Delete(makeSourceKey(article.Source, article.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetArticlesBySource retrieves all articles from a named feed source,
// ordered by ID ascending. Source index keys carry BigEndian IDs, so plain
// iteration order is ID order.
func (r *ArticleRepository) GetArticlesBySource(ctx context.Context, source string) ([]*core.Article, error) {
	var results []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialSourceKey(source)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			article, err := r.readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article != nil {
				results = append(results, article)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetAllArticles retrieves every stored article, ordered by ID ascending.
func (r *ArticleRepository) GetAllArticles(ctx context.Context) ([]*core.Article, error) {
	var results []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(articleRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var article *core.Article
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				article, err = storage.UnmarshalArticle(val)
				return err
			}); err != nil {
				return err
			}
			if article != nil {
				results = append(results, article)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Decimal record keys do not sort numerically, so order here.
	slices.SortFunc(results, func(a, b *core.Article) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
	return results, nil
}

// CountArticles returns the number of stored articles.
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(articleRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readArticle reads an article from the transaction.
func (r *ArticleRepository) readArticle(tx *badger.Txn, key []byte) (*core.Article, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var article *core.Article
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		article, unmarshalErr = storage.UnmarshalArticle(val)
		return unmarshalErr
	})
	return article, err
}

// readIndexedID reads an article ID from an index entry.
// Returns 0 when the entry does not exist.
func (r *ArticleRepository) readIndexedID(tx *badger.Txn, key []byte) (core.ID, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	return id, err
}
