package storage

import (
	"context"

	"github.com/gacetalabs/gaceta/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ArticleRepository provides operations for managing articles.
type ArticleRepository interface {
	Repository
	// InsertArticle adds a new article to storage.
	// For articles with Id=0, generates a new ID from sequence.
	// Sets CreatedAt and defaults Status to draft when unset.
	// Returns the article with generated ID and timestamp populated.
	// Returns ErrDuplicateURL if an article with the same URL already
	// exists, including when two concurrent inserts race on one URL.
	InsertArticle(ctx context.Context, article *core.Article) (*core.Article, error)

	// FindArticleByURL retrieves the article stored under the given URL.
	// Returns (nil, nil) if no article with that URL exists.
	FindArticleByURL(ctx context.Context, url string) (*core.Article, error)

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id core.ID) (*core.Article, error)

	// GetArticles retrieves multiple articles by their IDs.
	// Returns only the articles that exist (no error for missing articles).
	GetArticles(ctx context.Context, ids ...core.ID) ([]*core.Article, error)

	// UpdateArticle updates an existing article.
	// Returns ErrNotFound if the article doesn't exist.
	// Returns ErrDuplicateURL when the update would take over another
	// article's URL.
	UpdateArticle(ctx context.Context, article *core.Article) (*core.Article, error)

	// DeleteArticle removes an article and its indices by ID.
	// Returns ErrNotFound if the article doesn't exist.
	DeleteArticle(ctx context.Context, id core.ID) error

	// GetArticlesBySource retrieves all articles from a named feed source,
	// ordered by ID ascending.
	GetArticlesBySource(ctx context.Context, source string) ([]*core.Article, error)

	// GetAllArticles retrieves every stored article, ordered by ID ascending.
	GetAllArticles(ctx context.Context) ([]*core.Article, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)
}
