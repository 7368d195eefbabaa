package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gacetalabs/gaceta/ai"
	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/storage"
)

// ArticleIndexer receives newly stored articles for semantic indexing.
type ArticleIndexer interface {
	AddArticle(ctx context.Context, article *core.Article) error
}

// Feed pairs a feed URL with the human-readable source name its articles
// are attributed to.
type Feed struct {
	URL    string
	Source string
}

// Orchestrator drives the ingestion pipeline: fetch feed entries, drop
// already-stored URLs, rewrite the rest through the generator (falling back
// to translation when generation degrades), persist drafts and index them.
type Orchestrator struct {
	articles   storage.ArticleRepository
	index      ArticleIndexer
	generator  ai.Generator
	translator ai.Translator
	feeds      FeedSource
	language   string
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent feed processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithFeedSource sets a custom feed source, mainly for tests.
func WithFeedSource(feeds FeedSource) Option {
	return func(o *Orchestrator) error {
		if feeds == nil {
			return errors.New("nil feed source")
		}
		o.feeds = feeds
		return nil
	}
}

// WithLanguage sets the target language for rewriting and the translation
// fallback. Default is "es".
func WithLanguage(language string) Option {
	return func(o *Orchestrator) error {
		language = strings.ToLower(strings.TrimSpace(language))
		if language == "" {
			return errors.New("empty language")
		}
		o.language = language
		return nil
	}
}

// NewOrchestrator creates a new ingestion orchestrator.
func NewOrchestrator(
	articles storage.ArticleRepository,
	index ArticleIndexer,
	provider ai.AIProvider,
	opts ...Option,
) (*Orchestrator, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		articles:   articles,
		index:      index,
		generator:  provider.Generator(),
		translator: provider.Translator(),
		feeds:      NewFeedSource(),
		language:   "es",
		pool:       pool,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Ingest fetches one feed and processes its entries in order. It returns the
// number of articles newly stored. Entries that fail individually are logged
// and skipped; only a fetch failure is returned as an error.
func (o *Orchestrator) Ingest(ctx context.Context, feedURL, source string) (int, error) {
	entries, err := o.feeds.Fetch(ctx, feedURL)
	if err != nil {
		return 0, err
	}

	o.logger.Info("processing feed", "url", feedURL, "source", source, "entries", len(entries))

	count := 0
	for _, entry := range entries {
		if entry.Link == "" {
			continue
		}

		existing, err := o.articles.FindArticleByURL(ctx, entry.Link)
		if err != nil {
			o.logger.Error("error checking for existing article", "url", entry.Link, "err", err)
			continue
		}
		if existing != nil {
			o.logger.Debug("skipping known article", "url", entry.Link)
			continue
		}

		article, err := o.buildArticle(ctx, entry, source)
		if err != nil {
			o.logger.Warn("skipping entry", "url", entry.Link, "err", err)
			continue
		}

		inserted, err := o.articles.InsertArticle(ctx, article)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateURL) {
				o.logger.Debug("article inserted concurrently", "url", entry.Link)
			} else {
				o.logger.Error("error storing article", "url", entry.Link, "err", err)
			}
			continue
		}
		count++

		if err := o.index.AddArticle(ctx, inserted); err != nil {
			o.logger.Error("article stored but not indexed", "id", inserted.Id, "err", err)
		}
	}

	o.logger.Info("feed processed", "url", feedURL, "new_articles", count)
	return count, nil
}

// IngestAll processes multiple feeds concurrently on the worker pool and
// returns the total number of newly stored articles. Per-feed errors are
// joined into the returned error; feeds that succeed still contribute to
// the total.
func (o *Orchestrator) IngestAll(ctx context.Context, feeds []Feed) (int, error) {
	var (
		wg    sync.WaitGroup
		total atomic.Int64
		mu    sync.Mutex
		errs  []error
	)

	for _, feed := range feeds {
		feed := feed
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			count, err := o.Ingest(ctx, feed.URL, feed.Source)
			total.Add(int64(count))
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	return int(total.Load()), errors.Join(errs...)
}

// buildArticle turns a feed entry into a draft article, running the
// generator and, when generation degrades, the translation fallback.
func (o *Orchestrator) buildArticle(ctx context.Context, entry Entry, source string) (*core.Article, error) {
	generated, err := o.generator.GenerateArticle(ctx, entry.Title, entry.Summary)
	if err != nil {
		return nil, err
	}

	article := &core.Article{
		URL:             entry.Link,
		OriginalContent: entry.Summary,
		Source:          source,
		Status:          core.StatusDraft,
		PublishedAt:     entry.PublishedAt,
	}

	// Future-dated feed timestamps fail validation; treat them as unset.
	if article.PublishedAt.After(time.Now()) {
		o.logger.Debug("dropping future publish time", "url", entry.Link, "published_at", entry.PublishedAt)
		article.PublishedAt = time.Time{}
	}

	if generated.Degraded(entry.Title) {
		title, err := o.translator.Translate(ctx, entry.Title, o.language)
		if err != nil {
			return nil, err
		}
		summary, err := o.translator.Translate(ctx, entry.Summary, o.language)
		if err != nil {
			return nil, err
		}
		article.Title = title
		article.Content = summary
		article.Summary = summary
		return article, nil
	}

	article.Title = generated.Title
	article.Content = generated.Content
	article.Summary = core.TruncateRunes(generated.Content, 200) + "..."
	article.Tags = strings.Join(generated.Tags, ",")
	return article, nil
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
