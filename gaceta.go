// Copyright 2025 Gaceta Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gaceta

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gacetalabs/gaceta/ai"
	"github.com/gacetalabs/gaceta/ai/openai"
	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/ingestion"
	"github.com/gacetalabs/gaceta/reindex"
	"github.com/gacetalabs/gaceta/semindex"
	"github.com/gacetalabs/gaceta/storage"
	"github.com/gacetalabs/gaceta/storage/badger"
)

// Newsroom bundles the article store, the semantic index and the AI
// provider behind one lifecycle. It is the entry point library consumers
// and the CLI share.
type Newsroom struct {
	backend  *badger.Backend
	articles storage.ArticleRepository
	index    *semindex.Index
	provider ai.AIProvider
	logger   *slog.Logger
}

// NewsroomOption configures a Newsroom.
type NewsroomOption func(*newsroomOptions)

type newsroomOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	embeddingDim int
}

// WithAIConfig sets the AI configuration used to build the default
// OpenAI-compatible provider. Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) NewsroomOption {
	return func(o *newsroomOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, mainly for tests. The
// newsroom takes ownership and closes it on Close.
func WithProvider(provider ai.AIProvider) NewsroomOption {
	return func(o *newsroomOptions) {
		o.provider = provider
	}
}

// WithEmbeddingDim sets the semantic index dimension. Zero selects the
// index default. Changing the dimension of an existing index requires a
// rebuild.
func WithEmbeddingDim(dim int) NewsroomOption {
	return func(o *newsroomOptions) {
		o.embeddingDim = dim
	}
}

// Open creates or opens a newsroom rooted at dataDir. The article store
// lives under dataDir/articles and the semantic index under dataDir/index.
func Open(dataDir string, opts ...NewsroomOption) (*Newsroom, error) {
	options := &newsroomOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "articles"), false)
	if err != nil {
		provider.Close()
		return nil, err
	}

	articles, err := badger.NewArticleRepository(backend)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	index, err := semindex.Open(filepath.Join(dataDir, "index"), options.embeddingDim, provider.Embedder())
	if err != nil {
		articles.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &Newsroom{
		backend:  backend,
		articles: articles,
		index:    index,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider, the article repository and the backend.
func (n *Newsroom) Close() error {
	if err := n.provider.Close(); err != nil {
		n.logger.Error("error closing AI provider", "err", err)
	}

	if err := n.articles.Close(); err != nil {
		n.logger.Error("error closing article repository", "err", err)
		return err
	}

	if err := n.backend.Close(); err != nil {
		n.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Articles returns the article repository.
func (n *Newsroom) Articles() storage.ArticleRepository {
	return n.articles
}

// Index returns the semantic index.
func (n *Newsroom) Index() *semindex.Index {
	return n.index
}

// Provider returns the AI provider.
func (n *Newsroom) Provider() ai.AIProvider {
	return n.provider
}

// NewOrchestrator creates an ingestion orchestrator wired to this newsroom.
func (n *Newsroom) NewOrchestrator(opts ...ingestion.Option) (*ingestion.Orchestrator, error) {
	return ingestion.NewOrchestrator(n.articles, n.index, n.provider, opts...)
}

// NewRebuilder creates an index rebuilder wired to this newsroom.
// progress: where to write progress output (typically os.Stderr)
func (n *Newsroom) NewRebuilder(config *reindex.Config, progress io.Writer) (*reindex.Rebuilder, error) {
	return reindex.NewRebuilder(n.articles, n.index, config, progress)
}

// Search returns up to limit semantic matches for the query.
func (n *Newsroom) Search(ctx context.Context, query string, limit int) ([]semindex.Match, error) {
	return n.index.Search(ctx, query, limit)
}

// Refine rewrites an article's content under an editor instruction,
// persists the result, and returns the refined text.
func (n *Newsroom) Refine(ctx context.Context, id core.ID, instruction string) (string, error) {
	article, err := n.articles.GetArticle(ctx, id)
	if err != nil {
		return "", err
	}
	refined, err := n.provider.Generator().RefineContent(ctx, article.Content, instruction)
	if err != nil {
		return "", err
	}
	article.Content = refined
	if _, err := n.articles.UpdateArticle(ctx, article); err != nil {
		return "", fmt.Errorf("persisting refined content: %w", err)
	}
	return refined, nil
}

// Audit reviews an article's rewritten content against the original source
// text it was generated from and returns the editorial report.
func (n *Newsroom) Audit(ctx context.Context, id core.ID) (string, error) {
	article, err := n.articles.GetArticle(ctx, id)
	if err != nil {
		return "", err
	}
	return n.provider.Generator().AuditContent(ctx, article.Content, article.OriginalContent)
}

// Publish moves an article to the published status.
func (n *Newsroom) Publish(ctx context.Context, id core.ID) (*core.Article, error) {
	return n.setStatus(ctx, id, core.StatusPublished)
}

// Archive moves an article to the archived status.
func (n *Newsroom) Archive(ctx context.Context, id core.ID) (*core.Article, error) {
	return n.setStatus(ctx, id, core.StatusArchived)
}

func (n *Newsroom) setStatus(ctx context.Context, id core.ID, status core.ArticleStatus) (*core.Article, error) {
	article, err := n.articles.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status == status {
		return article, nil
	}
	article.Status = status
	return n.articles.UpdateArticle(ctx, article)
}
