package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator rewrites syndicated news items into original articles.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateArticle rewrites a feed entry's title and summary into an
	// original article. Ordinary provider failures are never surfaced as
	// errors: on failure the implementation returns the input title and
	// summary unchanged, which callers detect with
	// GeneratedArticle.Degraded. The error return is reserved for context
	// cancellation and other caller-side conditions.
	GenerateArticle(ctx context.Context, title, summary string) (*GeneratedArticle, error)

	// RefineContent rewrites existing article content under an editor
	// instruction and returns the refined text.
	RefineContent(ctx context.Context, content, instruction string) (string, error)

	// AuditContent reviews rewritten article content against the original
	// source text and returns an editorial report. Pass an empty
	// originalContent to audit internal coherence only.
	AuditContent(ctx context.Context, content, originalContent string) (string, error)
}

// Translator translates text into a target language. It backs the fallback
// path taken when article generation is degraded.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// Translate returns text translated into the target language, given as
	// an ISO 639-1 code such as "es".
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, Generator and Translator
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the article rewriting service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Translator returns the translation service.
	// The returned Translator is safe for concurrent use.
	Translator() Translator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
