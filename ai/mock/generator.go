package mock

import (
	"context"

	"github.com/gacetalabs/gaceta/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateArticleFunc is called by GenerateArticle if set.
	// If nil, the default behavior simulates a successful rewrite.
	GenerateArticleFunc func(ctx context.Context, title, summary string) (*ai.GeneratedArticle, error)

	// RefineContentFunc is called by RefineContent if set.
	RefineContentFunc func(ctx context.Context, content, instruction string) (string, error)

	// AuditContentFunc is called by AuditContent if set.
	AuditContentFunc func(ctx context.Context, content, originalContent string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator whose default behavior is a
// successful rewrite: the returned title always differs from the input title,
// so the orchestrator takes the generated path.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// NewDegradedGenerator creates a mock generator that always reports silent
// failure: it echoes the input title and summary, which callers detect via
// the title-identity check and answer with the translation fallback.
func NewDegradedGenerator() *MockGenerator {
	return &MockGenerator{
		GenerateArticleFunc: func(ctx context.Context, title, summary string) (*ai.GeneratedArticle, error) {
			return &ai.GeneratedArticle{Title: title, Content: summary}, nil
		},
	}
}

// GenerateArticle returns a deterministic rewrite of the input.
func (m *MockGenerator) GenerateArticle(ctx context.Context, title, summary string) (*ai.GeneratedArticle, error) {
	m.callCount++

	if m.GenerateArticleFunc != nil {
		return m.GenerateArticleFunc(ctx, title, summary)
	}

	return &ai.GeneratedArticle{
		Title:   "Síntesis: " + title,
		Content: "Artículo reescrito a partir de: " + summary,
		Tags:    []string{"noticias", "síntesis"},
	}, nil
}

// RefineContent returns the content with the instruction appended, unless
// overridden.
func (m *MockGenerator) RefineContent(ctx context.Context, content, instruction string) (string, error) {
	m.callCount++

	if m.RefineContentFunc != nil {
		return m.RefineContentFunc(ctx, content, instruction)
	}
	return content + "\n[refinado: " + instruction + "]", nil
}

// AuditContent returns a fixed report, unless overridden.
func (m *MockGenerator) AuditContent(ctx context.Context, content, originalContent string) (string, error) {
	m.callCount++

	if m.AuditContentFunc != nil {
		return m.AuditContentFunc(ctx, content, originalContent)
	}
	return "sin errores detectados", nil
}

// CallCount returns the number of times any method was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateArticleFunc = nil
	m.RefineContentFunc = nil
	m.AuditContentFunc = nil
}
