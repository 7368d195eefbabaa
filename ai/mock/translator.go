package mock

import "context"

// MockTranslator is a test double for ai.Translator.
// It allows custom behavior injection via function fields.
type MockTranslator struct {
	// TranslateFunc is called by Translate if set.
	// If nil, uses default deterministic behavior.
	TranslateFunc func(ctx context.Context, text, targetLanguage string) (string, error)

	callCount int
}

// NewMockTranslator creates a mock translator with default deterministic
// behavior: the text comes back prefixed with the target language in
// brackets, so tests can tell translated output from the original.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate returns a marked translation of the text.
func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.callCount++

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, targetLanguage)
	}
	if text == "" {
		return "", nil
	}
	return "[" + targetLanguage + "] " + text, nil
}

// CallCount returns the number of times Translate was called.
func (m *MockTranslator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockTranslator) Reset() {
	m.callCount = 0
	m.TranslateFunc = nil
}
