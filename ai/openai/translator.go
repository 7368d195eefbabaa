package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gacetalabs/gaceta/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Translator implements ai.Translator using OpenAI-compatible chat APIs.
// Unlike the generator, its failures are real errors: the translation
// fallback is the last resort for an entry, so there is nothing further to
// degrade to.
type Translator struct {
	client llms.Model
	logger *slog.Logger
}

// newTranslator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranslator(config *ai.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken("none"),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Translator{
		client: client,
		logger: slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns the ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	return newTranslator(config)
}

// Translate returns text translated into the target language.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildTranslatePrompt(targetLanguage)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("translation call failed", "target", targetLanguage, "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
