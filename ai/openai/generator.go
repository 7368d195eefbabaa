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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gacetalabs/gaceta/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client   llms.Model
	language string
	logger   *slog.Logger
}

// generatedPayload matches the JSON object the generation prompt asks for.
type generatedPayload struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Tags    tagList `json:"tags"`
}

// tagList tolerates both shapes providers produce for tags: a JSON array of
// strings or a single comma-joined string. Either way the decoded value is a
// canonical string slice.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var asSlice []string
	if err := json.Unmarshal(data, &asSlice); err == nil {
		*t = normalizeTags(asSlice)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*t = normalizeTags(strings.Split(asString, ","))
		return nil
	}

	return fmt.Errorf("tags must be a string array or a comma-joined string, got %s", string(data))
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
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

	return &Generator{
		client:   client,
		language: config.Language,
		logger:   slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new article generator using the provided configuration.
//
// Returns the ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateArticle rewrites a feed entry into an original article. Per the
// collaborator contract, ordinary provider failures do not surface as errors:
// the original title and summary come back unchanged, which the orchestrator
// detects through the title-identity check. Only context cancellation is
// returned as an error.
func (g *Generator) GenerateArticle(ctx context.Context, title, summary string) (*ai.GeneratedArticle, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildGeneratorPrompt(g.language)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Original title: " + title + "\nSummary/context: " + summary),
			},
		},
	}

	degraded := &ai.GeneratedArticle{Title: title, Content: summary}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.7), llms.WithJSONMode())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			g.logger.Warn("generation call failed, returning degraded result", "attempt", attempt+1, "err", err)
			return degraded, nil
		}

		if len(response.Choices) < 1 {
			g.logger.Debug("no choices returned from model")
			return degraded, nil
		}

		generated, err := parseGeneratedArticle(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			g.logger.Warn("error parsing generation response", "attempt", attempt+1, "err", err)
			continue
		}

		// A payload with missing pieces is as good as no rewrite.
		if generated.Title == "" || generated.Content == "" {
			g.logger.Warn("generation response missing title or content, returning degraded result")
			return degraded, nil
		}

		return generated, nil
	}

	g.logger.Error("failed to parse generation response after retries", "err", lastErr)
	return degraded, nil
}

// RefineContent rewrites article content under an editor instruction.
func (g *Generator) RefineContent(ctx context.Context, content, instruction string) (string, error) {
	text, err := g.chat(ctx, buildRefinePrompt(instruction), content, 0.3)
	if err != nil {
		g.logger.Error("refine call failed", "err", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// AuditContent reviews rewritten content against its source text.
func (g *Generator) AuditContent(ctx context.Context, content, originalContent string) (string, error) {
	text, err := g.chat(ctx, buildAuditPrompt(originalContent), content, 0.0)
	if err != nil {
		g.logger.Error("audit call failed", "err", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// chat performs a single system+user round trip and returns the raw text.
func (g *Generator) chat(ctx context.Context, systemPrompt, userText string, temperature float64) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("no choices returned from model")
	}
	return response.Choices[0].Content, nil
}

// parseGeneratedArticle decodes the model's JSON answer, tolerating markdown
// code fences and the malformed-key faults repairJSON knows about.
func parseGeneratedArticle(raw string) (*ai.GeneratedArticle, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = repairJSON(text)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}

	return &ai.GeneratedArticle{
		Title:   strings.TrimSpace(payload.Title),
		Content: strings.TrimSpace(payload.Content),
		Tags:    payload.Tags,
	}, nil
}
