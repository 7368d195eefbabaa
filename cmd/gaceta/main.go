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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/gacetalabs/gaceta"
	"github.com/gacetalabs/gaceta/ai"
	"github.com/gacetalabs/gaceta/core"
	"github.com/gacetalabs/gaceta/ingestion"
	"github.com/gacetalabs/gaceta/reindex"
)

func main() {
	// Optional .env for local development; missing files are fine.
	_ = godotenv.Load()

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	dataFlag := &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to the newsroom data directory",
		EnvVars:  []string{"GACETA_DATA_DIR"},
		Required: true,
	}
	aiFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL",
			EnvVars: []string{"GACETA_AI_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"GACETA_EMBEDDING_MODEL"},
			Value:   "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "generator-model",
			Usage:   "Generator model name",
			EnvVars: []string{"GACETA_GENERATOR_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "language",
			Usage:   "Target language for rewriting and translation (ISO 639-1)",
			EnvVars: []string{"GACETA_LANGUAGE"},
			Value:   "es",
		},
	}

	return &cli.App{
		Name:  "gaceta",
		Usage: "AI-assisted news ingestion and semantic search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch feeds and store rewritten articles",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					dataFlag,
					&cli.StringSliceFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Feed URL to ingest (repeatable)",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Source name for the feed at the same position (defaults to the feed URL)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of feeds processed concurrently",
						Value: 2,
					},
				}, aiFlags...),
			},
			{
				Name:      "search",
				Usage:     "Semantic search over stored articles",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					dataFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				}, aiFlags...),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the semantic index from stored articles",
				Action: reindexCommand,
				Flags: append([]cli.Flag{
					dataFlag,
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N articles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, aiFlags...),
			},
			{
				Name:      "refine",
				Usage:     "Rewrite an article's content under an instruction",
				ArgsUsage: "<instruction>",
				Action:    refineCommand,
				Flags:     append([]cli.Flag{dataFlag, idFlag()}, aiFlags...),
			},
			{
				Name:   "audit",
				Usage:  "Audit an article's content against its original source text",
				Action: auditCommand,
				Flags:  append([]cli.Flag{dataFlag, idFlag()}, aiFlags...),
			},
			{
				Name:   "publish",
				Usage:  "Mark an article as published",
				Action: publishCommand,
				Flags:  append([]cli.Flag{dataFlag, idFlag()}, aiFlags...),
			},
			{
				Name:   "archive",
				Usage:  "Mark an article as archived",
				Action: archiveCommand,
				Flags:  append([]cli.Flag{dataFlag, idFlag()}, aiFlags...),
			},
			{
				Name:   "list",
				Usage:  "List stored articles",
				Action: listCommand,
				Flags: append([]cli.Flag{
					dataFlag,
					&cli.StringFlag{
						Name:  "from",
						Usage: "Only list articles from this source",
					},
				}, aiFlags...),
			},
		},
	}
}

func idFlag() *cli.Uint64Flag {
	return &cli.Uint64Flag{
		Name:     "id",
		Usage:    "Article ID",
		Required: true,
	}
}

func openNewsroom(c *cli.Context) (*gaceta.Newsroom, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithLanguage(c.String("language")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	nr, err := gaceta.Open(c.String("data"), gaceta.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open newsroom: %w", err)
	}
	return nr, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	feedURLs := c.StringSlice("feed")
	sources := c.StringSlice("source")
	if len(sources) > len(feedURLs) {
		return fmt.Errorf("more --source values than --feed values")
	}

	feeds := make([]ingestion.Feed, len(feedURLs))
	for i, url := range feedURLs {
		source := url
		if i < len(sources) {
			source = sources[i]
		}
		feeds[i] = ingestion.Feed{URL: url, Source: source}
	}

	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	orch, err := nr.NewOrchestrator(
		ingestion.WithLanguage(c.String("language")),
		ingestion.WithPoolSize(c.Int("workers")),
	)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orch.Release()

	total, err := orch.IngestAll(ctx, feeds)
	fmt.Printf("Stored %d new articles from %d feeds\n", total, len(feeds))
	if err != nil {
		return fmt.Errorf("ingestion finished with errors: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	matches, err := nr.Search(context.Background(), query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, match := range matches {
		meta := match.Metadata
		fmt.Printf("%d. [%d] %s (distance %.4f)\n", i+1, match.ArticleID, meta.Title, match.Distance)
		fmt.Printf("   %s | %s | %s\n", meta.Source, meta.PublishedAt, meta.URL)
		fmt.Printf("   %s\n", meta.Snippet)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	rebuilder, err := nr.NewRebuilder(config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create rebuilder: %w", err)
	}

	if err := rebuilder.Run(context.Background()); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func refineCommand(c *cli.Context) error {
	instruction := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if instruction == "" {
		return fmt.Errorf("a refinement instruction is required")
	}

	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	refined, err := nr.Refine(context.Background(), core.ID(c.Uint64("id")), instruction)
	if err != nil {
		return fmt.Errorf("refinement failed: %w", err)
	}

	fmt.Println(refined)
	return nil
}

func auditCommand(c *cli.Context) error {
	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	report, err := nr.Audit(context.Background(), core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Println(report)
	return nil
}

func publishCommand(c *cli.Context) error {
	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	article, err := nr.Publish(context.Background(), core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Printf("Article %d is now %s: %s\n", article.Id, article.Status, article.Title)
	return nil
}

func archiveCommand(c *cli.Context) error {
	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	article, err := nr.Archive(context.Background(), core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("archive failed: %w", err)
	}

	fmt.Printf("Article %d is now %s: %s\n", article.Id, article.Status, article.Title)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	nr, err := openNewsroom(c)
	if err != nil {
		return err
	}
	defer nr.Close()

	var articles []*core.Article
	if source := c.String("from"); source != "" {
		articles, err = nr.Articles().GetArticlesBySource(ctx, source)
	} else {
		articles, err = nr.Articles().GetAllArticles(ctx)
	}
	if err != nil {
		return fmt.Errorf("listing failed: %w", err)
	}

	if len(articles) == 0 {
		fmt.Println("No articles.")
		return nil
	}

	for _, article := range articles {
		published := "-"
		if !article.PublishedAt.IsZero() {
			published = article.PublishedAt.UTC().Format(time.RFC3339)
		}
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", article.Id, article.Status, published, article.Source, article.Title)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
