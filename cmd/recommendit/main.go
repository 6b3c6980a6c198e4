// Copyright 2025 Poiesic Systems
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/ai/openai"
	"github.com/poiesic/recommendit/catalog"
	"github.com/poiesic/recommendit/core"
	"github.com/poiesic/recommendit/index"
	"github.com/poiesic/recommendit/recommend"
	"github.com/poiesic/recommendit/search"
	"github.com/poiesic/recommendit/server"
	"github.com/poiesic/recommendit/webtext"
)

func main() {
	app := &cli.App{
		Name:  "recommendit",
		Usage: "Assessment recommendation service for hiring workflows",
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
				Name:   "serve",
				Usage:  "Serve recommendations over HTTP",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "HTTP listen address",
						Value: ":8080",
					},
				}, engineFlags()...),
			},
			{
				Name:   "recommend",
				Usage:  "Answer a single recommendation query and print JSON",
				Action: recommendCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text query describing the role",
					},
					&cli.StringFlag{
						Name:    "url",
						Aliases: []string{"u"},
						Usage:   "Job posting URL to analyze",
					},
					&cli.IntFlag{
						Name:  "max-duration",
						Usage: "Only return assessments at most this many minutes long",
					},
					&cli.StringSliceFlag{
						Name:  "test-type",
						Usage: "Restrict results to these test types (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "remote-only",
						Usage: "Only return assessments that support remote testing",
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of recommendations to return",
						Value:   10,
					},
				}, engineFlags()...),
			},
			{
				Name:   "stats",
				Usage:  "Print catalog statistics as JSON",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the assessment catalog CSV file",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are the flags shared by every command that builds an engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "catalog",
			Aliases:  []string{"c"},
			Usage:    "Path to the assessment catalog CSV file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "extractor-host",
			Usage: "Requirement-extraction service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Requirement-extraction model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for the on-disk embedding cache (empty disables caching)",
		},
		&cli.BoolFlag{
			Name:  "disable-ai",
			Usage: "Skip AI services entirely and use lexical ranking only",
		},
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(engine, c.String("listen"))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	req := &recommend.Request{
		Query:      c.String("query"),
		URL:        c.String("url"),
		TestTypes:  c.StringSlice("test-type"),
		RemoteOnly: c.Bool("remote-only"),
		TopK:       c.Int("top-k"),
	}
	if c.IsSet("max-duration") {
		maxDuration := c.Int("max-duration")
		req.MaxDuration = &maxDuration
	}

	resp, err := engine.Recommend(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func statsCommand(c *cli.Context) error {
	records, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return printJSON(catalog.Stats(records))
}

// buildEngine loads the catalog and assembles the recommendation engine.
// A missing or unreadable catalog is fatal. AI setup failures are not:
// the engine downgrades to lexical ranking and heuristic extraction.
func buildEngine(ctx context.Context, c *cli.Context) (*recommend.Engine, func(), error) {
	records, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("catalog loaded", "records", len(records))

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var provider ai.AIProvider
	if !c.Bool("disable-ai") {
		provider, err = newProvider(c)
		if err != nil {
			slog.Warn("AI provider unavailable, continuing without AI services", "err", err)
		} else {
			closers = append(closers, func() { provider.Close() })
		}
	}

	rankerOpts := buildSemanticIndex(ctx, c, records, provider, &closers)
	ranker, err := search.NewRanker(records, rankerOpts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	engineOpts := []recommend.Option{
		recommend.WithFetcher(webtext.NewFetcher()),
	}
	if provider != nil {
		engineOpts = append(engineOpts, recommend.WithExtractor(provider.RequirementExtractor()))
	}

	engine, err := recommend.NewEngine(records, ranker, engineOpts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slog.Info("engine ready",
		"semantic", engine.SemanticEnabled(),
		"ai", engine.AIEnabled())
	return engine, cleanup, nil
}

func newProvider(c *cli.Context) (ai.AIProvider, error) {
	extractorHost := c.String("extractor-host")
	if extractorHost == "" {
		extractorHost = c.String("embedding-host")
	}

	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorHost(extractorHost),
		ai.WithExtractorModel(c.String("extractor-model")),
	)
	return openai.NewProvider(cfg)
}

// buildSemanticIndex embeds the catalog and returns the ranker options that
// enable semantic search. Any failure here returns no options, which leaves
// the ranker in lexical mode.
func buildSemanticIndex(ctx context.Context, c *cli.Context, records []*core.Assessment, provider ai.AIProvider, closers *[]func()) []search.Option {
	if provider == nil {
		return nil
	}

	var indexOpts []index.Option
	if dir := c.String("cache-dir"); dir != "" {
		cache, err := index.OpenCache(dir)
		if err != nil {
			slog.Warn("embedding cache unavailable, building without cache", "dir", dir, "err", err)
		} else {
			*closers = append(*closers, func() { cache.Close() })
			// Host and model together identify the encoder, so switching
			// either invalidates the cached vectors.
			model := c.String("embedding-host") + " " + c.String("embedding-model")
			indexOpts = append(indexOpts, index.WithCache(cache, model))
		}
	}

	ix, err := index.Build(ctx, records, provider.Embedder(), indexOpts...)
	if err != nil {
		slog.Warn("catalog embedding failed, falling back to lexical ranking", "err", err)
		return nil
	}
	return []search.Option{search.WithSemanticIndex(ix, provider.Embedder())}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
