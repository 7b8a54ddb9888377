// Command digest performs a single fetch -> enrich -> persist run and
// writes a plain-text newsletter report.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/newsbrief/internal/config"
	"github.com/agenthands/newsbrief/internal/core/pipeline"
	"github.com/agenthands/newsbrief/internal/core/summary"
	"github.com/agenthands/newsbrief/internal/ingest"
	"github.com/agenthands/newsbrief/internal/llm"
	"github.com/agenthands/newsbrief/internal/report"
	"github.com/agenthands/newsbrief/internal/store"
)

func main() {
	cfgPath := flag.String("config", "config/config.toml", "path to TOML config")
	outPath := flag.String("out", "newsletter_articles.txt", "report output file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults", zap.Error(err))
		cfg = config.Default()
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if len(cfg.Feeds.URLs) == 0 {
		logger.Fatal("no feeds configured")
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize llm client", zap.Error(err))
	}

	summarizer := summary.NewSummarizer(
		llmClient,
		cfg.Summary.Prompt,
		cfg.Pipeline.RetryBackoff(),
		logger.Named("summarizer"),
	)
	processor := pipeline.NewProcessor(
		summarizer,
		cfg.Pipeline.MaxArticles,
		cfg.Pipeline.Pacing(),
		logger.Named("pipeline"),
	)

	fetcher := ingest.NewFetcher(nil, logger.Named("ingest"))
	raw := fetcher.FetchAll(ctx, cfg.Feeds.URLs)
	if len(raw) == 0 {
		logger.Fatal("no articles retrieved from feeds")
	}

	res := processor.Process(ctx, raw)

	if cfg.Mongo.URI != "" {
		articleStore, err := store.NewArticleStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
		defer articleStore.Close(ctx)

		if err := articleStore.SaveAll(ctx, res.RunID, res.Articles); err != nil {
			logger.Error("failed to persist articles", zap.Error(err))
		}
	}

	if err := report.WriteFile(*outPath, res); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}

	logger.Info("digest complete",
		zap.String("run_id", res.RunID),
		zap.Int("articles", len(res.Articles)),
		zap.String("report", *outPath))
}
