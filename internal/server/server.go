package server

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/newsbrief/internal/config"
	"github.com/agenthands/newsbrief/internal/core/model"
	"github.com/agenthands/newsbrief/internal/core/pipeline"
	"github.com/agenthands/newsbrief/internal/core/summary"
	"github.com/agenthands/newsbrief/internal/ingest"
	"github.com/agenthands/newsbrief/internal/llm"
	"github.com/agenthands/newsbrief/internal/store"
)

// Fetcher pulls raw articles from configured feeds.
type Fetcher interface {
	FetchAll(ctx context.Context, feedURLs []string) []model.RawArticle
}

// Runner executes one enrichment run.
type Runner interface {
	Process(ctx context.Context, raw []model.RawArticle) pipeline.Result
}

// Store persists and lists enriched articles. Optional: a Server with
// a nil Store still serves digests, it just doesn't persist them.
type Store interface {
	SaveAll(ctx context.Context, runID string, articles []model.EnrichedArticle) error
	List(ctx context.Context, limit int) ([]model.EnrichedArticle, error)
}

type Server struct {
	Fetcher Fetcher
	Runner  Runner
	Store   Store
	Feeds   []string
	Logger  *zap.Logger
}

// NewServer wires config, LLM client, fetcher, pipeline and the
// optional Mongo store. Env vars override file config.
func NewServer(logger *zap.Logger) (*Server, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults",
			zap.String("path", cfgPath), zap.Error(err))
		cfg = config.Default()
	}
	applyEnvOverrides(cfg)

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		return nil, err
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

	var articleStore Store
	if cfg.Mongo.URI != "" {
		s, err := store.NewArticleStore(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		articleStore = s
	} else {
		logger.Warn("no mongo uri configured, persistence disabled")
	}

	return &Server{
		Fetcher: ingest.NewFetcher(nil, logger.Named("ingest")),
		Runner:  processor,
		Store:   articleStore,
		Feeds:   cfg.Feeds.URLs,
		Logger:  logger,
	}, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		cfg.Mongo.Database = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/digest", s.RunDigest)
	r.GET("/articles", s.ListArticles)
	r.GET("/healthz", s.Health)

	return r
}

type DigestRequest struct {
	Feeds []string `json:"feeds"`
}

// RunDigest fetches the requested (or configured) feeds, runs the
// enrichment pipeline, persists the result when a store is configured,
// and returns the ranked articles.
func (s *Server) RunDigest(c *gin.Context) {
	var req DigestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}

	feeds := req.Feeds
	if len(feeds) == 0 {
		feeds = s.Feeds
	}
	if len(feeds) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No feeds configured"})
		return
	}

	ctx := c.Request.Context()
	raw := s.Fetcher.FetchAll(ctx, feeds)
	res := s.Runner.Process(ctx, raw)

	if s.Store != nil {
		if err := s.Store.SaveAll(ctx, res.RunID, res.Articles); err != nil {
			s.Logger.Error("failed to persist articles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist articles"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   res.RunID,
		"stats":    res.Stats,
		"articles": res.Articles,
	})
}

func (s *Server) ListArticles(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence not configured"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	articles, err := s.Store.List(c.Request.Context(), limit)
	if err != nil {
		s.Logger.Error("failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
