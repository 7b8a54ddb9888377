// Package pipeline orchestrates one enrichment run: acceptance
// (required fields, dedup, volume cap), scoring, paced summarization,
// and a stable sort by relevance.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/newsbrief/internal/core/model"
	"github.com/agenthands/newsbrief/internal/core/score"
	"github.com/agenthands/newsbrief/internal/core/summary"
)

// DefaultMaxArticles caps a run when no explicit limit is configured.
const DefaultMaxArticles = 50

// DefaultPacing is the inter-call delay between summarizations,
// sized for a shared 10-requests-per-minute budget.
const DefaultPacing = 6 * time.Second

// Summarizer produces an AI summary or a sentinel string; it never
// fails. Satisfied by *summary.Summarizer.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Processor runs batches strictly sequentially: one article at a time,
// in input order, at most one summarization call in flight.
type Processor struct {
	Summarizer  Summarizer
	MaxArticles int
	Pacing      time.Duration
	Sleep       summary.SleepFunc
	Logger      *zap.Logger
}

func NewProcessor(summarizer Summarizer, maxArticles int, pacing time.Duration, logger *zap.Logger) *Processor {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	if pacing < 0 {
		pacing = DefaultPacing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		Summarizer:  summarizer,
		MaxArticles: maxArticles,
		Pacing:      pacing,
		Sleep:       summary.ContextSleep,
		Logger:      logger,
	}
}

// Result is one run's output. Articles is ordered by score descending;
// equal scores keep their acceptance order.
type Result struct {
	RunID    string                  `json:"run_id"`
	Articles []model.EnrichedArticle `json:"articles"`
	Stats    model.RunStats          `json:"stats"`
}

// Process enriches one batch. No input error aborts the run: invalid
// and duplicate records are skipped, scoring faults fall back to the
// default score, and summarization failures degrade to sentinel text.
// An empty batch returns immediately without any external call.
func (p *Processor) Process(ctx context.Context, raw []model.RawArticle) Result {
	res := Result{RunID: uuid.NewString()}
	res.Stats.Input = len(raw)

	if len(raw) == 0 {
		p.Logger.Warn("no articles provided for processing")
		return res
	}

	accepted := p.accept(raw, &res.Stats)

	enriched := make([]model.EnrichedArticle, 0, len(accepted))
	for i, article := range accepted {
		art, ok := p.enrichOne(ctx, article)
		if !ok {
			continue
		}
		enriched = append(enriched, art)

		if i < len(accepted)-1 {
			p.Sleep(ctx, p.Pacing)
		}
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Score > enriched[j].Score
	})
	res.Articles = enriched

	p.Logger.Info("run complete",
		zap.String("run_id", res.RunID),
		zap.Int("input", res.Stats.Input),
		zap.Int("accepted", res.Stats.Accepted),
		zap.Int("rejected", res.Stats.Rejected()))
	return res
}

// accept is the single left-to-right acceptance pass: required fields
// present, link unseen this run, count below the cap. Reaching the cap
// halts consumption; later candidates are not considered.
func (p *Processor) accept(raw []model.RawArticle, stats *model.RunStats) []model.RawArticle {
	seen := make(map[string]struct{}, len(raw))
	accepted := make([]model.RawArticle, 0, p.MaxArticles)

	for _, article := range raw {
		if len(accepted) >= p.MaxArticles {
			p.Logger.Info("reached article limit, stopping acceptance",
				zap.Int("max_articles", p.MaxArticles))
			break
		}
		if !article.Valid() {
			stats.Invalid++
			continue
		}
		if _, dup := seen[article.Link]; dup {
			stats.Duplicates++
			p.Logger.Debug("skipping duplicate article", zap.String("link", article.Link))
			continue
		}
		seen[article.Link] = struct{}{}
		accepted = append(accepted, article)
	}

	stats.Accepted = len(accepted)
	return accepted
}

// enrichOne scores and summarizes a single accepted article. A panic
// anywhere in the article's processing skips it without touching the
// rest of the batch.
func (p *Processor) enrichOne(ctx context.Context, article model.RawArticle) (art model.EnrichedArticle, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("article processing panicked, skipping",
				zap.String("link", article.Link), zap.Any("panic", r))
			ok = false
		}
	}()

	art = model.EnrichedArticle{
		RawArticle: article,
		Score:      score.SafeScore(article),
	}
	p.Logger.Info("processing article",
		zap.String("title", article.Title),
		zap.Float64("score", art.Score))

	art.AISummary = p.Summarizer.Summarize(ctx, article.Summary)
	return art, true
}
