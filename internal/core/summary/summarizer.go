package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/newsbrief/internal/llm"
)

// Sentinels substituted when a genuine summary could not be obtained.
// Callers rely on these exact strings; they are part of the contract.
const (
	SentinelUnavailable = "Summary unavailable"
	SentinelRateLimited = "Summary unavailable (rate limited)"
	SentinelFailed      = "Summary generation failed"
)

// DefaultPrompt is the instruction framing prepended to the article
// text. Overridable through config for prompt tuning.
const DefaultPrompt = "You are a professional news summarizer. Your task is to create concise, " +
	"informative one-paragraph summaries of news articles. Focus on the key facts, main events, " +
	"and important context. Keep summaries clear, accurate, and engaging. Avoid repetition and " +
	"ensure the summary captures the essence of the story."

// DefaultBackoff is the wait before the single quota-error retry.
const DefaultBackoff = 60 * time.Second

// SleepFunc blocks for d or until ctx is done. Tests inject a
// zero-duration implementation.
type SleepFunc func(ctx context.Context, d time.Duration)

// ContextSleep is the production SleepFunc.
func ContextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Summarizer obtains an AI summary for article text. Every failure
// path degrades to a sentinel string; Summarize never propagates an
// error to the caller.
type Summarizer struct {
	LLM     llm.Client
	Prompt  string
	Backoff time.Duration
	Sleep   SleepFunc
	Logger  *zap.Logger
}

func NewSummarizer(client llm.Client, prompt string, backoff time.Duration, logger *zap.Logger) *Summarizer {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		LLM:     client,
		Prompt:  prompt,
		Backoff: backoff,
		Sleep:   ContextSleep,
		Logger:  logger,
	}
}

// Summarize returns the trimmed summary text, or a sentinel:
//   - empty response           -> SentinelUnavailable
//   - quota error, one retry
//     after Backoff; retry
//     errored or empty         -> SentinelRateLimited
//   - any other error          -> SentinelFailed
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	prompt := s.buildPrompt(text)

	out, err := s.LLM.Generate(ctx, prompt)
	if err == nil {
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			return trimmed
		}
		s.Logger.Warn("llm returned empty response")
		return SentinelUnavailable
	}

	if errors.Is(err, llm.ErrRateLimited) {
		s.Logger.Warn("rate limit reached, backing off before retry",
			zap.Duration("backoff", s.Backoff))
		s.Sleep(ctx, s.Backoff)

		out, err = s.LLM.Generate(ctx, prompt)
		if err == nil {
			if trimmed := strings.TrimSpace(out); trimmed != "" {
				return trimmed
			}
		} else {
			s.Logger.Error("retry failed", zap.Error(err))
		}
		return SentinelRateLimited
	}

	s.Logger.Error("failed to generate summary", zap.Error(err))
	return SentinelFailed
}

func (s *Summarizer) buildPrompt(text string) string {
	return fmt.Sprintf("%s\n\nArticle text:\n%s\n\nProvide a concise summary:", s.Prompt, text)
}
