package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/newsbrief/internal/llm"
)

func quotaErr() error {
	return fmt.Errorf("%w: 429 quota exceeded", llm.ErrRateLimited)
}

// newTestSummarizer wires a scripted client with a recording,
// zero-duration sleep.
func newTestSummarizer(mock *MockLLMClient) (*Summarizer, *[]time.Duration) {
	slept := &[]time.Duration{}
	s := NewSummarizer(mock, "", time.Minute, nil)
	s.Sleep = func(ctx context.Context, d time.Duration) {
		*slept = append(*slept, d)
	}
	return s, slept
}

func TestSummarizeSuccessTrimsResponse(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{"  A tidy summary.\n"}}
	s, slept := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "article text")

	assert.Equal(t, "A tidy summary.", got)
	assert.Equal(t, 1, mock.Calls)
	assert.Empty(t, *slept)
}

func TestSummarizePromptFraming(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{"ok"}}
	s, _ := newTestSummarizer(mock)

	s.Summarize(context.Background(), "the article body")

	assert.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], DefaultPrompt)
	assert.Contains(t, mock.Prompts[0], "Article text:\nthe article body")
	assert.Contains(t, mock.Prompts[0], "Provide a concise summary:")
}

func TestSummarizeEmptyResponse(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{"   \n"}}
	s, _ := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "text")

	assert.Equal(t, SentinelUnavailable, got)
	assert.Equal(t, 1, mock.Calls)
}

func TestSummarizeNonQuotaErrorDoesNotRetry(t *testing.T) {
	mock := &MockLLMClient{Errs: []error{errors.New("boom")}}
	s, slept := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "text")

	assert.Equal(t, SentinelFailed, got)
	assert.Equal(t, 1, mock.Calls)
	assert.Empty(t, *slept)
}

func TestSummarizeQuotaRetrySucceeds(t *testing.T) {
	mock := &MockLLMClient{
		Errs:      []error{quotaErr(), nil},
		Responses: []string{"", "Recovered summary"},
	}
	s, slept := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "text")

	assert.Equal(t, "Recovered summary", got)
	assert.Equal(t, 2, mock.Calls)
	assert.Equal(t, []time.Duration{time.Minute}, *slept)
}

func TestSummarizeQuotaRetryFails(t *testing.T) {
	mock := &MockLLMClient{
		Errs: []error{quotaErr(), quotaErr()},
	}
	s, _ := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "text")

	assert.Equal(t, SentinelRateLimited, got)
	assert.Equal(t, 2, mock.Calls)
}

func TestSummarizeQuotaRetryEmpty(t *testing.T) {
	mock := &MockLLMClient{
		Errs:      []error{quotaErr(), nil},
		Responses: []string{"", "  "},
	}
	s, _ := newTestSummarizer(mock)

	got := s.Summarize(context.Background(), "text")

	assert.Equal(t, SentinelRateLimited, got)
	assert.Equal(t, 2, mock.Calls)
}

func TestSummarizeRetriesAtMostOnce(t *testing.T) {
	mock := &MockLLMClient{
		Errs: []error{quotaErr(), quotaErr(), quotaErr()},
	}
	s, slept := newTestSummarizer(mock)

	s.Summarize(context.Background(), "text")

	assert.Equal(t, 2, mock.Calls)
	assert.Len(t, *slept, 1)
}

func TestNewSummarizerDefaults(t *testing.T) {
	s := NewSummarizer(&MockLLMClient{}, "", 0, nil)

	assert.Equal(t, DefaultPrompt, s.Prompt)
	assert.Equal(t, DefaultBackoff, s.Backoff)
	assert.NotNil(t, s.Logger)
	assert.NotNil(t, s.Sleep)
}
