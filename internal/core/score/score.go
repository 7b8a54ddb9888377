// Package score computes a deterministic relevance score for an
// article from its own fields. No external calls, no side effects.
package score

import (
	"strings"
	"unicode/utf8"

	"github.com/agenthands/newsbrief/internal/core/model"
)

const (
	// BaseScore is the starting point before any bonus applies.
	BaseScore = 5.0
	// MinScore and MaxScore bound the final result.
	MinScore = 1.0
	MaxScore = 10.0

	// DefaultScore substitutes for articles whose scoring faulted.
	DefaultScore = 5.0
)

// Bonus weights, applied independently and summed onto BaseScore.
const (
	credibleSourceBonus = 2.0
	techSourceBonus     = 1.5
	longSummaryBonus    = 1.5
	mediumSummaryBonus  = 1.0
	shortSummaryBonus   = 0.5
	breakingBonus       = 1.0
	topicBonus          = 1.0
	titleQualityBonus   = 0.5
)

var credibleSources = []string{
	"bbc", "reuters", "ap", "bloomberg", "cnn", "nbc", "abc", "cbs",
}

var techSources = []string{
	"techcrunch", "the verge", "ars technica", "venturebeat", "wired",
}

var breakingKeywords = []string{
	"breaking", "urgent", "just in", "latest", "update",
}

var focusTopics = []string{
	"artificial intelligence", "technology", "climate", "economy",
	"politics", "health", "science", "space", "cybersecurity",
}

// Titles starting with these read as listicles and forfeit the
// title-quality bonus.
var listiclePrefixes = []string{"top", "best"}

// Score computes the relevance score for one article. It is pure and
// deterministic: identical fields always produce the identical score.
func Score(a model.RawArticle) float64 {
	title := strings.ToLower(a.Title)
	summary := strings.ToLower(a.Summary)
	source := strings.ToLower(a.Source)

	s := BaseScore

	switch {
	case containsAny(source, credibleSources):
		s += credibleSourceBonus
	case containsAny(source, techSources):
		s += techSourceBonus
	}

	// Length thresholds count characters, not bytes.
	switch n := utf8.RuneCountInString(a.Summary); {
	case n > 200:
		s += longSummaryBonus
	case n > 100:
		s += mediumSummaryBonus
	case n > 50:
		s += shortSummaryBonus
	}

	if containsAny(title, breakingKeywords) {
		s += breakingBonus
	}

	if containsAny(title, focusTopics) || containsAny(summary, focusTopics) {
		s += topicBonus
	}

	if utf8.RuneCountInString(a.Title) > 20 && !hasAnyPrefix(title, listiclePrefixes) {
		s += titleQualityBonus
	}

	return clamp(s, MinScore, MaxScore)
}

// SafeScore is Score with a fault barrier: any panic while scoring one
// article yields DefaultScore instead of aborting the batch.
func SafeScore(a model.RawArticle) (s float64) {
	defer func() {
		if r := recover(); r != nil {
			s = DefaultScore
		}
	}()
	return Score(a)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
