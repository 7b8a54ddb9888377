package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/newsbrief/internal/core/model"
)

// neutral carries no bonus at all: short plain title, short summary,
// unknown source.
func neutral() model.RawArticle {
	return model.RawArticle{
		Title:   "Quiet day in town",
		Link:    "https://example.com/quiet",
		Summary: "Nothing much happened.",
		Source:  "Gazette",
	}
}

func TestNeutralArticleScoresBase(t *testing.T) {
	assert.Equal(t, 5.0, Score(neutral()))
}

func TestListicleScenario(t *testing.T) {
	a := model.RawArticle{
		Title:   "Top 10 Best AI Tools for 2024",
		Link:    "A",
		Summary: "Here are the best AI tools.",
		Source:  "Tech Blog",
	}

	// No source match, summary under 51 chars, listicle prefix forfeits
	// the title bonus: base score only.
	assert.Equal(t, 5.0, Score(a))
}

func TestBreakingScenarioClampsAtMax(t *testing.T) {
	body := strings.Repeat("The new system advances artificial intelligence in clinical health diagnostics. ", 3)
	a := model.RawArticle{
		Title:   "Breaking: Major AI Breakthrough in Medical Diagnosis",
		Link:    "B",
		Summary: body,
		Source:  "BBC News",
	}

	// Credible source +2.0, >200 chars +1.5, breaking +1.0, topic +1.0,
	// title quality +0.5: raw sum above 10 clamps to 10.
	assert.Greater(t, len(body), 200)
	assert.Equal(t, 10.0, Score(a))
}

func TestScoreIsDeterministic(t *testing.T) {
	a := model.RawArticle{
		Title:   "Breaking: Major AI Breakthrough in Medical Diagnosis",
		Link:    "B",
		Summary: "A study on artificial intelligence reshaping diagnostics across hospitals worldwide.",
		Source:  "Reuters",
	}

	first := Score(a)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(a))
	}
}

func TestSourceCredibilityTiers(t *testing.T) {
	a := neutral()

	a.Source = "Reuters"
	assert.Equal(t, 7.0, Score(a))

	a.Source = "TechCrunch"
	assert.Equal(t, 6.5, Score(a))

	a.Source = "Gazette"
	assert.Equal(t, 5.0, Score(a))
}

func TestContentDepthThresholds(t *testing.T) {
	cases := []struct {
		length int
		want   float64
	}{
		{50, 5.0},
		{51, 5.5},
		{100, 5.5},
		{101, 6.0},
		{200, 6.0},
		{201, 6.5},
	}

	for _, tc := range cases {
		a := neutral()
		a.Summary = strings.Repeat("x", tc.length)
		assert.Equal(t, tc.want, Score(a), "summary length %d", tc.length)
	}
}

func TestContentDepthCountsRunes(t *testing.T) {
	a := neutral()

	// 150 characters spanning 450 bytes: the medium bonus, not the
	// long one.
	a.Summary = strings.Repeat("日", 150)
	assert.Equal(t, 6.0, Score(a))
}

func TestTitleQualityCountsRunes(t *testing.T) {
	a := neutral()

	// 10 characters spanning 30 bytes: too short for the bonus.
	a.Title = strings.Repeat("日", 10)
	assert.Equal(t, 5.0, Score(a))

	a.Title = strings.Repeat("日", 21)
	assert.Equal(t, 5.5, Score(a))
}

func TestBreakingKeywordBonus(t *testing.T) {
	a := neutral()
	a.Title = "Breaking: quiet day"
	assert.Equal(t, 6.0, Score(a))

	a.Title = "Just in: a quiet day"
	assert.Equal(t, 6.0, Score(a))
}

func TestTopicBonusFromSummary(t *testing.T) {
	a := neutral()
	a.Summary = "Concerns about the economy."
	assert.Equal(t, 6.0, Score(a))
}

func TestTitleQualityBonus(t *testing.T) {
	a := neutral()
	a.Title = "Quiet day in the old town"
	assert.Equal(t, 5.5, Score(a))

	a.Title = "Best quiet days in the old town"
	assert.Equal(t, 5.0, Score(a))
}

func TestScoreStaysWithinBounds(t *testing.T) {
	articles := []model.RawArticle{
		neutral(),
		{Title: "x", Link: "l", Summary: "y", Source: ""},
		{
			Title:   "Breaking update: latest artificial intelligence and cybersecurity news",
			Link:    "l2",
			Summary: strings.Repeat("science and space and climate ", 10),
			Source:  "BBC Reuters Bloomberg",
		},
	}

	for _, a := range articles {
		s := Score(a)
		assert.GreaterOrEqual(t, s, MinScore)
		assert.LessOrEqual(t, s, MaxScore)
	}
}

func TestSafeScoreMatchesScore(t *testing.T) {
	a := neutral()
	assert.Equal(t, Score(a), SafeScore(a))
}
