package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/newsbrief/internal/core/model"
	"github.com/agenthands/newsbrief/internal/core/pipeline"
)

func sampleResult() pipeline.Result {
	return pipeline.Result{
		RunID: "run-123",
		Articles: []model.EnrichedArticle{
			{
				RawArticle: model.RawArticle{
					Title:   "Wire report",
					Link:    "https://example.com/wire",
					Summary: "Raw body.",
					Source:  "Reuters",
				},
				Score:     8.5,
				AISummary: "A concise wire summary.",
			},
			{
				RawArticle: model.RawArticle{
					Title:   "Quiet day in town",
					Link:    "https://example.com/quiet",
					Summary: "Nothing much happened.",
					Source:  "Gazette",
				},
				Score:     5.0,
				AISummary: "Summary unavailable",
			},
		},
		Stats: model.RunStats{Input: 4, Accepted: 2, Invalid: 1, Duplicates: 1},
	}
}

func TestWriteDigest(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

	require.NoError(t, Write(&buf, sampleResult(), now))
	out := buf.String()

	assert.Contains(t, out, "Newsletter Digest - 2026-08-23 09:30:00")
	assert.Contains(t, out, "Run: run-123")
	assert.Contains(t, out, "Articles: 2 processed of 4 fetched (2 rejected)")

	assert.Contains(t, out, "#1 (Score: 8.5/10)")
	assert.Contains(t, out, "Title: Wire report")
	assert.Contains(t, out, "Source: Reuters")
	assert.Contains(t, out, "Link: https://example.com/wire")
	assert.Contains(t, out, "AI Summary: A concise wire summary.")
	assert.Contains(t, out, "#2 (Score: 5.0/10)")

	assert.Contains(t, out, "Highest: 8.5/10")
	assert.Contains(t, out, "Lowest: 5.0/10")
	assert.Contains(t, out, "Average: 6.8/10")
	assert.Contains(t, out, "Score >= 8: 1")
	assert.Contains(t, out, "Score >= 6: 1")
}

func TestWriteEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	res := pipeline.Result{RunID: "run-empty"}

	require.NoError(t, Write(&buf, res, time.Now()))
	out := buf.String()

	assert.Contains(t, out, "No articles were processed.")
	assert.NotContains(t, out, "Score Statistics:")
}
