// Package report renders a run as a human-readable newsletter digest.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agenthands/newsbrief/internal/core/pipeline"
)

const divider = "------------------------------------------------------------"

// Write renders the digest for one run: a timestamp header, score
// statistics, then one block per article in ranked order.
func Write(w io.Writer, res pipeline.Result, now time.Time) error {
	if _, err := fmt.Fprintf(w, "Newsletter Digest - %s\n", now.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	fmt.Fprintf(w, "Run: %s\n", res.RunID)
	fmt.Fprintf(w, "Articles: %d processed of %d fetched (%d rejected)\n\n",
		res.Stats.Accepted, res.Stats.Input, res.Stats.Rejected())

	if len(res.Articles) == 0 {
		_, err := fmt.Fprintln(w, "No articles were processed.")
		return err
	}

	writeStatistics(w, res)

	for i, article := range res.Articles {
		fmt.Fprintf(w, "#%d (Score: %.1f/10)\n", i+1, article.Score)
		fmt.Fprintf(w, "Title: %s\n", article.Title)
		fmt.Fprintf(w, "Source: %s\n", article.Source)
		fmt.Fprintf(w, "Link: %s\n", article.Link)
		fmt.Fprintf(w, "AI Summary: %s\n", article.AISummary)
		if _, err := fmt.Fprintf(w, "%s\n\n", divider); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile renders the digest to path, truncating any previous run.
func WriteFile(path string, res pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, res, time.Now()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeStatistics(w io.Writer, res pipeline.Result) {
	highest := res.Articles[0].Score
	lowest := res.Articles[len(res.Articles)-1].Score

	var sum float64
	var atLeast8, atLeast6 int
	for _, article := range res.Articles {
		sum += article.Score
		if article.Score >= 8 {
			atLeast8++
		}
		if article.Score >= 6 {
			atLeast6++
		}
	}

	fmt.Fprintln(w, "Score Statistics:")
	fmt.Fprintf(w, "  Highest: %.1f/10\n", highest)
	fmt.Fprintf(w, "  Lowest: %.1f/10\n", lowest)
	fmt.Fprintf(w, "  Average: %.1f/10\n", sum/float64(len(res.Articles)))
	fmt.Fprintf(w, "  Score >= 8: %d\n", atLeast8)
	fmt.Fprintf(w, "  Score >= 6: %d\n\n", atLeast6)
}
