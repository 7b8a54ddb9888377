package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawArticleValid(t *testing.T) {
	a := RawArticle{Title: "t", Link: "l", Summary: "s", Source: "src"}
	assert.True(t, a.Valid())

	// Source is optional; the other three fields are required.
	a.Source = ""
	assert.True(t, a.Valid())

	for _, mutate := range []func(*RawArticle){
		func(a *RawArticle) { a.Title = "" },
		func(a *RawArticle) { a.Link = "" },
		func(a *RawArticle) { a.Summary = "" },
	} {
		b := RawArticle{Title: "t", Link: "l", Summary: "s"}
		mutate(&b)
		assert.False(t, b.Valid())
	}
}

func TestRunStatsRejected(t *testing.T) {
	s := RunStats{Input: 10, Accepted: 6, Invalid: 2, Duplicates: 1}
	assert.Equal(t, 4, s.Rejected())

	assert.Equal(t, 0, RunStats{}.Rejected())
}
