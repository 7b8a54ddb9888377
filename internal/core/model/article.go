package model

// RawArticle is a candidate article as produced by the ingestion
// collaborator. Title, Link and Summary are required for acceptance;
// Link is the deduplication key within a run.
type RawArticle struct {
	Title   string `json:"title" bson:"title"`
	Link    string `json:"link" bson:"link"`
	Summary string `json:"summary" bson:"summary"`
	Source  string `json:"source" bson:"source"`
}

// Valid reports whether the article carries all required fields.
func (a RawArticle) Valid() bool {
	return a.Title != "" && a.Link != "" && a.Summary != ""
}

// EnrichedArticle is the pipeline output: the raw fields plus a
// relevance score in [1.0, 10.0] and an AI summary. AISummary is never
// empty once summarization was attempted; failure paths substitute a
// sentinel string instead.
type EnrichedArticle struct {
	RawArticle `bson:",inline"`

	Score     float64 `json:"score" bson:"score"`
	AISummary string  `json:"ai_summary" bson:"ai_summary"`
}

// RunStats counts batch outcomes for reporting. It is informational
// only and not part of the data contract.
type RunStats struct {
	Input      int `json:"input"`
	Accepted   int `json:"accepted"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
}

// Rejected is the number of input articles that did not make it into
// the accepted set, for any reason including the volume cap.
func (s RunStats) Rejected() int {
	return s.Input - s.Accepted
}
