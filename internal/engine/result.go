package engine

import "github.com/gcbaptista/huntdex/model"

// Hit is one ranked document in a SearchResult page.
type Hit struct {
	URI      string
	Document model.Document
	Score    float64
}

// SearchResult is the outcome of a Search command: a page of ranked hits
// plus the total number of documents that matched before paging.
type SearchResult struct {
	Hits  []Hit
	Total int
}

// Completion is one word completion in a CompletionResult.
type Completion struct {
	Word  string
	Score float64
}

// CompletionResult is the outcome of a Completion command: the top-`limit` word
// completions sorted by descending score.
type CompletionResult struct {
	Completions []Completion
}

// StatusResult reports liveness and a few basic metrics.
type StatusResult struct {
	Documents int
	Contexts  []string
	Jobs      JobSummary
}

// JobSummary is a trimmed view of the job manager's metrics, avoiding a
// direct dependency on internal/jobs from every Status caller.
type JobSummary struct {
	Created   int64
	Completed int64
	Failed    int64
}
