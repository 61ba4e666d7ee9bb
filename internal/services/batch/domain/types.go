// Package domain defines the batch runner types and ports: the daily
// sweep record, its run report, and the storage seam.
package domain

import "time"

// Batch records one daily sweep over the saved searches.
type Batch struct {
	ID           string    `json:"id"`
	InputFile    string    `json:"inputFile,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	TotalQueries int       `json:"totalQueries"`
	TotalResults int       `json:"totalResults"`
}

// QueryError is one contained per-query failure; it never aborts the
// sweep.
type QueryError struct {
	SearchID string `json:"searchId"`
	Message  string `json:"message"`
}

// QueryTiming is the per-query stopwatch pair.
type QueryTiming struct {
	SearchID string        `json:"searchId"`
	Engine   time.Duration `json:"engineMs"`
	Insert   time.Duration `json:"insertMs"`
}

// RunReport summarizes one sweep for the caller and the metrics sink.
type RunReport struct {
	Batch         Batch         `json:"batch"`
	QueriesRun    int           `json:"queriesRun"`
	NewResults    int           `json:"newResults"`
	ProviderCalls int64         `json:"providerCalls"`
	EnrichFetches int64         `json:"enrichFetches"`
	Errors        []QueryError  `json:"errors,omitempty"`
	Timings       []QueryTiming `json:"timings,omitempty"`
	ImagesCleared int           `json:"imagesCleared"`
}
