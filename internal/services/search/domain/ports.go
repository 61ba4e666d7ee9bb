package domain

import (
	"context"
	"time"
)

// Provider is the common contract every search backend implements
// : given a normalized query, return a
// list of raw candidates. Implementations never throw on failure — they
// log and return an empty slice.
type Provider interface {
	Name() ProviderType
	Search(ctx context.Context, q Query) ([]Candidate, error)
}

// Enricher fetches a candidate's source page and back-fills missing
// fields in place. It never returns an error that should fail the
// surrounding search; per-page failures are absorbed internally and
// reported only through logging.
type Enricher interface {
	Enrich(ctx context.Context, c *Candidate)
}

// ExclusionFilter answers whether a candidate should be suppressed,
// per the load-bearing URL-vs-fingerprint distinction.
type ExclusionFilter interface {
	IsExcluded(ctx context.Context, searchKey string, c Candidate) (bool, error)
}

// ResultRepo persists ranked results for a saved search and answers the
// "is this fingerprint already on record" dedup check the batch runner
// needs.
type ResultRepo interface {
	// ExistingFingerprints returns every fingerprint already recorded for
	// this saved search across all prior ran_dt values.
	ExistingFingerprints(ctx context.Context, userQueryID string) (map[string]bool, error)

	// InsertResults persists newly-ranked results for one ran_dt. Callers
	// have already filtered out fingerprints ExistingFingerprints reported.
	InsertResults(ctx context.Context, userQueryID string, ranDt time.Time, results []Candidate) error
}
