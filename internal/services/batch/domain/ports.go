package domain

import (
	"context"
	"time"

	ssdom "obitwatch/internal/services/savedsearch/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

// StorageRepo is the persistence surface for batch records. Bound to a
// Queryer via repokit.Binder.
type StorageRepo interface {
	Insert(ctx context.Context, b Batch) error
	Get(ctx context.Context, id string) (Batch, bool, error)
	Latest(ctx context.Context) (Batch, bool, error)
	List(ctx context.Context, limit int) ([]Batch, error)
}

// Engine is the slice of the search service the sweep drives. Normalize
// exposes the engine's own query normalization so the sweep can record
// search-key drift without a provider round-trip.
type Engine interface {
	Search(ctx context.Context, q searchdom.Query) ([]searchdom.Candidate, error)
	NormalizeQuery(raw searchdom.Query, now time.Time) (searchdom.Query, error)
}

// RunnerPort runs one sweep and reports what happened. The UserUnread
// list is the hand-off to the notification collaborator; the batch never
// sends mail itself.
type RunnerPort interface {
	Run(ctx context.Context, inputFile string) (RunReport, []ssdom.UserUnread, error)
}

// InspectPort is the read surface behind GET /batches.
type InspectPort interface {
	Get(ctx context.Context, id string) (Batch, error)
	Latest(ctx context.Context) (Batch, error)
	List(ctx context.Context, limit int) ([]Batch, error)
}
