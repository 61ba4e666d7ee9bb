package domain

import "context"

// StorageRepo is the persistence surface for exclusions. Bound to a
// Queryer via repokit.Binder.
type StorageRepo interface {
	// Insert persists x if no row exists for the same
	// (scope, search_key, fingerprint, url) tuple. It returns the stored
	// row and whether a new row was created.
	Insert(ctx context.Context, x Exclusion) (Exclusion, bool, error)

	// Delete removes one exclusion by id; false when no row matched.
	Delete(ctx context.Context, id string) (bool, error)

	// FindMatching returns the per-query exclusion for
	// (searchKey, fingerprint) if one exists; used by the restore path.
	FindMatching(ctx context.Context, searchKey, fp string) (Exclusion, bool, error)

	// ForSearchKey returns per-query exclusions scoped to searchKey.
	ForSearchKey(ctx context.Context, searchKey string) ([]Exclusion, error)

	// Global returns every global-scope exclusion.
	Global(ctx context.Context) ([]Exclusion, error)

	// All returns every exclusion, newest first.
	All(ctx context.Context) ([]Exclusion, error)

	// Stats counts rows by scope and rule kind.
	Stats(ctx context.Context) (Stats, error)
}

// Port is the operation surface other services use: adding and removing
// rules, reading the suppressed sets for a search, and the filter check
// the search pipeline applies per candidate.
type Port interface {
	Add(ctx context.Context, in AddInput) (Exclusion, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	RemoveMatching(ctx context.Context, searchKey, fingerprint string) (bool, error)

	GetFingerprintsExcluded(ctx context.Context, searchKey string) (map[string]bool, error)
	GetUrlsExcluded(ctx context.Context, searchKey string) (map[string]bool, error)
	GetByKeySearch(ctx context.Context, searchKey string) ([]Exclusion, error)
	GetGlobalExclusions(ctx context.Context) ([]Exclusion, error)
	GetAll(ctx context.Context) ([]Exclusion, error)
	GetStats(ctx context.Context) (Stats, error)
}
