package domain

import (
	"context"
	"time"

	searchdom "obitwatch/internal/services/search/domain"
)

// StorageRepo is the persistence surface for saved searches and their
// results. Bound to a Queryer via repokit.Binder.
type StorageRepo interface {
	// saved searches

	InsertSearch(ctx context.Context, s SavedSearch) (SavedSearch, error)
	GetSearch(ctx context.Context, id string) (SavedSearch, bool, error)
	ListByLogin(ctx context.Context, loginID string) ([]SavedSearch, error)
	// ListActive returns every non-disabled, non-confirmed saved search
	// in creation order; the batch sweep iterates this.
	ListActive(ctx context.Context) ([]SavedSearch, error)
	UpdateSearch(ctx context.Context, s SavedSearch) error
	DisableSearch(ctx context.Context, id string) error
	// MarkConfirmed sets confirmed, confirmed_at and disabled in one
	// statement; the confirm transition is irreversible from here.
	MarkConfirmed(ctx context.Context, id string, at time.Time) error
	UpdateSearchKey(ctx context.Context, id, searchKey string) error

	// results

	ExistingFingerprints(ctx context.Context, userQueryID string) (map[string]bool, error)
	InsertResults(ctx context.Context, userQueryID string, ranDt time.Time, results []searchdom.Candidate) error
	GetResult(ctx context.Context, id string) (Result, bool, error)
	ListResults(ctx context.Context, userQueryID string) ([]Result, error)
	// MarkAllRead flips is_read on every pending unread result of the
	// search in one statement.
	MarkAllRead(ctx context.Context, userQueryID string) (int, error)
	SetResultStatus(ctx context.Context, id string, status searchdom.Status, isRead bool) error
	// NullStaleImageURLs clears image_url on every result whose ran_dt
	// predates the search's most recent ran_dt.
	NullStaleImageURLs(ctx context.Context) (int, error)
	// UnreadPendingByUser groups active searches holding unread pending
	// results by owner, for the post-batch notification hand-off.
	UnreadPendingByUser(ctx context.Context) ([]UserUnread, error)
	// SummariesByLogin is the per-user match overview the app's matches
	// screen renders.
	SummariesByLogin(ctx context.Context, loginID string) ([]SearchSummary, error)
}

// SearchesPort is the saved-search CRUD surface the app API consumes.
type SearchesPort interface {
	Create(ctx context.Context, in CreateInput) (SavedSearch, error)
	Get(ctx context.Context, loginID, id string) (SavedSearch, error)
	List(ctx context.Context, loginID string) ([]SavedSearch, error)
	Update(ctx context.Context, loginID, id string, in UpdateInput) (SavedSearch, error)
	Delete(ctx context.Context, loginID, id string) error
}

// LifecyclePort is the match-lifecycle state machine.
type LifecyclePort interface {
	MarkRead(ctx context.Context, loginID, searchID string) (int, error)
	Confirm(ctx context.Context, loginID, searchID, resultID string) error
	Reject(ctx context.Context, loginID, searchID, resultID, reason string) error
	Restore(ctx context.Context, loginID, searchID, resultID string) error

	Results(ctx context.Context, loginID, searchID string) ([]Result, error)
	Result(ctx context.Context, loginID, searchID, resultID string) (Result, error)
	Summaries(ctx context.Context, loginID string) ([]SearchSummary, error)
}
