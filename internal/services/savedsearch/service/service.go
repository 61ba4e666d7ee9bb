// Package service contains the saved-search workflows: owner-scoped CRUD
// with the confirmed-is-frozen invariant, and the match-lifecycle state
// machine whose reject/restore transitions feed the exclusion store.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"obitwatch/internal/core/fingerprint"
	"obitwatch/internal/core/normalize"
	"obitwatch/internal/modkit/repokit"
	perr "obitwatch/internal/platform/errors"

	excldom "obitwatch/internal/services/exclusions/domain"
	"obitwatch/internal/services/savedsearch/domain"
)

// Exclusions is the slice of the exclusion store the lifecycle needs.
type Exclusions interface {
	Add(ctx context.Context, in excldom.AddInput) (excldom.Exclusion, bool, error)
	RemoveMatching(ctx context.Context, searchKey, fingerprint string) (bool, error)
}

// Svc implements SearchesPort and LifecyclePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.StorageRepo]
	excl   Exclusions // may be nil; feedback loop is best-effort anyway
	norm   *normalize.Normalizer
}

// New creates a new saved-search service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], excl Exclusions, norm *normalize.Normalizer) *Svc {
	if db == nil {
		panic("savedsearch.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("savedsearch.Service requires a non nil Repo binder")
	}
	if norm == nil {
		norm = normalize.New()
	}
	return &Svc{db: db, binder: binder, excl: excl, norm: norm}
}

func (s *Svc) repo() domain.StorageRepo { return s.binder.Bind(s.db) }

// Create validates and persists a new saved search with its computed
// search key.
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.SavedSearch, error) {
	row, err := s.buildRow(in)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	row.ID = uuid.NewString()
	row.LoginID = in.LoginID
	row.CreatedAt = time.Now().UTC()
	return s.repo().InsertSearch(ctx, row)
}

// Get returns one saved search, owner-scoped
func (s *Svc) Get(ctx context.Context, loginID, id string) (domain.SavedSearch, error) {
	return s.owned(ctx, loginID, id)
}

// List returns the caller's saved searches
func (s *Svc) List(ctx context.Context, loginID string) ([]domain.SavedSearch, error) {
	return s.repo().ListByLogin(ctx, loginID)
}

// Update replaces a saved search's person fields. A confirmed search is
// read-only.
func (s *Svc) Update(ctx context.Context, loginID, id string, in domain.UpdateInput) (domain.SavedSearch, error) {
	cur, err := s.owned(ctx, loginID, id)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	if cur.Confirmed {
		return domain.SavedSearch{}, perr.InvalidArgf("Cannot edit a confirmed search")
	}

	row, err := s.buildRow(in)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	row.ID = cur.ID
	row.LoginID = cur.LoginID
	row.CreatedAt = cur.CreatedAt
	row.Disabled = cur.Disabled
	if err := s.repo().UpdateSearch(ctx, row); err != nil {
		return domain.SavedSearch{}, err
	}
	return row, nil
}

// Delete soft-deletes (disables) a saved search
func (s *Svc) Delete(ctx context.Context, loginID, id string) error {
	if _, err := s.owned(ctx, loginID, id); err != nil {
		return err
	}
	return s.repo().DisableSearch(ctx, id)
}

// buildRow normalizes the input, validates the identity requirements and
// the input date, and computes the search key from the normalized fields.
func (s *Svc) buildRow(in domain.CreateInput) (domain.SavedSearch, error) {
	first := strings.TrimSpace(in.FirstName)
	nick := strings.TrimSpace(in.Nickname)
	last := strings.TrimSpace(in.LastName)

	if last == "" {
		return domain.SavedSearch{}, perr.InvalidArgf("lastName required")
	}
	if first == "" && nick == "" {
		return domain.SavedSearch{}, perr.InvalidArgf("firstName or nickname required")
	}

	var inputDate *time.Time
	if in.InputDate != "" {
		t, err := time.Parse("2006-01-02", in.InputDate)
		if err != nil {
			return domain.SavedSearch{}, perr.InvalidArgf("inputDate must be YYYY-MM-DD")
		}
		if t.After(time.Now().UTC()) {
			return domain.SavedSearch{}, perr.InvalidArgf("inputDate must not be in the future")
		}
		inputDate = &t
	}

	firstNorm := s.norm.Name(first)
	if firstNorm == "" {
		firstNorm = s.norm.Name(nick)
	}
	key := fingerprint.SearchKey(
		firstNorm,
		s.norm.Name(last),
		s.norm.City(in.City),
		s.norm.State(in.State),
		in.Age,
	)

	return domain.SavedSearch{
		FirstName:  first,
		LastName:   last,
		MiddleName: strings.TrimSpace(in.MiddleName),
		Nickname:   nick,
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		Age:        in.Age,
		Keywords:   strings.TrimSpace(in.Keywords),
		InputDate:  inputDate,
		SearchKey:  key,
	}, nil
}

// owned loads a search and enforces ownership. loginID == "" skips the
// owner check (internal callers).
func (s *Svc) owned(ctx context.Context, loginID, id string) (domain.SavedSearch, error) {
	row, ok, err := s.repo().GetSearch(ctx, id)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	if !ok {
		return domain.SavedSearch{}, perr.NotFoundf("search %s not found", id)
	}
	if loginID != "" && row.LoginID != loginID {
		return domain.SavedSearch{}, perr.NotFoundf("search %s not found", id)
	}
	return row, nil
}
