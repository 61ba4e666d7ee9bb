// Package service contains the exclusion store workflows: rule creation
// with scope validation, the suppressed-set reads the pipeline consumes,
// and the per-candidate filter check with its URL-vs-fingerprint
// distinction.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"obitwatch/internal/modkit/repokit"
	perr "obitwatch/internal/platform/errors"
	searchdom "obitwatch/internal/services/search/domain"

	"obitwatch/internal/services/exclusions/domain"
)

// Service defines the service contract for exclusions
type Service interface {
	domain.Port
	searchdom.ExclusionFilter
}

// Svc implements the Service interface
type Svc struct {
	binder repokit.Binder[domain.StorageRepo]
	db     repokit.TxRunner
}

// New creates a new exclusions service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo]) *Svc {
	if db == nil {
		panic("exclusions.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("exclusions.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db}
}

func (s *Svc) repo() domain.StorageRepo { return s.binder.Bind(s.db) }

// Add validates and persists one exclusion. Idempotent on the
// (scope, searchKey, fingerprint, normalizedUrl) tuple; the bool reports
// whether a new row was created. When Scope is empty it is inferred from
// SearchKey presence.
func (s *Svc) Add(ctx context.Context, in domain.AddInput) (domain.Exclusion, bool, error) {
	if in.Fingerprint == "" && in.URL == "" {
		return domain.Exclusion{}, false, perr.InvalidArgf("exclusion requires a fingerprint or a url")
	}

	scope := in.Scope
	if scope == "" {
		scope = domain.ScopeGlobal
		if in.SearchKey != "" {
			scope = domain.ScopePerQuery
		}
	}
	switch scope {
	case domain.ScopePerQuery:
		if in.SearchKey == "" {
			return domain.Exclusion{}, false, perr.InvalidArgf("per-query exclusion requires searchKey")
		}
	case domain.ScopeGlobal:
		if in.SearchKey != "" {
			return domain.Exclusion{}, false, perr.InvalidArgf("global exclusion must not carry searchKey")
		}
	default:
		return domain.Exclusion{}, false, perr.InvalidArgf("unknown scope %q", scope)
	}

	x := domain.Exclusion{
		ID:          uuid.NewString(),
		Scope:       scope,
		SearchKey:   in.SearchKey,
		Fingerprint: strings.ToLower(strings.TrimSpace(in.Fingerprint)),
		URL:         NormalizeURL(in.URL),
		Name:        strings.TrimSpace(in.Name),
		Reason:      strings.TrimSpace(in.Reason),
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo().Insert(ctx, x)
}

// Remove deletes one exclusion by id
func (s *Svc) Remove(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, perr.InvalidArgf("id required")
	}
	return s.repo().Delete(ctx, id)
}

// RemoveMatching deletes the per-query exclusion for
// (searchKey, fingerprint) if one exists; used by the restore transition
func (s *Svc) RemoveMatching(ctx context.Context, searchKey, fingerprint string) (bool, error) {
	x, ok, err := s.repo().FindMatching(ctx, searchKey, strings.ToLower(fingerprint))
	if err != nil || !ok {
		return false, err
	}
	return s.repo().Delete(ctx, x.ID)
}

// GetFingerprintsExcluded returns the union of per-query fingerprints for
// searchKey and all global fingerprint rules
func (s *Svc) GetFingerprintsExcluded(ctx context.Context, searchKey string) (map[string]bool, error) {
	xs, err := s.scopedRules(ctx, searchKey)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		if x.Fingerprint != "" {
			out[x.Fingerprint] = true
		}
	}
	return out, nil
}

// GetUrlsExcluded returns the union of per-query normalized URLs for
// searchKey and all global URL rules
func (s *Svc) GetUrlsExcluded(ctx context.Context, searchKey string) (map[string]bool, error) {
	xs, err := s.scopedRules(ctx, searchKey)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		if x.URL != "" {
			out[x.URL] = true
		}
	}
	return out, nil
}

func (s *Svc) scopedRules(ctx context.Context, searchKey string) ([]domain.Exclusion, error) {
	per, err := s.repo().ForSearchKey(ctx, searchKey)
	if err != nil {
		return nil, err
	}
	glob, err := s.repo().Global(ctx)
	if err != nil {
		return nil, err
	}
	return append(per, glob...), nil
}

// GetByKeySearch lists per-query exclusions for one search key
func (s *Svc) GetByKeySearch(ctx context.Context, searchKey string) ([]domain.Exclusion, error) {
	return s.repo().ForSearchKey(ctx, searchKey)
}

// GetGlobalExclusions lists global-scope exclusions
func (s *Svc) GetGlobalExclusions(ctx context.Context) ([]domain.Exclusion, error) {
	return s.repo().Global(ctx)
}

// GetAll lists every exclusion, newest first
func (s *Svc) GetAll(ctx context.Context) ([]domain.Exclusion, error) {
	return s.repo().All(ctx)
}

// GetStats summarizes the store for tooling
func (s *Svc) GetStats(ctx context.Context) (domain.Stats, error) {
	return s.repo().Stats(ctx)
}

// IsExcluded applies the filter semantics the pipeline relies on: a URL
// match alone always excludes; a fingerprint match excludes only when the
// fingerprint's DOD component is known. A DOD-unknown fingerprint is too
// coarse to fire on its own — it suppresses only via the URL half of the
// same rule.
func (s *Svc) IsExcluded(ctx context.Context, searchKey string, c searchdom.Candidate) (bool, error) {
	urls, err := s.GetUrlsExcluded(ctx, searchKey)
	if err != nil {
		return false, err
	}
	if c.URL != "" && urls[NormalizeURL(c.URL)] {
		return true, nil
	}

	if DODUnknown(c.Fingerprint) {
		return false, nil
	}
	fps, err := s.GetFingerprintsExcluded(ctx, searchKey)
	if err != nil {
		return false, err
	}
	return fps[strings.ToLower(c.Fingerprint)], nil
}

// DODUnknown reports whether a fingerprint's date-of-death component is
// the literal "unknown" sentinel.
func DODUnknown(fp string) bool {
	return fp == "" || strings.HasSuffix(fp, "-unknown")
}
