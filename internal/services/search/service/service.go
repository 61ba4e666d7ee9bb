// Package service implements the obituary search engine pipeline: normalize
// the incoming query, call the configured provider, dedup, apply the
// domain block list and exclusion filter, score survivors, rank them, and
// enrich the best few before returning them for persistence.
package service

import (
	"context"
	"sync"
	"time"

	"obitwatch/internal/core/fingerprint"
	"obitwatch/internal/core/normalize"
	perr "obitwatch/internal/platform/errors"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/services/search/domain"
)

// Config tunes the pipeline's knobs; New fills any field left at its zero
// value with the default noted below, except EnrichPages.
type Config struct {
	// MaxResults caps the ranked output (default 20).
	MaxResults int

	// RecencyWindowDays is the DOD recency window for the ranking
	// partition (default 14).
	RecencyWindowDays int

	// DomainsBlocked is the hostname-suffix block list (default
	// [".gov"]).
	DomainsBlocked []string

	// EnrichPages disables enrichment entirely when false (env
	// ENRICH_PAGES=false). New uses it as given, so a zero Config leaves
	// enrichment off; the module options default ENRICH_PAGES to true.
	EnrichPages bool

	// EnrichTopN is how many top-ranked, URL-bearing, still-incomplete
	// results get enriched (default 1).
	EnrichTopN int

	// EnrichConcurrency bounds the enrichment worker pool (default 3).
	EnrichConcurrency int

	// EnrichTimeout bounds each page fetch (default 8s).
	EnrichTimeout time.Duration
}

// Service orchestrates one search pass. It holds no per-request state and
// is safe for concurrent use across queries.
type Service struct {
	Provider   domain.Provider
	Enricher   domain.Enricher // nil disables enrichment regardless of Cfg.EnrichPages
	Exclusions domain.ExclusionFilter
	Norm       *normalize.Normalizer
	Cfg        Config
}

// New constructs a Service, filling unset Config fields with defaults.
// Exclusions may be nil (no exclusion filtering); Enricher may be nil (no
// enrichment).
func New(provider domain.Provider, enricher domain.Enricher, exclusions domain.ExclusionFilter, norm *normalize.Normalizer, cfg Config) *Service {
	if provider == nil {
		panic("search.Service requires a non-nil Provider")
	}
	if norm == nil {
		norm = normalize.New()
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.RecencyWindowDays <= 0 {
		cfg.RecencyWindowDays = defaultRecencyWindowDays
	}
	if cfg.DomainsBlocked == nil {
		cfg.DomainsBlocked = defaultDomainsBlocked
	}
	if cfg.EnrichTopN <= 0 {
		cfg.EnrichTopN = 1
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = 3
	}
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = 8 * time.Second
	}
	return &Service{Provider: provider, Enricher: enricher, Exclusions: exclusions, Norm: norm, Cfg: cfg}
}

// Search runs the full pipeline — normalize, provider call, dedup,
// blocked-domain filter, exclusion filter, score, rank, enrich — and
// returns the final ranked, enriched candidate list. Dedup runs before the
// block list so a blocked candidate still contributes its fields and URL
// to its fingerprint group before the group is judged by the winner's
// hostname. raw.InputDate, if set, must not be in the future.
func (s *Service) Search(ctx context.Context, raw domain.Query) ([]domain.Candidate, error) {
	now := time.Now().UTC()

	q, err := s.NormalizeQuery(raw, now)
	if err != nil {
		return nil, err
	}

	cands, err := s.Provider.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	cands = dedup(q, s.Norm, now, cands)
	cands = filterBlockedDomains(cands, s.Cfg.DomainsBlocked)

	if s.Exclusions != nil {
		cands, err = s.filterExcluded(ctx, q.SearchKey, cands)
		if err != nil {
			return nil, err
		}
	}

	cands = s.scoreSurvivors(q, cands, now)
	cands = rank(cands, s.Cfg.RecencyWindowDays, s.Cfg.MaxResults, now)

	s.enrichTop(ctx, cands)

	return cands, nil
}

// NormalizeQuery runs every free-text field of raw through the shared
// Normalizer, defaults InputDate to today when unset, rejects a
// future-dated InputDate, and recomputes SearchKey from the normalized
// fields (normalization always precedes key assembly). Exposed so callers
// that need the computed key without a provider round-trip — the batch
// runner's drift check, the HTTP surface's keySearch echo — share the
// same code path Search uses.
func (s *Service) NormalizeQuery(raw domain.Query, now time.Time) (domain.Query, error) {
	q := raw
	q.FirstName = s.Norm.Name(raw.FirstName)
	q.LastName = s.Norm.Name(raw.LastName)
	q.MiddleName = s.Norm.Name(raw.MiddleName)
	q.Nickname = s.Norm.Name(raw.Nickname)
	q.City = s.Norm.City(raw.City)
	q.State = s.Norm.State(raw.State)

	if q.InputDate.IsZero() {
		q.InputDate = now
	} else if q.InputDate.After(now) {
		return domain.Query{}, perr.InvalidArgf("inputDate must not be in the future")
	}

	q.SearchKey = fingerprint.SearchKey(q.FirstName, q.LastName, q.City, q.State, q.Age)
	return q, nil
}

func (s *Service) filterExcluded(ctx context.Context, searchKey string, xs []domain.Candidate) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(xs))
	for _, c := range xs {
		excluded, err := s.Exclusions.IsExcluded(ctx, searchKey, c)
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// scoreSurvivors computes the full ScoreBreakdown for each candidate and
// drops any whose firstName score is exactly 0: a present but clearly
// different first name means a same-surname stranger, never ranked.
func (s *Service) scoreSurvivors(q domain.Query, xs []domain.Candidate, now time.Time) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(xs))
	for _, c := range xs {
		c.Score = scoreCandidate(q, c, s.Norm, now)
		if c.Score.First != nil && *c.Score.First == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// enrichTop fetches up to EnrichTopN top-ranked, URL-bearing, incomplete
// candidates concurrently (bounded worker pool, per-page timeout) and
// mutates them in place. It is a no-op when enrichment is disabled or no
// Enricher is configured.
func (s *Service) enrichTop(ctx context.Context, xs []domain.Candidate) {
	if s.Enricher == nil || !s.Cfg.EnrichPages {
		return
	}

	targets := make([]int, 0, s.Cfg.EnrichTopN)
	for i := range xs {
		if len(targets) >= s.Cfg.EnrichTopN {
			break
		}
		if xs[i].URL == "" || !xs[i].NeedsEnrichment() {
			continue
		}
		targets = append(targets, i)
	}
	if len(targets) == 0 {
		return
	}

	log := logger.Named("search-enrich")
	sem := make(chan struct{}, s.Cfg.EnrichConcurrency)
	var wg sync.WaitGroup

	for _, idx := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			cctx, cancel := context.WithTimeout(ctx, s.Cfg.EnrichTimeout)
			defer cancel()
			s.Enricher.Enrich(cctx, &xs[i])
		}(idx)
	}
	wg.Wait()

	for _, idx := range targets {
		c := &xs[idx]
		if c.DOD == "" {
			switch {
			case c.Funeral != "":
				c.DOD = c.Funeral
			case c.Visitation != "":
				c.DOD = c.Visitation
			default:
				log.Debug().Str("url", c.URL).Msg("enrichment left dod unresolved")
			}
		}
	}
}
