package service

import (
	"context"
	"time"

	perr "obitwatch/internal/platform/errors"
	"obitwatch/internal/platform/logger"

	excldom "obitwatch/internal/services/exclusions/domain"
	"obitwatch/internal/services/savedsearch/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

// MarkRead flips every pending unread result under the search to read.
// Used when the owner opens the search's results view. Returns the number
// of rows touched.
func (s *Svc) MarkRead(ctx context.Context, loginID, searchID string) (int, error) {
	if _, err := s.owned(ctx, loginID, searchID); err != nil {
		return 0, err
	}
	return s.repo().MarkAllRead(ctx, searchID)
}

// Confirm marks one result confirmed and freezes the owning saved search:
// confirmed = disabled = true, confirmed_at = now. Irreversible from
// within the engine — after this no batch processes the search again.
func (s *Svc) Confirm(ctx context.Context, loginID, searchID, resultID string) error {
	if _, _, err := s.ownedResult(ctx, loginID, searchID, resultID); err != nil {
		return err
	}
	if err := s.repo().SetResultStatus(ctx, resultID, searchdom.StatusConfirmed, true); err != nil {
		return err
	}
	return s.repo().MarkConfirmed(ctx, searchID, time.Now().UTC())
}

// Reject marks one result rejected and inserts a per-query exclusion for
// its (search_key, fingerprint, url, name). The exclusion insert is
// best-effort: the local status change commits even when it fails.
func (s *Svc) Reject(ctx context.Context, loginID, searchID, resultID, reason string) error {
	search, res, err := s.ownedResult(ctx, loginID, searchID, resultID)
	if err != nil {
		return err
	}
	if err := s.repo().SetResultStatus(ctx, resultID, searchdom.StatusRejected, true); err != nil {
		return err
	}

	if s.excl == nil {
		return nil
	}
	if reason == "" {
		reason = "wrong person"
	}
	_, _, err = s.excl.Add(ctx, excldom.AddInput{
		Scope:       excldom.ScopePerQuery,
		SearchKey:   search.SearchKey,
		Fingerprint: res.Fingerprint,
		URL:         res.URL,
		Name:        res.NameFull,
		Reason:      reason,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("search_id", searchID).Str("result_id", resultID).
			Msg("reject committed but exclusion insert failed")
	}
	return nil
}

// Restore returns a rejected result to pending and removes the matching
// per-query exclusion if one exists; same best-effort semantics as Reject.
func (s *Svc) Restore(ctx context.Context, loginID, searchID, resultID string) error {
	search, res, err := s.ownedResult(ctx, loginID, searchID, resultID)
	if err != nil {
		return err
	}
	if err := s.repo().SetResultStatus(ctx, resultID, searchdom.StatusPending, true); err != nil {
		return err
	}

	if s.excl == nil {
		return nil
	}
	if _, err := s.excl.RemoveMatching(ctx, search.SearchKey, res.Fingerprint); err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("search_id", searchID).Str("result_id", resultID).
			Msg("restore committed but exclusion removal failed")
	}
	return nil
}

// Results lists a search's persisted results in rank order
func (s *Svc) Results(ctx context.Context, loginID, searchID string) ([]domain.Result, error) {
	if _, err := s.owned(ctx, loginID, searchID); err != nil {
		return nil, err
	}
	return s.repo().ListResults(ctx, searchID)
}

// Result returns one result detail, owner-scoped
func (s *Svc) Result(ctx context.Context, loginID, searchID, resultID string) (domain.Result, error) {
	_, res, err := s.ownedResult(ctx, loginID, searchID, resultID)
	return res, err
}

// Summaries is the per-user match overview
func (s *Svc) Summaries(ctx context.Context, loginID string) ([]domain.SearchSummary, error) {
	return s.repo().SummariesByLogin(ctx, loginID)
}

func (s *Svc) ownedResult(ctx context.Context, loginID, searchID, resultID string) (domain.SavedSearch, domain.Result, error) {
	search, err := s.owned(ctx, loginID, searchID)
	if err != nil {
		return domain.SavedSearch{}, domain.Result{}, err
	}
	res, ok, err := s.repo().GetResult(ctx, resultID)
	if err != nil {
		return domain.SavedSearch{}, domain.Result{}, err
	}
	if !ok || res.UserQueryID != searchID {
		return domain.SavedSearch{}, domain.Result{}, perr.NotFoundf("result %s not found", resultID)
	}
	return search, res, nil
}
