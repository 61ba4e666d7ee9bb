// Package service implements the daily sweep: walk every active saved
// search, run the engine, persist only results whose fingerprint is new
// for that search, and hand the per-user unread summary to the
// notification collaborator. One query's failure never poisons another;
// cancellation is honored between queries, never mid-insert.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/modkit/repokit"
	perr "obitwatch/internal/platform/errors"
	"obitwatch/internal/platform/logger"

	"obitwatch/internal/services/batch/domain"
	ssdom "obitwatch/internal/services/savedsearch/domain"
	searchdom "obitwatch/internal/services/search/domain"
)

// Config tunes the sweep
type Config struct {
	// ListLimit caps GET /batches listings (default 50).
	ListLimit int
}

// Svc implements RunnerPort and InspectPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[domain.StorageRepo]
	engine  domain.Engine
	queries repokit.Binder[ssdom.StorageRepo]
	sink    *Sink // nil disables the metrics sink
	norm    *normalize.Normalizer
	cfg     Config
}

// New constructs the batch service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	queries repokit.Binder[ssdom.StorageRepo],
	engine domain.Engine,
	sink *Sink,
	cfg Config,
) *Svc {
	if db == nil {
		panic("batch.Service requires a non nil TxRunner")
	}
	if binder == nil || queries == nil {
		panic("batch.Service requires non nil Repo binders")
	}
	if engine == nil {
		panic("batch.Service requires a non nil Engine")
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 50
	}
	return &Svc{db: db, binder: binder, queries: queries, engine: engine, sink: sink, norm: normalize.New(), cfg: cfg}
}

// NewInspect builds a read-only Svc for tooling that never calls Run.
func NewInspect(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], cfg Config) *Svc {
	if db == nil {
		panic("batch.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("batch.Service requires a non nil Repo binder")
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 50
	}
	return &Svc{db: db, binder: binder, cfg: cfg}
}

func (s *Svc) repo() domain.StorageRepo { return s.binder.Bind(s.db) }
func (s *Svc) qrepo() ssdom.StorageRepo { return s.queries.Bind(s.db) }

// Run executes one sweep. All results inserted share the batch's
// created_at as their ran_dt. Per-query faults are recorded in the report
// and skipped past; ctx cancellation stops the sweep cleanly between
// queries.
func (s *Svc) Run(ctx context.Context, inputFile string) (domain.RunReport, []ssdom.UserUnread, error) {
	l := logger.Named("batch")
	ranDt := time.Now().UTC()

	metrics := &searchdom.Metrics{}
	ctx = searchdom.WithMetrics(ctx, metrics)

	report := domain.RunReport{
		Batch: domain.Batch{ID: uuid.NewString(), InputFile: inputFile, CreatedAt: ranDt},
	}

	active, err := s.qrepo().ListActive(ctx)
	if err != nil {
		return report, nil, err
	}
	l.Info().Int("searches", len(active)).Time("ran_dt", ranDt).Msg("sweep start")

	for _, search := range active {
		select {
		case <-ctx.Done():
			l.Warn().Int("completed", report.QueriesRun).Msg("sweep cancelled between queries")
			return report, nil, ctx.Err()
		default:
		}

		n, timing, qerr := s.runOne(ctx, search, ranDt)
		report.QueriesRun++
		report.NewResults += n
		report.Timings = append(report.Timings, timing)
		if qerr != nil {
			report.Errors = append(report.Errors, domain.QueryError{SearchID: search.ID, Message: qerr.Error()})
			l.Error().Err(qerr).Str("search_id", search.ID).Msg("query failed; sweep continues")
		}
	}

	report.ProviderCalls = metrics.ProviderCalls.Load()
	report.EnrichFetches = metrics.EnrichFetches.Load()
	report.Batch.TotalQueries = report.QueriesRun
	report.Batch.TotalResults = report.NewResults

	if err := s.repo().Insert(ctx, report.Batch); err != nil {
		l.Error().Err(err).Msg("batch record insert failed")
	}

	if cleared, err := s.qrepo().NullStaleImageURLs(ctx); err != nil {
		l.Warn().Err(err).Msg("stale image cleanup failed")
	} else {
		report.ImagesCleared = cleared
	}

	unread, err := s.qrepo().UnreadPendingByUser(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("unread summary failed")
		unread = nil
	}

	s.sink.Write(ctx, report)

	l.Info().
		Int("queries", report.QueriesRun).
		Int("new_results", report.NewResults).
		Int64("provider_calls", report.ProviderCalls).
		Int64("enrich_fetches", report.EnrichFetches).
		Int("errors", len(report.Errors)).
		Msg("sweep done")
	return report, unread, nil
}

// runOne processes a single saved search: engine call, new-fingerprint
// filter, rank-ordered insert, search-key drift recording.
func (s *Svc) runOne(ctx context.Context, search ssdom.SavedSearch, ranDt time.Time) (int, domain.QueryTiming, error) {
	timing := domain.QueryTiming{SearchID: search.ID}

	q := s.toQuery(search)

	// record the engine-computed key when it drifts from the stored one:
	// drift means the stored key predates a normalization change
	if nq, err := s.engine.NormalizeQuery(q, ranDt); err == nil && nq.SearchKey != "" && nq.SearchKey != search.SearchKey {
		if err := s.qrepo().UpdateSearchKey(ctx, search.ID, nq.SearchKey); err != nil {
			logger.C(ctx).Warn().Err(err).Str("search_id", search.ID).Msg("search key update failed")
		}
	}

	t0 := time.Now()
	cands, err := s.engine.Search(ctx, q)
	timing.Engine = time.Since(t0)
	if err != nil {
		return 0, timing, err
	}

	existing, err := s.qrepo().ExistingFingerprints(ctx, search.ID)
	if err != nil {
		return 0, timing, err
	}

	fresh := make([]searchdom.Candidate, 0, len(cands))
	for _, c := range cands {
		if existing[c.Fingerprint] {
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return 0, timing, nil
	}

	t1 := time.Now()
	err = s.qrepo().InsertResults(ctx, search.ID, ranDt, fresh)
	timing.Insert = time.Since(t1)
	if err != nil {
		return 0, timing, err
	}
	return len(fresh), timing, nil
}

// toQuery converts a persisted saved search into the engine's query shape
func (s *Svc) toQuery(search ssdom.SavedSearch) searchdom.Query {
	q := searchdom.Query{
		FirstName:  search.FirstName,
		LastName:   search.LastName,
		MiddleName: search.MiddleName,
		Nickname:   search.Nickname,
		City:       search.City,
		State:      search.State,
		Age:        search.Age,
		SearchKey:  search.SearchKey,
	}
	if search.InputDate != nil {
		q.InputDate = *search.InputDate
	}
	q.Keywords = s.norm.Keywords(search.Keywords)
	return q
}

// Get returns one batch record
func (s *Svc) Get(ctx context.Context, id string) (domain.Batch, error) {
	b, ok, err := s.repo().Get(ctx, id)
	if err != nil {
		return domain.Batch{}, err
	}
	if !ok {
		return domain.Batch{}, perr.NotFoundf("batch %s not found", id)
	}
	return b, nil
}

// Latest returns the most recent batch record
func (s *Svc) Latest(ctx context.Context) (domain.Batch, error) {
	b, ok, err := s.repo().Latest(ctx)
	if err != nil {
		return domain.Batch{}, err
	}
	if !ok {
		return domain.Batch{}, perr.NotFoundf("no batches recorded yet")
	}
	return b, nil
}

// List returns recent batch records, newest first
func (s *Svc) List(ctx context.Context, limit int) ([]domain.Batch, error) {
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}
	return s.repo().List(ctx, limit)
}
