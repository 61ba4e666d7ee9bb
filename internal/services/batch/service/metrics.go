package service

import (
	"context"
	"time"

	"obitwatch/internal/platform/logger"
	"obitwatch/internal/platform/store"

	"obitwatch/internal/services/batch/domain"
)

// Sink records one row per sweep into the ClickHouse analytics stream.
// Failures are logged and dropped: metrics must never fail a sweep.
type Sink struct {
	ch store.Clickhouse
}

// NewSink constructs a metrics sink; ch may be nil (sink disabled).
func NewSink(ch store.Clickhouse) *Sink {
	if ch == nil {
		return nil
	}
	return &Sink{ch: ch}
}

const metricsTable = "obitwatch.batch_metrics (" +
	"batch_id, created_at, input_file, " +
	"queries_run, new_results, provider_calls, enrich_fetches, " +
	"error_count, images_cleared, " +
	"engine_ms_total, insert_ms_total" +
	")"

// Write inserts the sweep's counters. Safe on a nil receiver.
func (s *Sink) Write(ctx context.Context, r domain.RunReport) {
	if s == nil {
		return
	}

	var engineMS, insertMS int64
	for _, t := range r.Timings {
		engineMS += t.Engine.Milliseconds()
		insertMS += t.Insert.Milliseconds()
	}

	rows := [][]any{{
		r.Batch.ID,
		r.Batch.CreatedAt.UTC(),
		r.Batch.InputFile,
		int32(r.QueriesRun),
		int32(r.NewResults),
		r.ProviderCalls,
		r.EnrichFetches,
		int32(len(r.Errors)),
		int32(r.ImagesCleared),
		engineMS,
		insertMS,
	}}

	if err := s.ch.Insert(ctx, metricsTable, rows); err != nil {
		logger.Named("batch-metrics").Warn().Err(err).Str("batch_id", r.Batch.ID).Msg("metrics insert failed")
	}
	s.WriteTimings(ctx, r.Batch.ID, r.Batch.CreatedAt, r.Timings)
}

// WriteTimings exports per-query stopwatch rows for slow-search triage.
func (s *Sink) WriteTimings(ctx context.Context, batchID string, createdAt time.Time, ts []domain.QueryTiming) {
	if s == nil || len(ts) == 0 {
		return
	}

	const table = "obitwatch.batch_query_timings (batch_id, created_at, search_id, engine_ms, insert_ms)"
	rows := make([][]any, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []any{batchID, createdAt.UTC(), t.SearchID, t.Engine.Milliseconds(), t.Insert.Milliseconds()})
	}
	if err := s.ch.Insert(ctx, table, rows); err != nil {
		logger.Named("batch-metrics").Warn().Err(err).Str("batch_id", batchID).Msg("timing insert failed")
	}
}
