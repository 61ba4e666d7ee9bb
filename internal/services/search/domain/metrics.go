package domain

import (
	"context"
	"sync/atomic"
)

// Metrics is the runtime counter set one batch (or one-shot search)
// constructs and threads down the pipeline via context. Counters are
// atomic; every method is safe on a nil receiver so callers never have to
// check whether a collector is attached.
type Metrics struct {
	ProviderCalls atomic.Int64
	EnrichFetches atomic.Int64
}

// AddProviderCall counts one search engine API call.
func (m *Metrics) AddProviderCall() {
	if m != nil {
		m.ProviderCalls.Add(1)
	}
}

// AddEnrichFetch counts one enrichment page fetch.
func (m *Metrics) AddEnrichFetch() {
	if m != nil {
		m.EnrichFetches.Add(1)
	}
}

type metricsKey struct{}

// WithMetrics attaches a collector to the context.
func WithMetrics(ctx context.Context, m *Metrics) context.Context {
	return context.WithValue(ctx, metricsKey{}, m)
}

// MetricsFrom returns the attached collector, or nil (safe to call through).
func MetricsFrom(ctx context.Context) *Metrics {
	m, _ := ctx.Value(metricsKey{}).(*Metrics)
	return m
}
