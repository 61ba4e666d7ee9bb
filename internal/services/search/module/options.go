package module

import (
	"time"

	"obitwatch/internal/platform/config"
)

// Options for the search engine module
type Options struct {
	MaxResults        int
	RecencyWindowDays int
	DomainsBlocked    []string
	EnrichPages       bool
	EnrichTopN        int
	EnrichConcurrency int
	EnrichTimeout     time.Duration
}

// FromConfig fills options from environment
// CORE_SEARCH_MAX_RESULTS (default 20) caps the ranked output
// CORE_SEARCH_RECENCY_DAYS (default 14) is the DOD recency window
// CORE_SEARCH_DOMAINS_BLOCKED (default ".gov") is a CSV of hostname suffixes
// ENRICH_PAGES (default true) toggles the enrichment stage
// CORE_SEARCH_ENRICH_TOP (default 1) is how many top results get enriched
// CORE_SEARCH_ENRICH_CONCURRENCY (default 3) bounds the worker pool
// CORE_SEARCH_ENRICH_TIMEOUT (default 8s) bounds each page fetch
func FromConfig(cfg config.Conf) Options {
	s := cfg.Prefix("CORE_SEARCH_")
	return Options{
		MaxResults:        s.MayInt("MAX_RESULTS", 20),
		RecencyWindowDays: s.MayInt("RECENCY_DAYS", 14),
		DomainsBlocked:    s.MayCSV("DOMAINS_BLOCKED", []string{".gov"}),
		EnrichPages:       cfg.MayBool("ENRICH_PAGES", true),
		EnrichTopN:        s.MayInt("ENRICH_TOP", 1),
		EnrichConcurrency: s.MayInt("ENRICH_CONCURRENCY", 3),
		EnrichTimeout:     s.MayDuration("ENRICH_TIMEOUT", 8*time.Second),
	}
}
