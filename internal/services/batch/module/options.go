package module

import (
	"time"

	"obitwatch/internal/platform/config"
)

// Options for the batch module
type Options struct {
	ListLimit int
	LeaseTTL  time.Duration
	Leases    bool
}

// FromConfig fills options from environment
// CORE_BATCH_LIST_LIMIT (default 50) caps GET /batches listings
// CORE_BATCH_LEASES (default true) enables the day-scoped sweep lease
// CORE_BATCH_LEASE_TTL (default 30m) is the lease auto-reclaim horizon
func FromConfig(cfg config.Conf) Options {
	b := cfg.Prefix("CORE_BATCH_")
	return Options{
		ListLimit: b.MayInt("LIST_LIMIT", 50),
		Leases:    b.MayBool("LEASES", true),
		LeaseTTL:  b.MayDuration("LEASE_TTL", 30*time.Minute),
	}
}
