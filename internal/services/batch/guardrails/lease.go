// Package guardrails provides the advisory lease that keeps two batch
// processes from sweeping the saved searches at the same time
package guardrails

import (
	"context"
	"fmt"
	"os"
	"time"

	"obitwatch/internal/modkit"
	"obitwatch/internal/platform/store"
)

// ErrLeaseHeld signals another process owns the sweep already
var ErrLeaseHeld = fmt.Errorf("batch: sweep lease already held")

// MakeSweepLease claims the day-scoped lease row (auto-reclaim via
// expires_at). A second process starting the same day's sweep gets
// ErrLeaseHeld and skips cleanly.
func MakeSweepLease(
	deps modkit.Deps,
	owner string,
	ttl time.Duration,
) func(ctx context.Context, day time.Time, do func(context.Context) error) error {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())

	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	toInterval := func(d time.Duration) string { return fmt.Sprintf("%d seconds", int64(d/time.Second)) }

	return func(ctx context.Context, day time.Time, do func(context.Context) error) error {
		var claimed bool
		if err := deps.PG.Tx(ctx, func(q store.RowQuerier) error {
			row := q.QueryRow(ctx, `
				INSERT INTO batch_leases (day_utc, claimed_at, owner, expires_at)
				VALUES ($1, now(), $2, now() + ($3)::interval)
				ON CONFLICT (day_utc) DO UPDATE
				   SET claimed_at = now(), owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
				 WHERE batch_leases.expires_at <= now()
				RETURNING true
			`, day.UTC().Truncate(24*time.Hour), owner, toInterval(ttl))
			var ok bool
			if err := row.Scan(&ok); err != nil {
				return nil // no rows -> couldn't claim
			}
			claimed = ok
			return nil
		}); err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld
		}
		return do(ctx)
	}
}
