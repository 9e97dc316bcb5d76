package workers

import (
	"context"
	"log"
	"time"
)

type IdleSessionDeleter interface {
	DeleteIdle(ctx context.Context, before time.Time) ([]string, error)
}

// SessionReaper evicts sessions that have not been touched for longer than
// the configured TTL. It sweeps on every tick and on demand via Trigger.
type SessionReaper struct {
	repo     IdleSessionDeleter
	ttl      time.Duration
	interval time.Duration
	triggers chan struct{}
	now      func() time.Time
}

func NewSessionReaper(repo IdleSessionDeleter, ttl, interval time.Duration) *SessionReaper {
	return &SessionReaper{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		triggers: make(chan struct{}, 1),
		now:      time.Now,
	}
}

func (r *SessionReaper) Start(ctx context.Context) {
	go func() {
		log.Println("[REAPER] Session reaper started in background...")

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep(ctx)
			case <-r.triggers:
				r.Sweep(ctx)
			case <-ctx.Done():
				log.Println("[REAPER] Session reaper shutting down...")
				return
			}
		}
	}()
}

// Trigger requests a sweep without blocking. Requests coalesce while one is pending.
func (r *SessionReaper) Trigger() {
	select {
	case r.triggers <- struct{}{}:
	default:
	}
}

func (r *SessionReaper) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.ttl)

	removed, err := r.repo.DeleteIdle(ctx, cutoff)
	if err != nil {
		log.Printf("[REAPER] Failed to delete idle sessions: %v", err)
		return 0
	}

	if len(removed) > 0 {
		log.Printf("[REAPER] Removed %d idle sessions (untouched since %s)", len(removed), cutoff.Format(time.RFC3339))
	}
	return len(removed)
}
