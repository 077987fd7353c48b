package service

import (
	"context"
	"log"
	"time"
)

const DefaultSweepInterval = 30 * time.Second

// HoldExpirer is the slice of the hold repository the sweeper needs.
type HoldExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically flips overdue holds to expired so their seats count
// as available again. Each tick is one bulk idempotent update; a failed tick
// is logged and simply retried on the next interval.
type Sweeper struct {
	holds    HoldExpirer
	interval time.Duration
}

func NewSweeper(holds HoldExpirer, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{holds: holds, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[sweeper] stopping")
				return
			case <-ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					log.Printf("[sweeper] sweep failed: %v", err)
				}
			}
		}
	}()
}

// RunOnce performs a single sweep and returns how many holds it expired.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	expired, err := s.holds.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Printf("[sweeper] expired %d overdue hold(s)", expired)
	}
	return expired, nil
}
