package engine

import (
	"context"
	"time"
)

// WarningThreshold is the remaining time under which a countdown switches
// to its warning state.
const WarningThreshold = 5 * time.Minute

// Tick is one observation of the session clock.
type Tick struct {
	Elapsed time.Duration
	// Remaining and Warning are meaningful only when Limited.
	Remaining time.Duration
	Limited   bool
	Warning   bool
}

// Timer drives the 1-second session clock. Elapsed time is always derived
// from the wall clock, never from the tick count, so a delayed tick does
// not accumulate drift.
type Timer struct {
	limit    time.Duration // 0 = untimed, counts up unbounded
	interval time.Duration
	now      func() time.Time
}

// NewTimer creates a timer for a session with the given limit (0 for
// untimed).
func NewTimer(limit time.Duration) *Timer {
	return &Timer{
		limit:    limit,
		interval: time.Second,
		now:      time.Now,
	}
}

// Run blocks, emitting a Tick each interval until ctx is cancelled or the
// limit expires. On expiry it invokes onExpire exactly once and returns:
// the forced-submit transition, identical to a manual finish. Callers run
// it in a goroutine and cancel ctx the moment the session finalizes or is
// abandoned, so a stale timer can never finalize a discarded session.
func (t *Timer) Run(ctx context.Context, startedAt time.Time, onTick func(Tick), onExpire func()) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := t.now().Sub(startedAt)
			tick := Tick{Elapsed: elapsed}

			if t.limit > 0 {
				tick.Limited = true
				tick.Remaining = t.limit - elapsed
				if tick.Remaining <= 0 {
					if onExpire != nil {
						onExpire()
					}
					return
				}
				tick.Warning = tick.Remaining < WarningThreshold
			}

			if onTick != nil {
				onTick(tick)
			}
		}
	}
}
