// Package poller drives the periodic fetch-and-recompute cycle and owns the
// single published snapshot. It is the only stateful part of the pipeline;
// everything it calls is pure.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"campusair-server/internal/modules/air/types"
)

// CycleFunc runs one full fetch/parse/aggregate pass and returns the next
// snapshot. A returned error means the cycle produced nothing usable (for
// example both feeds unreachable); the scheduler then keeps the last known
// good snapshot.
type CycleFunc func(ctx context.Context, now time.Time) (*types.Snapshot, error)

// Scheduler triggers poll cycles on an interval and publishes results by
// atomic pointer swap. Overlapping cycles are tolerated: each cycle carries a
// monotonically increasing sequence number and only the most recently
// initiated cycle may publish, so a slow stale response can never clobber
// fresher state.
type Scheduler struct {
	intervalFn func() time.Duration
	cycle      CycleFunc

	seq     atomic.Uint64
	current atomic.Pointer[types.Snapshot]
	mu      sync.Mutex // serializes publish decisions
}

// New builds a Scheduler. intervalFn is consulted before each wait so a
// settings change takes effect on the next tick; returning 0 disables
// repeated polling (manual polls only).
func New(intervalFn func() time.Duration, cycle CycleFunc) *Scheduler {
	return &Scheduler{intervalFn: intervalFn, cycle: cycle}
}

// Current returns the latest published snapshot, or nil before the first
// completed cycle. Safe for concurrent use at any time.
func (s *Scheduler) Current() *types.Snapshot {
	return s.current.Load()
}

// Poll runs one cycle synchronously and publishes its result unless a newer
// cycle was initiated in the meantime. A failed cycle never propagates an
// error to the caller; it is folded into the snapshot annotations.
func (s *Scheduler) Poll(ctx context.Context) {
	seq := s.seq.Add(1)
	now := time.Now()
	snap, err := s.cycle(ctx, now)
	s.apply(seq, now, snap, err)
}

// Run performs an initial poll, then keeps polling on the configured
// interval until ctx is cancelled. A single failed cycle never stops the
// loop. Returns ctx.Err() on shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Poll(ctx)

	for {
		interval := s.intervalFn()
		if interval <= 0 {
			// Repeated polling disabled; wait for a settings change or shutdown.
			interval = time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
			// Run the cycle in its own goroutine so a slow fetch cannot delay
			// the next tick; the sequence check discards stale results.
			go s.Poll(ctx)
		}
	}
}

func (s *Scheduler) apply(seq uint64, now time.Time, snap *types.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		slog.Debug("discarding stale poll result", "cycle", seq, "latest", s.seq.Load())
		return
	}

	if err != nil {
		// Last-known-good: retain the previous data wholesale, annotate the
		// failure, and keep scheduling.
		next := &types.Snapshot{}
		if prev := s.current.Load(); prev != nil {
			cp := *prev
			next = &cp
		}
		next.Cycle = seq
		next.LastError = err.Error()
		s.current.Store(next)
		slog.Warn("poll cycle failed, keeping previous snapshot", "cycle", seq, "error", err)
		return
	}

	snap.Cycle = seq
	snap.LastSuccessfulPoll = now
	s.current.Store(snap)
	slog.Debug("snapshot published", "cycle", seq, "readings", len(snap.RawReadings))
}
