// Package schedulestore holds the process-wide static schedule with
// periodic atomic refresh (§4.8).
package schedulestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mini-rodalies-3d/delaymap/internal/gtfs"
	"github.com/mini-rodalies-3d/delaymap/internal/telemetry"
)

// Loader fetches and parses a complete static schedule from upstream.
type Loader func(ctx context.Context) (*gtfs.Schedule, error)

// Store is a read-mostly holder of the static schedule, safe for
// concurrent use. Many goroutines may read at once; a refresh excludes all
// of them for the brief duration of the pointer swap.
type Store struct {
	mu       sync.RWMutex
	schedule *gtfs.Schedule

	load     Loader
	reporter telemetry.Reporter
}

// New builds a Store and performs the first load synchronously - per §7,
// if the very first load fails there is nothing to serve.
func New(ctx context.Context, load Loader, reporter telemetry.Reporter) (*Store, error) {
	s := &Store{load: load, reporter: reporter}
	sched, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial schedule load: %w", err)
	}
	s.schedule = sched
	return s, nil
}

// Get returns the currently active schedule. The returned pointer is
// stable for as long as the caller holds it; it is never mutated in place,
// only replaced, so callers need no lock once they have it.
func (s *Store) Get() *gtfs.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// Refresh reloads the schedule and swaps it in. A failure is reported to
// telemetry; the previous schedule remains active.
func (s *Store) Refresh(ctx context.Context) {
	sched, err := s.load(ctx)
	if err != nil {
		s.reporter.ReportError(fmt.Errorf("schedule refresh: %w", err), map[string]string{"kind": "ScheduleLoad"})
		return
	}
	s.mu.Lock()
	s.schedule = sched
	s.mu.Unlock()
}

// RunPeriodicRefresh blocks, calling Refresh every interval, until ctx is
// cancelled. Intended to run in its own goroutine for the lifetime of the
// process.
func (s *Store) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
