package orchestration

import (
	"time"

	"github.com/agbru/collatz/internal/collatz"
)

// ProgressAggregator tracks the latest notification of every run and the
// iteration rate of each. Both the CLI and the TUI use it to avoid
// duplicating the bookkeeping.
type ProgressAggregator struct {
	start   time.Time
	latest  []collatz.Progress
	updated []time.Time
	rates   []float64
}

// NewProgressAggregator creates a new aggregator for the given number of
// runs. Returns nil if numRuns <= 0.
func NewProgressAggregator(numRuns int) *ProgressAggregator {
	if numRuns <= 0 {
		return nil
	}
	now := time.Now()
	a := &ProgressAggregator{
		start:   now,
		latest:  make([]collatz.Progress, numRuns),
		updated: make([]time.Time, numRuns),
		rates:   make([]float64, numRuns),
	}
	for i := range a.updated {
		a.updated[i] = now
	}
	return a
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Index is the run that sent the update.
	Index    int
	Progress collatz.Progress
	// Rate is the smoothed iteration rate of that run, per second.
	Rate float64
	// MaxBytes is the largest buffer across all runs.
	MaxBytes int
	// Elapsed is the time since the aggregator was created.
	Elapsed time.Duration
}

// Update processes a single progress update and returns the aggregated
// result. Updates with an out-of-range index are ignored.
func (a *ProgressAggregator) Update(u ProgressUpdate) AggregatedProgress {
	return a.update(u, time.Now())
}

func (a *ProgressAggregator) update(u ProgressUpdate, now time.Time) AggregatedProgress {
	if u.Index < 0 || u.Index >= len(a.latest) {
		return AggregatedProgress{Index: u.Index, Progress: u.Progress}
	}
	prev := a.latest[u.Index]
	if dt := now.Sub(a.updated[u.Index]).Seconds(); dt > 0 && u.Progress.Iterations >= prev.Iterations {
		instant := float64(u.Progress.Iterations-prev.Iterations) / dt
		if a.rates[u.Index] > 0 {
			a.rates[u.Index] = 0.7*a.rates[u.Index] + 0.3*instant
		} else {
			a.rates[u.Index] = instant
		}
	}
	a.latest[u.Index] = u.Progress
	a.updated[u.Index] = now

	return AggregatedProgress{
		Index:    u.Index,
		Progress: u.Progress,
		Rate:     a.rates[u.Index],
		MaxBytes: a.MaxBytes(),
		Elapsed:  now.Sub(a.start),
	}
}

// MaxBytes returns the largest buffer size reported by any run.
func (a *ProgressAggregator) MaxBytes() int {
	m := 0
	for _, p := range a.latest {
		m = max(m, p.Bytes)
	}
	return m
}

// Done reports whether every run has sent its final notification.
func (a *ProgressAggregator) Done() bool {
	for _, p := range a.latest {
		if !p.Done {
			return false
		}
	}
	return true
}

// NumRuns returns the number of runs being tracked.
func (a *ProgressAggregator) NumRuns() int {
	return len(a.latest)
}

// IsMultiRun returns true if tracking more than one run.
func (a *ProgressAggregator) IsMultiRun() bool {
	return len(a.latest) > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
