package tui

import (
	"time"

	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/orchestration"
)

// ProgressMsg carries one aggregated progress notification.
type ProgressMsg struct {
	Index    int
	Name     string
	Progress collatz.Progress
	// Rate is the smoothed iteration rate of the run, per second.
	Rate float64
	// MaxBytes is the largest buffer across all runs.
	MaxBytes int
	Elapsed  time.Duration
}

// ProgressDoneMsg is sent once the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-run results of a verification.
type ComparisonResultsMsg struct {
	Results []orchestration.RunResult
}

// FinalResultMsg carries the result that is reported to the user.
type FinalResultMsg struct {
	Result orchestration.RunResult
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err error
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries Go runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory usage, and the resident
// size of the process.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	RSS        uint64
}

// RunCompleteMsg is sent when every run has finished and the results have
// been analyzed.
type RunCompleteMsg struct {
	Stats collatz.Stats
	// Duration is the time taken by the primary run.
	Duration time.Duration
	Err      error
}

// ContextCancelledMsg is sent when the parent context is canceled.
type ContextCancelledMsg struct {
	Err error
}
