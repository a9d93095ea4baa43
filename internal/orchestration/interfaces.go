package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/collatz/internal/collatz"
)

// RunResult encapsulates the outcome of a single engine run.
// It serves as the shared domain type between orchestration and presentation layers.
type RunResult struct {
	// Name identifies the engine configuration (e.g., "lanes/lut=20").
	Name string
	// Stats holds the counters of the run. It is zero if an error occurred.
	Stats collatz.Stats
	// Duration is the time taken by the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// ProgressUpdate is a progress notification tagged with the run it comes
// from.
type ProgressUpdate struct {
	// Index is the position of the run in the slice given to ExecuteRuns.
	Index int
	// Name is the run's name.
	Name     string
	Progress collatz.Progress
}

// ProgressReporter defines the interface for displaying run progress.
// Implementations handle the visual representation of progress (bytes:
// lines, spinners, dashboards) while the orchestration layer focuses on
// coordinating the runs.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the runs.
	//   - numRuns: The number of concurrent runs being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting run results.
type ResultPresenter interface {
	// PresentComparisonTable displays one line per run of a verification.
	PresentComparisonTable(results []RunResult, out io.Writer)

	// PresentResult displays the counters of the run.
	PresentResult(result RunResult, out io.Writer)
}
