package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/collatz"
	apperrors "github.com/agbru/collatz/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking an engine when
// the display is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteRuns runs every runner on its own copy of n, concurrently.
//
// Each engine is single-threaded; the concurrency here is only between
// runs. Progress notifications from all runs are funneled into one channel
// consumed by progressReporter, which has finished by the time ExecuteRuns
// returns.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - runners: The runs to execute.
//   - n: The starting value. It is not modified.
//   - progressReporter: The progress reporter (NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []RunResult: One result per runner, in runner order.
func ExecuteRuns(ctx context.Context, runners []Runner, n *bignum.Nat, progressReporter ProgressReporter, out io.Writer) []RunResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]RunResult, len(runners))
	progressChan := make(chan ProgressUpdate, len(runners)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(runners), out)

	for i, r := range runners {
		idx, runner := i, r
		g.Go(func() error {
			name := runner.Name()
			observer := collatz.ObserverFunc(func(p collatz.Progress) {
				select {
				case progressChan <- ProgressUpdate{Index: idx, Name: name, Progress: p}:
				case <-ctx.Done():
				}
			})
			start := time.Now()
			st, err := runner.Run(ctx, n, observer)
			results[idx] = RunResult{Name: name, Stats: st, Duration: time.Since(start), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults checks that every successful run agrees with the first
// one and reports the outcome.
//
// With several results it sorts them (successes first, then by duration),
// presents the comparison table and a global status line. The result of the
// first run is then presented.
//
// Parameters:
//   - results: The run results, the configured run first.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - collatz.Stats: The counters of the first successful run.
//   - error: The first run error if no run succeeded, or an
//     apperrors.MismatchError if two successful runs disagree.
func AnalyzeResults(results []RunResult, presenter ResultPresenter, out io.Writer) (collatz.Stats, error) {
	if len(results) == 0 {
		return collatz.Stats{}, apperrors.NewConfigError("no runs to analyze")
	}
	if len(results) == 1 {
		if results[0].Err != nil {
			return collatz.Stats{}, results[0].Err
		}
		presenter.PresentResult(results[0], out)
		return results[0].Stats, nil
	}

	primary := results[0]
	sorted := make([]RunResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].Err == nil) != (sorted[j].Err == nil) {
			return sorted[i].Err == nil
		}
		return sorted[i].Duration < sorted[j].Duration
	})

	var firstValid *RunResult
	var firstError error
	if primary.Err == nil {
		firstValid = &primary
	}
	for i := range sorted {
		if sorted[i].Err != nil {
			if firstError == nil {
				firstError = sorted[i].Err
			}
		} else if firstValid == nil {
			firstValid = &sorted[i]
		}
	}

	presenter.PresentComparisonTable(sorted, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run could complete.\n")
		return collatz.Stats{}, firstError
	}

	for _, res := range sorted {
		if res.Err == nil && !res.Stats.SameCounts(firstValid.Stats) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The runs disagree.\n")
			return collatz.Stats{}, apperrors.MismatchError{
				Want:   firstValid.Name,
				Got:    res.Name,
				Detail: fmt.Sprintf("%s vs %s", firstValid.Stats, res.Stats),
			}
		}
	}
	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial. Some runs failed; the others agree.\n")
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success. All runs agree.\n")
	}
	presenter.PresentResult(*firstValid, out)
	return firstValid.Stats, nil
}
