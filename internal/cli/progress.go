package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/agbru/collatz/internal/format"
	"github.com/agbru/collatz/internal/orchestration"
	"github.com/agbru/collatz/internal/ui"
)

// FormatBytesLine returns the periodic progress line for a buffer of n
// bytes.
func FormatBytesLine(n int) string {
	return fmt.Sprintf("bytes: %d", n)
}

// DisplayProgress prints a bytes: line for every periodic notification.
// Final notifications are not printed; the result line follows them. When
// several runs are tracked each line is prefixed with the run's name.
//
// Parameters:
//   - wg: Signaled when the channel is closed and drained.
//   - progressChan: The progress updates.
//   - numRuns: The number of runs feeding the channel.
//   - out: The writer for the progress lines.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	for u := range progressChan {
		if u.Progress.Done {
			continue
		}
		line := FormatBytesLine(u.Progress.Bytes)
		if numRuns > 1 {
			line = "[" + u.Name + "] " + line
		}
		fmt.Fprintln(out, ui.Paint(ui.ColorDim(), line))
	}
}

// FormatSpinnerSuffix describes an aggregated update for the spinner.
func FormatSpinnerSuffix(ap orchestration.AggregatedProgress) string {
	return fmt.Sprintf(" %s, %d iterations, mul3 = %d, div2 = %d, %s",
		format.FormatBytes(uint64(ap.MaxBytes)),
		ap.Progress.Iterations, ap.Progress.Mul3, ap.Progress.Div2,
		format.FormatRate(ap.Rate, "it"))
}

// DisplaySpinnerProgress shows the progress in a spinner instead of bytes:
// lines. With several runs, the suffix follows the most recent update.
func DisplaySpinnerProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(" starting")
	s.Start()
	defer s.Stop()

	for u := range progressChan {
		s.UpdateSuffix(FormatSpinnerSuffix(agg.Update(u)))
	}
}
