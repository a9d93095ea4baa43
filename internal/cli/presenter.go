package cli

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/format"
	"github.com/agbru/collatz/internal/orchestration"
	"github.com/agbru/collatz/internal/ui"
)

const wordBytes = bignum.WordBytes

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output: bytes: lines, or a spinner when Spinner is set. Quiet drops all
// progress output.
type CLIProgressReporter struct {
	Spinner bool
	Quiet   bool
}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress dispatches to the configured display.
func (r CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	switch {
	case r.Quiet:
		orchestration.NullProgressReporter{}.DisplayProgress(wg, progressChan, numRuns, out)
	case r.Spinner:
		DisplaySpinnerProgress(wg, progressChan, numRuns, out)
	default:
		DisplayProgress(wg, progressChan, numRuns, out)
	}
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct {
	Quiet bool
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays one row per verification run with its
// duration, status and counters. Uses manual padding to correctly handle
// ANSI color codes. Nothing is printed in quiet mode.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Verification Summary ---\n")

	maxNameLen := len("Run")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(res.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(formatRunDuration(res)))
	}

	fmt.Fprintf(out, "%sRun%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), padRight("", maxNameLen-len("Run")),
		ui.ColorBold(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorBold(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = ui.Paint(ui.ColorRed(), fmt.Sprintf("failure (%v)", res.Err))
		} else {
			status = ui.Paint(ui.ColorGreen(), "ok") + "  " + res.Stats.String()
		}
		duration := formatRunDuration(res)
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			ui.Paint(ui.ColorPrimary(), res.Name), padRight("", maxNameLen-utf8.RuneCountInString(res.Name)),
			ui.Paint(ui.ColorYellow(), duration), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			status)
	}
}

func formatRunDuration(res orchestration.RunResult) string {
	if res.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(res.Duration)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the counters line.
func (CLIResultPresenter) PresentResult(result orchestration.RunResult, out io.Writer) {
	DisplayResult(out, result.Stats)
}
