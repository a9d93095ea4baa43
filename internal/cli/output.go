// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayError], [DisplayRunSummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatBytesLine], [FormatSpinnerSuffix].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/format"
	"github.com/agbru/collatz/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints the result line only.
	Quiet bool
}

// RunSummary describes a finished run for the result file.
type RunSummary struct {
	// Input describes the starting value ("27", "--ones 100", a file path).
	Input     string
	InputBits int
	Stats     collatz.Stats
	Kernel    string
	Window    int
	Extend    bool

	TableDuration time.Duration
	RunDuration   time.Duration
}

// DisplayTableTime prints the lut: line when the table took longer than
// ReportThreshold to build.
func DisplayTableTime(out io.Writer, d time.Duration) {
	if d > ReportThreshold {
		fmt.Fprintln(out, ui.Paint(ui.ColorDim(), "lut: "+format.FormatSeconds(d)))
	}
}

// DisplayRunTime prints the time: line when the run took longer than
// ReportThreshold.
func DisplayRunTime(out io.Writer, d time.Duration) {
	if d > ReportThreshold {
		fmt.Fprintln(out, ui.Paint(ui.ColorDim(), "time: "+format.FormatSeconds(d)))
	}
}

// DisplayResult prints the counters line. It is never colored so that
// scripts can match it.
func DisplayResult(out io.Writer, st collatz.Stats) {
	fmt.Fprintln(out, st.String())
}

// DisplayError prints err on the error stream with the !!! prefix.
func DisplayError(errOut io.Writer, err error) {
	fmt.Fprintln(errOut, ui.Paint(ui.ColorRed(), "!!! "+err.Error()))
}

// WriteResultToFile writes a run summary to a file.
//
// Parameters:
//   - summary: The run to describe.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(summary RunSummary, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Collatz Trajectory\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Input: %s\n", summary.Input)
	fmt.Fprintf(file, "# Bits: %d\n", summary.InputBits)
	fmt.Fprintf(file, "# Kernel: %s\n", summary.Kernel)
	fmt.Fprintf(file, "# Table width: %d\n", summary.Window)
	fmt.Fprintf(file, "# Extension: %t\n", summary.Extend)
	fmt.Fprintf(file, "# Table build: %s\n", format.FormatExecutionDuration(summary.TableDuration))
	fmt.Fprintf(file, "# Duration: %s\n", format.FormatExecutionDuration(summary.RunDuration))
	fmt.Fprintf(file, "# Iterations: %d\n", summary.Stats.Iterations)
	fmt.Fprintf(file, "# Peak buffer: %s\n", format.FormatBytes(uint64(summary.Stats.PeakWords)*uint64(wordBytes)))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n", summary.Stats)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayRunSummary follows the result line: it prints the time: line unless
// quiet, and saves the summary when an output file is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayRunSummary(out io.Writer, summary RunSummary, config OutputConfig) error {
	if !config.Quiet {
		DisplayRunTime(out, summary.RunDuration)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(summary, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintln(out, ui.Paint(ui.ColorGreen(), "result saved to: "+config.OutputFile))
		}
	}
	return nil
}
