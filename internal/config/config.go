// Package config defines the application configuration and parses it from
// command-line flags and COLLATZ_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/collatz"
	apperrors "github.com/agbru/collatz/internal/errors"
	"github.com/agbru/collatz/internal/loader"
	"github.com/agbru/collatz/internal/metrics"
)

// EnvPrefix is the prefix of every environment variable read by the
// application.
const EnvPrefix = "COLLATZ_"

// DefaultVerifyLimit is the largest input, in bits, for which --verify also
// runs the step-by-step reference engine.
const DefaultVerifyLimit = 1 << 16

// logLevels lists the accepted --log-level values.
var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Num is a decimal or 0x-prefixed hexadecimal starting value.
	Num string
	// File is the path of a raw little-endian starting value.
	File string
	// Ones is the bit count n of the starting value 2^n - 1. It is kept as
	// text so that invalid counts are reported as input errors.
	Ones string

	// LUT is the requested table width. ApplyWindowLimits clamps it once the
	// input size is known.
	LUT int
	// Kernel names the multiply-add kernel ("auto", "scalar", "lanes").
	Kernel string
	// NoExtend disables folding extra bits into looked-up transforms.
	NoExtend bool
	// ProgressInterval is the number of iterations between progress lines.
	// Zero disables them.
	ProgressInterval int
	// MaxBytes caps the working buffer. Zero means unlimited.
	MaxBytes int
	// GCMode selects whether the garbage collector is suspended during the
	// run ("auto", "aggressive", "disabled").
	GCMode string

	// Verify runs every kernel, and the reference engine for inputs up to
	// VerifyLimit bits, and compares their counters.
	Verify      bool
	VerifyLimit int

	// OutputFile, if set, receives a copy of the result summary.
	OutputFile string
	// MetricsFile, if set, receives the run counters in the Prometheus text
	// format.
	MetricsFile string

	Spinner  bool
	TUI      bool
	NoColor  bool
	Quiet    bool
	LogLevel string
}

// Input returns the configured input mode and its argument. Exactly one of
// Num, File and Ones must be set.
func (c AppConfig) Input() (loader.Mode, string, error) {
	var mode loader.Mode
	var arg string
	n := 0
	if c.Num != "" {
		mode, arg = loader.ModeNum, c.Num
		n++
	}
	if c.File != "" {
		mode, arg = loader.ModeFile, c.File
		n++
	}
	if c.Ones != "" {
		mode, arg = loader.ModeOnes, c.Ones
		n++
	}
	switch n {
	case 0:
		return "", "", apperrors.NewConfigError("missing input: give a number, or one of --num, --file, --ones")
	case 1:
		return mode, arg, nil
	}
	return "", "", apperrors.NewConfigError("conflicting inputs: use only one of --num, --file, --ones")
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if _, _, err := c.Input(); err != nil {
		return err
	}
	if _, err := bignum.SelectKernel(c.Kernel); err != nil {
		return err
	}
	if c.ProgressInterval < 0 {
		return apperrors.NewConfigError("--progress must be non-negative, got %d", c.ProgressInterval)
	}
	if c.MaxBytes < 0 {
		return apperrors.NewConfigError("--max-bytes must be non-negative, got %d", c.MaxBytes)
	}
	if c.VerifyLimit < 0 {
		return apperrors.NewConfigError("--verify-limit must be non-negative, got %d", c.VerifyLimit)
	}
	if _, err := metrics.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("--gc: %v (valid: %s)", err, strings.Join(metrics.GCModes, ", "))
	}
	if !isLogLevel(c.LogLevel) {
		return apperrors.NewConfigError("unknown log level %q (valid: %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.TUI && c.Spinner {
		return apperrors.NewConfigError("--tui and --spinner cannot be combined")
	}
	return nil
}

func isLogLevel(s string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(s, l) {
			return true
		}
	}
	return false
}

// ParseConfig parses the command-line arguments into an AppConfig.
//
// Priority is CLI flags, then COLLATZ_* environment variables, then
// defaults. A single positional argument is taken as --num.
//
// Parameters:
//   - programName: The name of the program, used in usage messages.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: The writer for usage and error output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] (NUMBER | --num NUMBER | --file PATH | --ones N)\n\n", programName)
		fmt.Fprintf(errorWriter, "Counts the odd steps (mul3) and halving steps (div2) of the 3x+1 trajectory.\n\n")
		fmt.Fprintf(errorWriter, "Flags:\n")
		fs.PrintDefaults()
	}

	cfg := AppConfig{}
	fs.StringVar(&cfg.Num, "num", "", "Starting value, decimal or hexadecimal with a 0x prefix.")
	fs.StringVar(&cfg.File, "file", "", "Read the starting value from a file of little-endian bytes.")
	fs.StringVar(&cfg.Ones, "ones", "", "Start from 2^N - 1.")
	fs.IntVar(&cfg.LUT, "lut", collatz.DefaultWindow, fmt.Sprintf("Table width in bits, clamped to [%d, %d].", collatz.MinWindow, min(collatz.MaxWindow, collatz.SafeWindow())))
	fs.StringVar(&cfg.Kernel, "kernel", bignum.KernelAuto, "Multiply-add kernel: "+strings.Join(bignum.KernelNames(), ", ")+".")
	fs.BoolVar(&cfg.NoExtend, "no-extend", false, "Do not extend table transforms bit by bit.")
	fs.IntVar(&cfg.ProgressInterval, "progress", collatz.DefaultProgressInterval, "Iterations between progress reports (0 disables them).")
	fs.IntVar(&cfg.MaxBytes, "max-bytes", 0, "Abort when the working buffer would exceed this many bytes (0 = unlimited).")
	fs.StringVar(&cfg.GCMode, "gc", string(metrics.GCModeAuto), "Garbage collector control during the run: "+strings.Join(metrics.GCModes, ", ")+".")
	fs.BoolVar(&cfg.Verify, "verify", false, "Run every kernel and the reference engine and compare the results.")
	fs.IntVar(&cfg.VerifyLimit, "verify-limit", DefaultVerifyLimit, "Largest input in bits checked against the reference engine.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Also write the result summary to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write the run counters to this file in the Prometheus text format.")
	fs.BoolVar(&cfg.Spinner, "spinner", false, "Show progress in a spinner instead of bytes: lines.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show an interactive dashboard while running.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result line.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Diagnostic log level: "+strings.Join(logLevels, ", ")+".")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		if isFlagSetAny(fs, "num") {
			return AppConfig{}, apperrors.NewConfigError("number given both as --num and as an argument")
		}
		cfg.Num = rest[0]
	default:
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(rest[1:], " "))
	}

	applyEnvOverrides(&cfg, fs)
	if len(fs.Args()) == 1 {
		// A positional number wins over COLLATZ_FILE and COLLATZ_ONES.
		if !isFlagSet(fs, "file") {
			cfg.File = ""
		}
		if !isFlagSet(fs, "ones") {
			cfg.Ones = ""
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "!!! "+err.Error())
		return AppConfig{}, err
	}
	return cfg, nil
}
