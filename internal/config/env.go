// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the COLLATZ_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Input
	{"NUM", []string{"num"}, func(c *AppConfig, v string) { c.Num = v }},
	{"FILE", []string{"file"}, func(c *AppConfig, v string) { c.File = v }},
	{"ONES", []string{"ones"}, func(c *AppConfig, v string) { c.Ones = v }},

	// Numeric overrides
	{"LUT", []string{"lut"}, func(c *AppConfig, v string) { c.LUT = parseIntEnv(v, c.LUT) }},
	{"PROGRESS", []string{"progress"}, func(c *AppConfig, v string) { c.ProgressInterval = parseIntEnv(v, c.ProgressInterval) }},
	{"MAX_BYTES", []string{"max-bytes"}, func(c *AppConfig, v string) { c.MaxBytes = parseIntEnv(v, c.MaxBytes) }},
	{"VERIFY_LIMIT", []string{"verify-limit"}, func(c *AppConfig, v string) { c.VerifyLimit = parseIntEnv(v, c.VerifyLimit) }},

	// String overrides
	{"KERNEL", []string{"kernel"}, func(c *AppConfig, v string) { c.Kernel = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"GC", []string{"gc"}, func(c *AppConfig, v string) { c.GCMode = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},

	// Boolean overrides
	{"NO_EXTEND", []string{"no-extend"}, func(c *AppConfig, v string) { c.NoExtend = parseBoolEnv(v, c.NoExtend) }},
	{"VERIFY", []string{"verify"}, func(c *AppConfig, v string) { c.Verify = parseBoolEnv(v, c.Verify) }},
	{"SPINNER", []string{"spinner"}, func(c *AppConfig, v string) { c.Spinner = parseBoolEnv(v, c.Spinner) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
}

// parseIntEnv parses an integer environment variable value, returning
// defaultVal when it is not a valid integer.
func parseIntEnv(val string, defaultVal int) int {
	if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
		return parsed
	}
	return defaultVal
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with COLLATZ_):
//   - NUM, FILE, ONES, LUT, PROGRESS, MAX_BYTES, VERIFY_LIMIT, KERNEL,
//     OUTPUT, METRICS_FILE, GC, LOG_LEVEL, NO_EXTEND, VERIFY, SPINNER, QUIET, TUI
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
