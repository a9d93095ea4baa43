package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/collatz/internal/bignum"
	apperrors "github.com/agbru/collatz/internal/errors"
	"github.com/agbru/collatz/internal/logging"
	"github.com/agbru/collatz/internal/ui"
)

func TestMain(m *testing.M) {
	for _, k := range []string{"NUM", "FILE", "ONES", "LUT", "KERNEL", "VERIFY", "QUIET", "TUI", "SPINNER", "PROGRESS", "MAX_BYTES", "OUTPUT", "METRICS_FILE", "NO_EXTEND", "LOG_LEVEL", "VERIFY_LIMIT", "GC"} {
		os.Unsetenv("COLLATZ_" + k)
	}
	os.Setenv("NO_COLOR", "1")
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	application, err := New(append([]string{"collatz"}, args...), &stderr, WithLogger(logging.NopLogger{}))
	if err != nil {
		return apperrors.ExitCodeFor(err), stdout.String(), stderr.String()
	}
	code := application.Run(context.Background(), &stdout)
	return code, stdout.String(), stderr.String()
}

func TestRun_Positional(t *testing.T) {
	code, out, errOut := run(t, "27")
	require.Equal(t, apperrors.ExitSuccess, code, errOut)
	assert.Equal(t, "mul3 = 41, div2 = 70, total = 111\n", out)
	assert.Empty(t, errOut)
}

func TestRun_Modes(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.bin")
	require.NoError(t, os.WriteFile(seed, []byte{27}, 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"num", []string{"--num", "27", "--lut", "1"}, "mul3 = 41, div2 = 70, total = 111"},
		{"hex", []string{"--num", "0x1B"}, "mul3 = 41, div2 = 70, total = 111"},
		{"file", []string{"--file", seed}, "mul3 = 41, div2 = 70, total = 111"},
		{"ones", []string{"--ones", "1"}, "mul3 = 0, div2 = 0, total = 0"},
		{"zero", []string{"0"}, "mul3 = 0, div2 = 0, total = 0"},
		{"no extension", []string{"--no-extend", "--kernel", "lanes", "27"}, "mul3 = 41, div2 = 70, total = 111"},
		{"gc suspended", []string{"--gc", "aggressive", "97"}, "mul3 = 43, div2 = 75, total = 118"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, tt.args...)
			require.Equal(t, apperrors.ExitSuccess, code, errOut)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRun_Verify(t *testing.T) {
	code, out, errOut := run(t, "--verify", "--ones", "200", "--lut", "8")
	require.Equal(t, apperrors.ExitSuccess, code, errOut)
	assert.Contains(t, out, "--- Verification Summary ---")
	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "Global Status: Success")
}

func TestRun_Quiet(t *testing.T) {
	code, out, _ := run(t, "-q", "--verify", "27")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "mul3 = 41, div2 = 70, total = 111\n", out)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"bad digit", []string{"12a"}, "unexpected character"},
		{"missing file", []string{"--file", filepath.Join(t.TempDir(), "nope.bin")}, "cannot read"},
		{"non-positive ones", []string{"--ones", "0"}, "bit count must be positive"},
		{"input over the ceiling", []string{"--ones", "100000", "--max-bytes", "64"}, "limit: 64"},
		{"growth over the ceiling", []string{"--ones", "32000", "--max-bytes", "4096"}, "limit: 4096"},
		{"ceiling between blocks", []string{"--ones", "32000", "--max-bytes", "5000"},
			fmt.Sprintf("requested %d bytes (limit: 5000)", 5000+bignum.WordBytes)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, tt.args...)
			assert.Equal(t, apperrors.ExitErrorGeneric, code)
			assert.True(t, strings.HasPrefix(errOut, "!!! "), "stderr: %q", errOut)
			assert.Contains(t, errOut, tt.msg)
			assert.NotContains(t, out, "mul3 =")
		})
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	var stderr bytes.Buffer
	_, err := New([]string{"collatz"}, &stderr)
	require.Error(t, err)
	assert.Equal(t, apperrors.ExitErrorGeneric, apperrors.ExitCodeFor(err))
	assert.Contains(t, stderr.String(), "!!! ")

	_, err = New([]string{"collatz", "-h"}, &stderr)
	assert.True(t, IsHelpError(err))
}

func TestRun_OutputFiles(t *testing.T) {
	dir := t.TempDir()
	result := filepath.Join(dir, "out", "result.txt")
	prom := filepath.Join(dir, "run.prom")

	code, out, errOut := run(t, "--ones", "64", "--lut", "4", "-o", result, "--metrics-file", prom)
	require.Equal(t, apperrors.ExitSuccess, code, errOut)
	assert.Contains(t, out, "result saved to: "+result)

	data, err := os.ReadFile(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Input: 2^64 - 1")
	assert.Contains(t, string(data), "# Bits: 64")

	data, err = os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collatz_input_bits 64")
	assert.Contains(t, string(data), "collatz_mul3_steps")
}

func TestRun_ResetsTheme(t *testing.T) {
	code, _, _ := run(t, "--no-color", "27")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, ui.NoColorTheme.Name, ui.GetCurrentTheme().Name)
}

func TestRun_PlainWhenNotATerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	t.Setenv(ui.ThemeEnv, "dark")

	code, out, errOut := run(t, "--progress", "1", "--ones", "2000")
	require.Equal(t, apperrors.ExitSuccess, code, errOut)
	assert.Contains(t, out, "bytes: ")
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, ui.NoColorTheme.Name, ui.GetCurrentTheme().Name)
}

func TestHasVersionFlag(t *testing.T) {
	assert.True(t, HasVersionFlag([]string{"27", "--version"}))
	assert.True(t, HasVersionFlag([]string{"-V"}))
	assert.False(t, HasVersionFlag([]string{"27", "-v"}))
	assert.False(t, HasVersionFlag(nil))
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "collatz "+Version+"\n"))
	assert.Contains(t, buf.String(), "features:")
}

func TestDescribeInput(t *testing.T) {
	assert.Equal(t, "27", describeInput("num", "27"))
	assert.Equal(t, "2^8 - 1", describeInput("ones", "8"))
	assert.Equal(t, "file a.bin", describeInput("file", "a.bin"))
}
