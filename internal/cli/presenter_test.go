package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable([]orchestration.RunResult{
		{Name: "lanes/lut=20", Stats: collatz.Stats{Mul3: 41, Div2: 70}, Duration: 3 * time.Millisecond},
		{Name: "reference", Stats: collatz.Stats{Mul3: 41, Div2: 70}},
		{Name: "scalar/lut=20", Err: errors.New("buffer growth failed")},
	}, &buf)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Run ") || !strings.Contains(lines[1], "Duration") {
		t.Errorf("unexpected header %q", lines[1])
	}
	if !strings.Contains(lines[2], "3ms") || !strings.Contains(lines[2], "ok  mul3 = 41, div2 = 70, total = 111") {
		t.Errorf("unexpected row %q", lines[2])
	}
	if !strings.Contains(lines[3], "< 1µs") {
		t.Errorf("zero duration row %q", lines[3])
	}
	if !strings.Contains(lines[4], "failure (buffer growth failed)") {
		t.Errorf("failure row %q", lines[4])
	}
	// Columns line up: every status starts at the same offset.
	column := func(l, sub string) int {
		i := strings.Index(l, sub)
		if i < 0 {
			return -1
		}
		return utf8.RuneCountInString(l[:i])
	}
	col := column(lines[1], "Status")
	for _, l := range lines[2:] {
		if column(l, "ok") != col && column(l, "failure") != col {
			t.Errorf("misaligned row %q (status column %d)", l, col)
		}
	}
}

func TestPresentComparisonTable_Quiet(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{Quiet: true}.PresentComparisonTable([]orchestration.RunResult{{Name: "x"}}, &buf)
	if buf.Len() != 0 {
		t.Errorf("quiet presenter wrote %q", buf.String())
	}
}

func TestPresentResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(orchestration.RunResult{Stats: collatz.Stats{Mul3: 5, Div2: 11}}, &buf)
	if got := buf.String(); got != "mul3 = 5, div2 = 11, total = 16\n" {
		t.Errorf("got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()
	if got := padRight("ab", 3); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("ab", -1); got != "ab" {
		t.Errorf("padRight negative = %q", got)
	}
}
