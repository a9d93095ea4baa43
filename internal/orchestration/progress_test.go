package orchestration

import (
	"testing"
	"time"

	"github.com/agbru/collatz/internal/collatz"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(3)
	if agg == nil {
		t.Fatal("expected non-nil aggregator for numRuns=3")
	}
	if agg.NumRuns() != 3 {
		t.Errorf("expected NumRuns()=3, got %d", agg.NumRuns())
	}
	if !agg.IsMultiRun() {
		t.Error("expected IsMultiRun()=true for 3 runs")
	}
	if NewProgressAggregator(1).IsMultiRun() {
		t.Error("expected IsMultiRun()=false for 1 run")
	}
	for _, n := range []int{0, -1} {
		if NewProgressAggregator(n) != nil {
			t.Errorf("expected nil aggregator for numRuns=%d", n)
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)
	t0 := agg.start

	ap := agg.update(ProgressUpdate{Index: 0, Progress: collatz.Progress{Bytes: 64, Iterations: 1000}}, t0.Add(time.Second))
	if ap.Index != 0 || ap.Progress.Bytes != 64 {
		t.Errorf("unexpected aggregate %+v", ap)
	}
	if ap.Rate != 1000 {
		t.Errorf("first rate = %v, want 1000", ap.Rate)
	}
	if ap.Elapsed != time.Second {
		t.Errorf("elapsed = %v, want 1s", ap.Elapsed)
	}

	// 3000 iterations in 1s: smoothed 0.7*1000 + 0.3*3000.
	ap = agg.update(ProgressUpdate{Index: 0, Progress: collatz.Progress{Bytes: 128, Iterations: 4000}}, t0.Add(2*time.Second))
	if ap.Rate != 1600 {
		t.Errorf("smoothed rate = %v, want 1600", ap.Rate)
	}

	ap = agg.update(ProgressUpdate{Index: 1, Progress: collatz.Progress{Bytes: 96}}, t0.Add(2*time.Second))
	if ap.MaxBytes != 128 {
		t.Errorf("MaxBytes = %d, want 128", ap.MaxBytes)
	}
}

func TestProgressAggregator_OutOfRange(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(1)
	ap := agg.Update(ProgressUpdate{Index: 5, Progress: collatz.Progress{Bytes: 1 << 20}})
	if ap.MaxBytes != 0 || agg.MaxBytes() != 0 {
		t.Error("out-of-range update must be ignored")
	}
}

func TestProgressAggregator_Done(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)
	agg.Update(ProgressUpdate{Index: 0, Progress: collatz.Progress{Done: true}})
	if agg.Done() {
		t.Error("Done() with one run pending")
	}
	agg.Update(ProgressUpdate{Index: 1, Progress: collatz.Progress{Done: true}})
	if !agg.Done() {
		t.Error("Done() = false after every final notification")
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 3)
	ch <- ProgressUpdate{}
	ch <- ProgressUpdate{}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("channel still holds %d updates", len(ch))
	}
}
