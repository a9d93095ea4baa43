package tui

import (
	"strings"
	"testing"

	"github.com/agbru/collatz/internal/collatz"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel(1)

	msg := MemStatsMsg{
		Alloc:        1024 * 1024 * 50,
		HeapSys:      1024 * 1024 * 80,
		NumGC:        10,
		PauseTotalNs: 2_500_000,
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc {
		t.Errorf("expected alloc %d, got %d", msg.Alloc, m.alloc)
	}
	if m.heapSys != msg.HeapSys {
		t.Errorf("expected heapSys %d, got %d", msg.HeapSys, m.heapSys)
	}
	if m.numGC != msg.NumGC {
		t.Errorf("expected numGC %d, got %d", msg.NumGC, m.numGC)
	}
	if m.numGoroutine != msg.NumGoroutine {
		t.Errorf("expected numGoroutine %d, got %d", msg.NumGoroutine, m.numGoroutine)
	}
}

func TestMetricsModel_UpdateProgress_FollowsPrimary(t *testing.T) {
	m := NewMetricsModel(2)

	m.UpdateProgress(ProgressMsg{Index: 0, Rate: 1200, Progress: collatz.Progress{Mul3: 41, Div2: 70, Iterations: 9}})
	m.UpdateProgress(ProgressMsg{Index: 1, Rate: 5, Progress: collatz.Progress{Mul3: 1, Div2: 1, Iterations: 1}})

	if m.mul3 != 41 || m.div2 != 70 {
		t.Errorf("expected counters of run 0, got mul3=%d div2=%d", m.mul3, m.div2)
	}
	if m.rate != 1200 {
		t.Errorf("expected rate 1200, got %f", m.rate)
	}
	if m.iterations != 9 {
		t.Errorf("expected 9 iterations, got %d", m.iterations)
	}
}

func TestMetricsModel_UpdateProgress_CountsFinished(t *testing.T) {
	m := NewMetricsModel(2)
	m.UpdateProgress(ProgressMsg{Index: 1, Progress: collatz.Progress{Done: true}})
	m.UpdateProgress(ProgressMsg{Index: 0, Progress: collatz.Progress{}})

	if m.finished != 1 {
		t.Errorf("expected 1 finished run, got %d", m.finished)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel(2)
	m.SetSize(60, 9)
	m.UpdateMemStats(MemStatsMsg{Alloc: 2048, HeapSys: 4096, NumGC: 3, PauseTotalNs: 1_500_000, NumGoroutine: 5})
	m.UpdateProgress(ProgressMsg{Index: 0, Rate: 2500, Progress: collatz.Progress{Mul3: 41, Div2: 70, Done: true}})

	view := m.View()
	for _, want := range []string{"Heap:", "2.0 KB / 4.0 KB", "GC:", "3 (1.5ms)", "Rate:", "2.5k it/s", "Mul3:", "41", "Div2:", "70", "Runs:", "1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "RSS:") {
		t.Error("RSS row must be hidden until a sample arrives")
	}

	m.UpdateRSS(3 << 20)
	if !strings.Contains(m.View(), "3.0 MB") {
		t.Error("expected RSS to be shown once sampled")
	}
}

func TestFormatMetricCol_Pads(t *testing.T) {
	cell := formatMetricCol("Rate:", "1", 30)
	if got := len([]rune(cell)); got < 30 {
		t.Errorf("expected cell padded to 30 columns, got %d", got)
	}
}
