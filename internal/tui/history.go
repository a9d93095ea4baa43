package tui

import (
	"slices"
	"time"

	"github.com/agbru/collatz/internal/collatz"
)

// Series keeps the latest readings of a gauge, oldest first.
type Series struct {
	vals []float64
	size int
}

// NewSeries creates a series holding at most size readings.
func NewSeries(size int) *Series {
	return &Series{size: max(size, 1)}
}

// Add appends a reading, dropping the oldest one when full.
func (s *Series) Add(v float64) {
	if len(s.vals) == s.size {
		copy(s.vals, s.vals[1:])
		s.vals[len(s.vals)-1] = v
		return
	}
	s.vals = append(s.vals, v)
}

// Values returns a copy of the readings.
func (s *Series) Values() []float64 { return slices.Clone(s.vals) }

func (s *Series) Len() int  { return len(s.vals) }
func (s *Series) Size() int { return s.size }

// Latest returns the newest reading, or 0.
func (s *Series) Latest() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	return s.vals[len(s.vals)-1]
}

// Peak returns the largest reading, or 0.
func (s *Series) Peak() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	return slices.Max(s.vals)
}

// SetSize changes the capacity, keeping the newest readings that fit.
func (s *Series) SetSize(size int) {
	s.size = max(size, 1)
	if len(s.vals) > s.size {
		s.vals = slices.Clone(s.vals[len(s.vals)-s.size:])
	}
}

// Clear drops every reading.
func (s *Series) Clear() { s.vals = s.vals[:0] }

// RunHistory turns the progress notifications of one run into a buffer size
// series and an iteration rate series.
type RunHistory struct {
	bytes *Series
	rate  *Series

	lastIterations uint64
	lastAt         time.Duration
	seen           bool
}

// NewRunHistory creates a history keeping size points of each series.
func NewRunHistory(size int) *RunHistory {
	return &RunHistory{bytes: NewSeries(size), rate: NewSeries(size)}
}

// Record adds a notification received elapsed after the run started. A
// rate point, in iterations per second since the previous notification, is
// added only when both the clock and the iteration count moved forward.
func (h *RunHistory) Record(p collatz.Progress, elapsed time.Duration) {
	h.bytes.Add(float64(p.Bytes))
	if h.seen && elapsed > h.lastAt && p.Iterations > h.lastIterations {
		dt := (elapsed - h.lastAt).Seconds()
		h.rate.Add(float64(p.Iterations-h.lastIterations) / dt)
	}
	h.lastIterations, h.lastAt, h.seen = p.Iterations, elapsed, true
}

// Bytes returns the recorded buffer sizes.
func (h *RunHistory) Bytes() []float64 { return h.bytes.Values() }

// Rates returns the recorded iteration rates.
func (h *RunHistory) Rates() []float64 { return h.rate.Values() }

// Rate returns the latest iteration rate, or 0 before two notifications.
func (h *RunHistory) Rate() float64 { return h.rate.Latest() }

// PeakRate returns the largest recorded iteration rate.
func (h *RunHistory) PeakRate() float64 { return h.rate.Peak() }

func (h *RunHistory) Len() int { return h.bytes.Len() }

// SetRateSize resizes the rate series, which is drawn as a sparkline one
// point per column.
func (h *RunHistory) SetRateSize(size int) { h.rate.SetSize(size) }

// Reset forgets every notification.
func (h *RunHistory) Reset() {
	h.bytes.Clear()
	h.rate.Clear()
	h.lastIterations, h.lastAt, h.seen = 0, 0, false
}
