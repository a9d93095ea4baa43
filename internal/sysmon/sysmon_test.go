package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.RSS != 0 {
		t.Errorf("system-wide sample reported RSS %d", s.RSS)
	}
}

func TestSampler_ProcessRSS(t *testing.T) {
	s := NewSampler().Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
	if s.RSS == 0 {
		t.Skip("process memory not readable on this platform")
	}
	if s.RSS < 1<<20 {
		t.Errorf("RSS %d is implausibly small for a Go test binary", s.RSS)
	}
}
