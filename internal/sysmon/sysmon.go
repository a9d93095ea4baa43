// Package sysmon samples system-wide CPU and memory usage, and the resident
// memory of the running process, for the dashboard.
package sysmon

import (
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	// RSS is the resident set size of this process in bytes, 0 if unknown.
	RSS uint64
}

// Sampler reads Stats. The zero value samples system-wide figures only.
type Sampler struct {
	proc *process.Process
}

// NewSampler creates a sampler that also tracks the current process. If the
// process cannot be opened, RSS stays 0.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return &Sampler{}
	}
	return &Sampler{proc: p}
}

// Sample collects a single snapshot. CPU uses interval=0 (delta since the
// last call). Fields that cannot be read are left at zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		st.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
	}
	if s != nil && s.proc != nil {
		if info, err := s.proc.MemoryInfo(); err == nil && info != nil {
			st.RSS = info.RSS
		}
	}
	return st
}

// Sample collects a system-wide snapshot without process figures.
func Sample() Stats {
	var s *Sampler
	return s.Sample()
}
