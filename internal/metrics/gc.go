package metrics

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/agbru/collatz/internal/logging"
)

// GCMode controls the garbage collector while a trajectory runs.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCModes lists the accepted --gc values.
var GCModes = []string{string(GCModeAuto), string(GCModeAggressive), string(GCModeDisabled)}

// GCAutoThresholdBytes is the smallest input, in bytes, for which the auto
// mode suspends the collector. Below it a run is short enough that GC pauses
// do not matter.
const GCAutoThresholdBytes = 1 << 20

// ParseGCMode validates a --gc value.
func ParseGCMode(s string) (GCMode, error) {
	for _, m := range GCModes {
		if s == m {
			return GCMode(s), nil
		}
	}
	return "", fmt.Errorf("unknown gc mode %q", s)
}

// GCController suspends the garbage collector for the duration of a run.
//
// The working buffer is reallocated each time it grows, so a long run leaves
// behind a steady stream of dead buffers. With the collector off they pile up
// until the soft memory limit set by Begin forces a collection, which keeps
// pauses out of the hot loop without letting the heap grow unbounded.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	originalMemLimit  int64
	active            bool
	logger            logging.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds the collector activity between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a controller for a run on an input of inputBytes
// bytes. Unknown modes behave like GCModeDisabled.
func NewGCController(mode GCMode, inputBytes int) *GCController {
	gc := &GCController{mode: mode, logger: logging.NopLogger{}}
	switch mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = inputBytes >= GCAutoThresholdBytes
	}
	return gc
}

// SetLogger configures the logger for GC control events. A nil logger is
// ignored.
func (gc *GCController) SetLogger(l logging.Logger) {
	if l != nil {
		gc.logger = l
	}
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin disables GC if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.startStats)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	gc.originalMemLimit = debug.SetMemoryLimit(-1)
	if gc.startStats.Sys > 0 {
		if limit := int64(gc.startStats.Sys) * 3; limit > 0 && limit < gc.originalMemLimit {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug("gc disabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc),
	)
}

// End restores the collector settings saved by Begin and runs a collection.
// The forced collection is included in Stats.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(gc.originalMemLimit)
	runtime.GC()
	runtime.ReadMemStats(&gc.endStats)
	st := gc.Stats()
	gc.logger.Debug("gc re-enabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", st.HeapAlloc),
		logging.Uint64("total_alloc_bytes", st.TotalAlloc),
		logging.Int("gc_cycles", int(st.NumGC)),
	)
}

// Stats returns the collector activity between Begin and End. It is zero
// for an inactive controller.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
