package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/collatz"
)

// RunRecord gathers everything exported about one finished run.
type RunRecord struct {
	Stats     collatz.Stats
	Kernel    string
	Window    int
	Extend    bool
	InputBits int

	TableDuration time.Duration
	RunDuration   time.Duration

	Memory MemorySnapshot
}

// NewRunRegistry returns a registry holding the gauges describing rec. The
// registry is private to the run, so repeated runs in one process never
// collide on metric registration.
func NewRunRegistry(rec RunRecord) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collatz",
			Name:      name,
			Help:      help,
		})
		g.Set(v)
		reg.MustRegister(g)
	}

	gauge("mul3_steps", "Odd steps (3x+1) taken by the trajectory.", float64(rec.Stats.Mul3))
	gauge("div2_steps", "Halving steps taken by the trajectory.", float64(rec.Stats.Div2))
	gauge("total_steps", "Sum of odd and halving steps.", float64(rec.Stats.Total()))
	gauge("iterations", "Engine loop iterations, one kernel call each.", float64(rec.Stats.Iterations))
	gauge("peak_bytes", "Largest working buffer during the run, in bytes.", float64(rec.Stats.PeakWords*bignum.WordBytes))
	gauge("input_bits", "Bit length of the starting value.", float64(rec.InputBits))
	gauge("table_width_bits", "Width of the transition table used.", float64(rec.Window))
	gauge("table_build_seconds", "Time spent building the transition table.", rec.TableDuration.Seconds())
	gauge("run_seconds", "Time spent in the iteration loop.", rec.RunDuration.Seconds())
	gauge("heap_alloc_bytes", "Heap bytes in use when the run finished.", float64(rec.Memory.HeapAlloc))
	gauge("gc_cycles", "Completed GC cycles when the run finished.", float64(rec.Memory.NumGC))

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "collatz",
		Name:      "run_info",
		Help:      "Engine configuration of the run.",
	}, []string{"kernel", "extend"})
	info.WithLabelValues(rec.Kernel, strconv.FormatBool(rec.Extend)).Set(1)
	reg.MustRegister(info)

	return reg
}

// WriteRunMetrics writes rec to path in the Prometheus text exposition
// format, suitable for the node_exporter textfile collector.
func WriteRunMetrics(path string, rec RunRecord) error {
	return prometheus.WriteToTextfile(path, NewRunRegistry(rec))
}
