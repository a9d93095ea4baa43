// Package metrics collects runtime memory statistics, suspends the garbage
// collector around long runs, and exports the counters of a finished run in
// the Prometheus text format.
package metrics
