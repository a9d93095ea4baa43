// Package orchestration runs one or more engine configurations over the same
// starting value, concurrently, and compares their counters. It decouples the
// runs from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
