//go:build !jobkit_telemetry

package jobkit

// workerDiagState is empty under the default build: no per-worker
// running-task bookkeeping is kept, and GetDiagnostics does not exist
// (it is telemetry-build-only, per spec §6).
type workerDiagState struct{}

// markRunning is a no-op under the default build.
func (s *Scheduler) markRunning(w *workerState, t *task) {}

// markIdle is a no-op under the default build.
func (s *Scheduler) markIdle(w *workerState) {}
