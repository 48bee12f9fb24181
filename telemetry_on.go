//go:build jobkit_telemetry

package jobkit

import "sync/atomic"

// telemetryState holds the monotonic task id counter. Ids start at 1 and
// never repeat within a Scheduler's lifetime, per spec §3.
type telemetryState struct {
	nextTaskID atomic.Uint64
}

// assignTelemetry stamps t with the next task id and stores label for
// later inspection via GetDiagnostics.
func (s *Scheduler) assignTelemetry(t *task, label string) {
	t.id = s.nextTaskID.Add(1)
	t.label = label
}

// releaseTelemetry is a no-op: the telemetry state is plain value data
// with nothing to release; it is kept only for symmetry with the
// default build and to mirror spec §4.4 step 6 ("release any telemetry
// state").
func (s *Scheduler) releaseTelemetry() {}
