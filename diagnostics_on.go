//go:build jobkit_telemetry

package jobkit

import (
	"sync/atomic"

	"github.com/joseph-gamedev/jobkit/internal/goroutineid"
)

// workerDiagState is the per-worker diagnostic bookkeeping kept under
// the jobkit_telemetry build: whether the worker is currently running a
// task, that task's id and label, and a best-effort goroutine
// identifier standing in for the spec's "OS thread id" (see
// internal/goroutineid and SPEC_FULL.md §10 for why).
//
// All fields are plain atomics, written only by the worker goroutine
// that owns this workerState and read by GetDiagnostics from any
// goroutine; a snapshot may therefore observe a task start without its
// matching stop, exactly as spec §4.5 allows.
type workerDiagState struct {
	osThreadID    atomic.Uint64
	running       atomic.Bool
	runningTaskID atomic.Uint64
	runningLabel  atomic.Pointer[string]
}

func (s *Scheduler) markRunning(w *workerState, t *task) {
	w.osThreadID.Store(goroutineid.Current())
	w.runningTaskID.Store(t.id)
	label := t.label
	w.runningLabel.Store(&label)
	w.running.Store(true)
}

func (s *Scheduler) markIdle(w *workerState) {
	w.running.Store(false)
}

// Diagnostics is a telemetry-build-only, read-only projection of
// scheduler internals on top of Stats: per-worker currently-executing
// task id/label, and a copy of the queue's task ids/labels.
type Diagnostics struct {
	Stats   Stats
	Workers []WorkerDiagnostic
	Queued  []QueuedTaskDiagnostic
}

// WorkerDiagnostic snapshots one worker goroutine's current activity.
type WorkerDiagnostic struct {
	Index int
	// OSThreadID is not a kernel thread id: it holds the goroutine id
	// (from internal/goroutineid) last recorded by this worker when it
	// started a task, or 0 if it has not run one yet.
	OSThreadID    uint64
	Running       bool
	RunningTaskID uint64
	RunningLabel  string
}

// QueuedTaskDiagnostic identifies one task still waiting in the queue.
type QueuedTaskDiagnostic struct {
	TaskID uint64
	Label  string
}

// GetDiagnostics returns Stats plus a per-worker and per-queued-task
// snapshot. Worker snapshots are independent atomic loads, not taken
// under the queue lock, and so are not mutually consistent with each
// other or with Queued; only Queued itself is taken under the lock, the
// same way GetStats takes Queued under the lock.
func (s *Scheduler) GetDiagnostics() Diagnostics {
	stats := s.GetStats()

	workers := make([]WorkerDiagnostic, len(s.workers))
	for i, w := range s.workers {
		var label string
		if lp := w.runningLabel.Load(); lp != nil {
			label = *lp
		}
		workers[i] = WorkerDiagnostic{
			Index:         w.index,
			OSThreadID:    w.osThreadID.Load(),
			Running:       w.running.Load(),
			RunningTaskID: w.runningTaskID.Load(),
			RunningLabel:  label,
		}
	}

	s.mu.Lock()
	queued := make([]QueuedTaskDiagnostic, len(s.queue))
	for i, t := range s.queue {
		queued[i] = QueuedTaskDiagnostic{TaskID: t.id, Label: t.label}
	}
	s.mu.Unlock()

	return Diagnostics{Stats: stats, Workers: workers, Queued: queued}
}
