// ============================================================================
// jobkit - In-Process Job Scheduler
// ============================================================================
//
// Package: jobkit
// Function: Fixed-size pool of worker goroutines executing caller-supplied
//           work items drawn from a shared FIFO queue.
//
// Design Pattern:
//   Classic worker pool, built directly on a mutex and two condition
//   variables rather than channels:
//   1. A fixed number of worker goroutines run for the lifetime of the
//      Scheduler.
//   2. Producers append tasks to a FIFO buffer under a single mutex and
//      signal the work condition.
//   3. Workers block on the work condition until either the queue is
//      non-empty or a stop has been requested.
//   4. Completion of every task broadcasts the idle condition, which
//      WaitIdle and Stop's drain/cancel wait block on.
//
// Architecture:
//   ┌───────────┐  Submit()/SubmitLabeled()  ┌────────────┐
//   │ Producers │ ─────────────────────────> │   queue    │
//   └───────────┘                            └─────┬──────┘
//                                                    │ workCond
//                                              ┌─────▼──────┐
//                                              │  Worker 0  │
//                                              │  Worker 1  │ -- idleCond --> WaitIdle / Stop
//                                              │  Worker N  │
//                                              └────────────┘
//
// Lifecycle:
//   1. New(cfg)       - construct Scheduler, spawn N workers blocked on workCond
//   2. Submit / SubmitLabeled - enqueue work while accepting
//   3. WaitIdle()     - block until queue empty and no task in-flight
//   4. Stop(mode)     - one-way shutdown, Drain or CancelPending
//   5. Close()        - Stop(Drain); Go idiom for "the destructor"
//
// Concurrency Control:
//   - One sync.Mutex guards the queue and the predicates both condition
//     variables depend on.
//   - workCond wakes workers on new tasks or a stop request.
//   - idleCond wakes WaitIdle/Stop waiters on every task completion.
//   - submitted/completed/inFlight are sync/atomic counters so GetStats
//     and GetDiagnostics can read them lock-free; queued is read under
//     the lock, since it is the queue's own length.
//
// Error Handling:
//   - Submit/SubmitLabeled never return an error value: a false return
//     means either an empty callable or the scheduler no longer
//     accepting submissions. There is no queue-full case; the queue is
//     unbounded.
//   - A panic escaping a submitted task is recovered at the worker
//     boundary and discarded; the task still counts as completed. A
//     worker never dies from a misbehaving task.
//
// Telemetry:
//   Task ids, labels, and GetDiagnostics are compiled in only under the
//   jobkit_telemetry build tag (see telemetry_on.go / telemetry_off.go
//   and diagnostics_on.go / diagnostics_off.go). Without the tag, ids are
//   never assigned and labels passed to SubmitLabeled are unobserved.
//
// ============================================================================

package jobkit
