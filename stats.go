package jobkit

// Stats is a read-only snapshot of a Scheduler's counters. Only Queued is
// taken under the internal lock; the rest are independent atomic reads,
// so the fields are not guaranteed to be mutually consistent at the
// instant GetStats returns (spec: "not required to be mutually
// consistent").
type Stats struct {
	WorkerCount int
	Queued      int
	InFlight    int64
	Submitted   uint64
	Completed   uint64
}

// GetStats returns a snapshot of the scheduler's current counters.
func (s *Scheduler) GetStats() Stats {
	s.mu.Lock()
	queued := len(s.queue)
	workerCount := len(s.workers)
	s.mu.Unlock()

	return Stats{
		WorkerCount: workerCount,
		Queued:      queued,
		InFlight:    s.inFlight.Load(),
		Submitted:   s.submitted.Load(),
		Completed:   s.completed.Load(),
	}
}
