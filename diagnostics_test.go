//go:build jobkit_telemetry

package jobkit

// ============================================================================
// Diagnostics Test File (jobkit_telemetry build only)
// Purpose: Verify task id assignment, label propagation, and the
//          GetDiagnostics snapshot shape.
// ============================================================================

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaskIDsAreMonotonicAndUnique verifies task ids start at 1 and never
// repeat, even under concurrent submission: ids come from an atomic
// counter starting at 0 and advanced by one per task, so n submissions
// must leave it at exactly n, meaning ids 1..n were each handed out once.
func TestTaskIDsAreMonotonicAndUnique(t *testing.T) {
	s := New(Config{Workers: 4})
	defer s.Close()

	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ok := s.SubmitLabeled("task", func() {})
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	s.WaitIdle()

	stats := s.GetStats()
	assert.Equal(t, uint64(n), stats.Submitted)
	assert.Equal(t, uint64(n), s.nextTaskID.Load())
}

// TestSubmitLabeledStoresLabel verifies a running task's label is visible
// through GetDiagnostics while it executes.
func TestSubmitLabeledStoresLabel(t *testing.T) {
	s := New(Config{Workers: 1})
	defer s.Close()

	started := make(chan struct{})
	gate := make(chan struct{})

	ok := s.SubmitLabeled("gated-task", func() {
		close(started)
		<-gate
	})
	require.True(t, ok)

	<-started

	diag := s.GetDiagnostics()
	require.Len(t, diag.Workers, 1)
	assert.True(t, diag.Workers[0].Running)
	assert.Equal(t, "gated-task", diag.Workers[0].RunningLabel)
	assert.NotZero(t, diag.Workers[0].RunningTaskID)
	assert.NotZero(t, diag.Workers[0].OSThreadID)

	close(gate)
}

// TestGetDiagnosticsReflectsQueuedTasks verifies queued-but-not-yet-running
// tasks show up in the Queued slice with their assigned ids and labels.
func TestGetDiagnosticsReflectsQueuedTasks(t *testing.T) {
	s := New(Config{Workers: 1})
	defer s.Close()

	started := make(chan struct{})
	gate := make(chan struct{})

	ok := s.SubmitLabeled("running", func() {
		close(started)
		<-gate
	})
	require.True(t, ok)
	<-started

	ok = s.SubmitLabeled("queued-one", func() {})
	require.True(t, ok)

	diag := s.GetDiagnostics()
	require.Len(t, diag.Queued, 1)
	assert.Equal(t, "queued-one", diag.Queued[0].Label)
	assert.NotZero(t, diag.Queued[0].TaskID)

	close(gate)
}
