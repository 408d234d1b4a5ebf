package editor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerDebounces(t *testing.T) {
	t.Parallel()

	s := NewScheduler(30 * time.Millisecond)
	t.Cleanup(s.Stop)

	var calls atomic.Int32
	got := make(chan int, 1)

	// A burst of edits must collapse into a single save carrying the last
	// scheduled state.
	for i := 1; i <= 5; i++ {
		i := i
		s.Schedule(GroupPanel, func() {
			calls.Add(1)
			got <- i
		})
	}

	select {
	case v := <-got:
		require.Equal(t, 5, v)
	case <-time.After(time.Second):
		t.Fatal("scheduled save never fired")
	}

	time.Sleep(100 * time.Millisecond)
	require.EqualValues(t, 1, calls.Load())
}

func TestSchedulerGroupsAreIndependent(t *testing.T) {
	t.Parallel()

	s := NewScheduler(20 * time.Millisecond)
	t.Cleanup(s.Stop)

	fired := make(chan string, 2)
	s.Schedule(GroupJoinLeave, func() { fired <- GroupJoinLeave })
	s.Schedule(GroupRank, func() { fired <- GroupRank })

	seen := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case g := <-fired:
			seen[g] = true
		case <-time.After(time.Second):
			t.Fatal("scheduled save never fired")
		}
	}
	require.True(t, seen[GroupJoinLeave])
	require.True(t, seen[GroupRank])
}

func TestSchedulerCancel(t *testing.T) {
	t.Parallel()

	s := NewScheduler(20 * time.Millisecond)
	t.Cleanup(s.Stop)

	var calls atomic.Int32
	s.Schedule(GroupPanel, func() { calls.Add(1) })
	s.Cancel(GroupPanel)

	time.Sleep(100 * time.Millisecond)
	require.EqualValues(t, 0, calls.Load())
}

func TestSchedulerCancelDuringFire(t *testing.T) {
	t.Parallel()

	const delay = 5 * time.Millisecond
	s := NewScheduler(delay)
	t.Cleanup(s.Stop)

	// Reschedule right as the previous timer is firing, then cancel. The
	// fired callback races the reschedule for the group entry; whatever
	// the interleaving, the cancelled save must never run and the fired
	// one must not run twice.
	var cancelled atomic.Int32
	for i := 0; i < 100; i++ {
		s.Schedule(GroupPanel, func() {})
		time.Sleep(delay)
		s.Schedule(GroupPanel, func() { cancelled.Add(1) })
		s.Cancel(GroupPanel)
	}

	time.Sleep(100 * time.Millisecond)
	require.EqualValues(t, 0, cancelled.Load(), "a cancelled save fired")
}

func TestSchedulerZeroDelayUsesDefault(t *testing.T) {
	t.Parallel()

	s := NewScheduler(0)
	t.Cleanup(s.Stop)
	require.Equal(t, DefaultAutosaveDelay, s.delay)
}
