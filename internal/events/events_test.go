package events

import (
	"fmt"
	"testing"

	"github.com/mabescript/mabescript/pkg/ast"
	"github.com/stretchr/testify/require"
)

func noopAction() ast.Node {
	return ast.NewBlock(nil, ast.Position{})
}

func TestScheduleCatchUpFiresAndLeavesNextFireTime(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 3, 2, 10)

	var fires []float64
	s.UpdateValue("E", 7, func(action ast.Node) error {
		return nil
	})
	_ = fires

	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, 9.0, pending[0].First)
}

func TestScheduleCatchUpFiresExactCount(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 3, 2, 10)

	var fireCount int
	s.UpdateValue("E", 7, func(action ast.Node) error {
		fireCount++
		return nil
	})

	require.Equal(t, 3, fireCount) // fires at 3, 5, 7
}

func TestSingleShotPastDeadlineIsDropped(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 5, 0, -1)

	// Advance the clock past 5 (firing and dropping the event above), then
	// try to schedule a second single-shot event that's already missed.
	s.UpdateValue("E", 10, func(ast.Node) error { return nil })
	s.Schedule("E", noopAction(), 2, 0, -1)

	require.Empty(t, s.Pending())
}

func TestSingleShotFiresExactlyOnceAndIsNotRequeued(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 5, 0, -1)

	var fireCount int
	s.UpdateValue("E", 10, func(ast.Node) error {
		fireCount++
		return nil
	})

	require.Equal(t, 1, fireCount)
	require.Empty(t, s.Pending())
}

func TestScheduleBeyondMaxIsNeverAdded(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 20, 1, 10)
	require.Empty(t, s.Pending())
}

func TestScheduleFastForwardsRepeatingEventScheduledLate(t *testing.T) {
	s := New(nil)
	// Advance this event type's clock to 8 first.
	s.Schedule("E", noopAction(), 0, 0, -1)
	s.UpdateValue("E", 8, func(ast.Node) error { return nil })

	// Now schedule a repeating event whose first fire (1) is already behind
	// current (8); it should fast-forward to the next fire time >= current.
	s.Schedule("E", noopAction(), 1, 3, -1)

	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, 10.0, pending[0].First) // 1 + ceil((8-1)/3)*3 = 1 + 3*3 = 10
}

func TestUpdateValueLogsEvalErrorsButContinues(t *testing.T) {
	s := New(nil)
	s.Schedule("E", noopAction(), 1, 0, -1)

	var calls int
	require.NotPanics(t, func() {
		s.UpdateValue("E", 3, func(ast.Node) error {
			calls++
			return fmt.Errorf("boom")
		})
	})
	require.Equal(t, 1, calls)
	require.Empty(t, s.Pending())
}

func TestTriggerAllFiresEveryQueueOnceAndClears(t *testing.T) {
	s := New(nil)
	s.Schedule("A", noopAction(), 100, 0, -1)
	s.Schedule("B", noopAction(), 200, 5, 300)

	var fired []string
	s.TriggerAll(func(action ast.Node) error {
		fired = append(fired, "fired")
		return nil
	})

	require.Len(t, fired, 2)
	require.Empty(t, s.Pending())
}

func TestTriggerNameOnlyClearsThatQueue(t *testing.T) {
	s := New(nil)
	s.Schedule("A", noopAction(), 100, 0, -1)
	s.Schedule("B", noopAction(), 200, 0, -1)

	var fired int
	s.TriggerName("A", func(ast.Node) error {
		fired++
		return nil
	})

	require.Equal(t, 1, fired)
	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, "B", pending[0].EventName)
}

func TestPendingHeaderFormatsByArity(t *testing.T) {
	single := Pending{EventName: "E", First: 3, Repeat: 0, Max: -1}
	require.Equal(t, "@E(3) ", single.Header())

	repeating := Pending{EventName: "E", First: 3, Repeat: 2, Max: -1}
	require.Equal(t, "@E(3, 2) ", repeating.Header())

	bounded := Pending{EventName: "E", First: 3, Repeat: 2, Max: 10}
	require.Equal(t, "@E(3, 2, 10) ", bounded.Header())
}
