package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/syncpq/internal/testutils"
	"github.com/jzx17/syncpq/pkg/queue"
)

func TestPriorityTask(t *testing.T) {
	clock := testutils.NewClockWrapper(testutils.NewMockClock(t))
	inner := NewBasicTaskWithID("inner", func(ctx context.Context) error { return nil })

	pt := NewPriorityTaskWithClock(inner, 4, clock)

	assert.Equal(t, "inner", pt.ID())
	assert.Equal(t, 4, pt.Priority())
	assert.Equal(t, 0, pt.Attempts())
	assert.Equal(t, clock.Now(), pt.SubmitTime)
	assert.NoError(t, pt.Execute(context.Background()))
}

func TestNewPriorityTask_RealClock(t *testing.T) {
	before := time.Now()
	pt := NewPriorityTask(NewBasicTaskWithID("real", nil), 2)

	assert.Equal(t, "real", pt.ID())
	assert.Equal(t, 2, pt.Priority())
	assert.False(t, pt.SubmitTime.Before(before))

	nilClock := NewPriorityTaskWithClock(NewBasicTask(nil), 1, nil)
	assert.False(t, nilClock.SubmitTime.IsZero())
}

func TestPriorityTaskLess(t *testing.T) {
	mClock := testutils.NewMockClock(t)
	clock := testutils.NewClockWrapper(mClock)

	early := NewPriorityTaskWithClock(NewBasicTaskWithID("early", nil), 1, clock)
	mClock.Advance(time.Millisecond)
	late := NewPriorityTaskWithClock(NewBasicTaskWithID("late", nil), 1, clock)
	high := NewPriorityTaskWithClock(NewBasicTaskWithID("high", nil), 9, clock)

	t.Run("HigherPriorityIsGreater", func(t *testing.T) {
		assert.True(t, priorityTaskLess(early, high))
		assert.False(t, priorityTaskLess(high, early))
	})

	t.Run("EarlierSubmitIsGreater", func(t *testing.T) {
		assert.True(t, priorityTaskLess(late, early))
		assert.False(t, priorityTaskLess(early, late))
	})

	t.Run("Irreflexive", func(t *testing.T) {
		assert.False(t, priorityTaskLess(early, early))
	})
}

func TestPriorityTask_BacklogOrder(t *testing.T) {
	mClock := testutils.NewMockClock(t)
	clock := testutils.NewClockWrapper(mClock)
	backlog := queue.NewFunc(priorityTaskLess)

	submit := func(id string, priority int) {
		mClock.Advance(time.Millisecond)
		require.NoError(t, backlog.Push(NewPriorityTaskWithClock(NewBasicTaskWithID(id, nil), priority, clock)))
	}

	submit("low-1", 1)
	submit("high-1", 10)
	submit("mid-1", 5)
	submit("high-2", 10)
	submit("low-2", 1)
	backlog.Close()

	var order []string
	for {
		pt, st := backlog.WaitPull()
		if st == queue.Closed {
			break
		}
		order = append(order, pt.ID())
	}

	assert.Equal(t, []string{"high-1", "high-2", "mid-1", "low-1", "low-2"}, order)
}
