package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/task"
)

func TestNextIDMonotonic(t *testing.T) {
	s := New()
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		id := s.NextID()
		require.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Append(task.Task{ID: 1, Title: "only in a"})
	a.SetError(errors.New("boom"))

	assert.Equal(t, 0, b.Len())
	assert.NoError(t, b.Err())
}

func TestTasksReturnsSnapshot(t *testing.T) {
	s := New()
	s.Append(task.Task{ID: 1, Title: "first"})

	snap := s.Tasks()
	snap[0].Title = "mutated copy"

	assert.Equal(t, "first", s.Tasks()[0].Title)
}

func TestCompleteExchangeDropsStaleResponse(t *testing.T) {
	s := New()
	first := s.BeginExchange()
	second := s.BeginExchange()

	applied := s.CompleteExchange(first, "old", []task.Result{{PriorityScore: 1}}, nil)
	assert.False(t, applied, "stale exchange must not publish")

	results, _ := s.Results()
	assert.Empty(t, results)

	applied = s.CompleteExchange(second, "new", []task.Result{{PriorityScore: 2}}, nil)
	require.True(t, applied)

	results, heading := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, float64(2), results[0].PriorityScore)
	assert.Equal(t, "new", heading)
}

func TestCompleteExchangeFailureClearsResults(t *testing.T) {
	s := New()
	seq := s.BeginExchange()
	require.True(t, s.CompleteExchange(seq, "ok", []task.Result{{PriorityScore: 50}}, nil))

	seq = s.BeginExchange()
	require.True(t, s.CompleteExchange(seq, "", nil, errors.New("bad strategy")))

	results, heading := s.Results()
	assert.Empty(t, results)
	assert.Empty(t, heading)
	assert.EqualError(t, s.Err(), "bad strategy")
}

func TestClearError(t *testing.T) {
	s := New()
	s.SetError(errors.New("boom"))
	s.ClearError()
	assert.NoError(t, s.Err())
}
