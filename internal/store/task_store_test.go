package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/task"
	"github.com/okodanev/deskhub/internal/store"
)

func mustTask(t *testing.T, title string, day calendar.Day) *task.Task {
	t.Helper()
	tk, err := task.New(title, day)
	require.NoError(t, err)
	return tk
}

func TestAdd(t *testing.T) {
	day := calendar.NewDay(2025, time.June, 1)

	t.Run("appends in insertion order", func(t *testing.T) {
		s := store.NewTaskStore()

		first := mustTask(t, "first", day)
		second := mustTask(t, "second", day)
		require.True(t, s.Add(first))
		require.True(t, s.Add(second))

		tasks := s.TasksOnDate(day)
		require.Len(t, tasks, 2)
		assert.Equal(t, "first", tasks[0].Title)
		assert.Equal(t, "second", tasks[1].Title)
	})

	t.Run("duplicate id is a no-op", func(t *testing.T) {
		s := store.NewTaskStore()
		tk := mustTask(t, "once", day)

		require.True(t, s.Add(tk))
		assert.False(t, s.Add(tk))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("stored copy is detached from the caller", func(t *testing.T) {
		s := store.NewTaskStore()
		tk := mustTask(t, "detached", day)
		s.Add(tk)

		tk.Title = "mutated after add"

		stored, ok := s.Get(tk.ID)
		require.True(t, ok)
		assert.Equal(t, "detached", stored.Title)
	})
}

func TestToggleCompletion(t *testing.T) {
	day := calendar.NewDay(2025, time.June, 1)

	t.Run("flips the flag", func(t *testing.T) {
		s := store.NewTaskStore()
		tk := mustTask(t, "toggle me", day)
		s.Add(tk)

		require.True(t, s.ToggleCompletion(tk.ID))
		stored, _ := s.Get(tk.ID)
		assert.True(t, stored.Completed)

		require.True(t, s.ToggleCompletion(tk.ID))
		stored, _ = s.Get(tk.ID)
		assert.False(t, stored.Completed)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		s := store.NewTaskStore()
		s.Add(mustTask(t, "keep", day))
		before := s.Version()

		assert.False(t, s.ToggleCompletion("no-such-id"))
		assert.Equal(t, before, s.Version())
		assert.Equal(t, 1, s.Len())
	})
}

func TestRemove(t *testing.T) {
	day := calendar.NewDay(2025, time.June, 1)

	t.Run("removes and preserves order of the rest", func(t *testing.T) {
		s := store.NewTaskStore()
		a := mustTask(t, "a", day)
		b := mustTask(t, "b", day)
		c := mustTask(t, "c", day)
		s.Add(a)
		s.Add(b)
		s.Add(c)

		require.True(t, s.Remove(b.ID))

		tasks := s.TasksOnDate(day)
		require.Len(t, tasks, 2)
		assert.Equal(t, "a", tasks[0].Title)
		assert.Equal(t, "c", tasks[1].Title)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		s := store.NewTaskStore()
		before := s.Version()

		assert.False(t, s.Remove("no-such-id"))
		assert.Equal(t, before, s.Version())
	})
}

func TestReassignDate(t *testing.T) {
	june1 := calendar.NewDay(2025, time.June, 1)
	june2 := calendar.NewDay(2025, time.June, 2)

	t.Run("moves the task", func(t *testing.T) {
		s := store.NewTaskStore()
		tk := mustTask(t, "move me", june1)
		s.Add(tk)

		require.True(t, s.ReassignDate(tk.ID, june2))

		assert.Empty(t, s.TasksOnDate(june1))
		require.Len(t, s.TasksOnDate(june2), 1)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		s := store.NewTaskStore()
		tk := mustTask(t, "stay", june1)
		s.Add(tk)
		before := s.Version()

		assert.False(t, s.ReassignDate(tk.ID, june1))
		assert.Equal(t, before, s.Version())
		assert.Len(t, s.TasksOnDate(june1), 1)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		s := store.NewTaskStore()
		assert.False(t, s.ReassignDate("no-such-id", june2))
	})
}

func TestTasksOnDate(t *testing.T) {
	june1 := calendar.NewDay(2025, time.June, 1)
	june2 := calendar.NewDay(2025, time.June, 2)

	s := store.NewTaskStore()
	s.Add(mustTask(t, "on the 1st", june1))
	s.Add(mustTask(t, "on the 2nd", june2))
	s.Add(mustTask(t, "also on the 1st", june1))

	t.Run("filters by normalized day", func(t *testing.T) {
		tasks := s.TasksOnDate(june1)
		require.Len(t, tasks, 2)
		assert.Equal(t, "on the 1st", tasks[0].Title)
		assert.Equal(t, "also on the 1st", tasks[1].Title)
	})

	t.Run("accepts raw string dates", func(t *testing.T) {
		assert.Len(t, s.TasksOnDate("2025-06-01"), 2)
		assert.Len(t, s.TasksOnDate("2025-06-01T10:30:00"), 2)
	})

	t.Run("accepts timestamps with time of day", func(t *testing.T) {
		at := time.Date(2025, time.June, 2, 23, 15, 0, 0, time.Local)
		assert.Len(t, s.TasksOnDate(at), 1)
	})

	t.Run("unparseable date matches nothing", func(t *testing.T) {
		assert.Empty(t, s.TasksOnDate("garbage"))
	})
}

func TestCountByDate(t *testing.T) {
	june1 := calendar.NewDay(2025, time.June, 1)
	june2 := calendar.NewDay(2025, time.June, 2)

	s := store.NewTaskStore()
	s.Add(mustTask(t, "a", june1))
	s.Add(mustTask(t, "b", june1))
	s.Add(mustTask(t, "c", june2))

	counts := s.CountByDate()
	assert.Equal(t, 2, counts[june1])
	assert.Equal(t, 1, counts[june2])
	assert.Equal(t, 2, s.CountOn(june1))

	t.Run("cache tracks mutations", func(t *testing.T) {
		tasks := s.TasksOnDate(june1)
		s.Remove(tasks[0].ID)

		assert.Equal(t, 1, s.CountOn(june1))
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		counts := s.CountByDate()
		counts[june2] = 99

		assert.Equal(t, 1, s.CountOn(june2))
	})
}

func TestClearAssignee(t *testing.T) {
	day := calendar.NewDay(2025, time.June, 1)

	s := store.NewTaskStore()
	assigned := mustTask(t, "assigned", day)
	assigned.Assigned = task.AssignIndividual("Dana Herrera", "")
	other := mustTask(t, "other", day)
	other.Assigned = task.AssignIndividual("Someone Else", "")
	s.Add(assigned)
	s.Add(other)

	cleared := s.ClearAssignee(func(a task.Assignment) bool {
		return a.DisplayName() == "Dana Herrera"
	})

	assert.Equal(t, 1, cleared)
	stored, _ := s.Get(assigned.ID)
	assert.False(t, stored.Assigned.IsAssigned())
	untouched, _ := s.Get(other.ID)
	assert.True(t, untouched.Assigned.IsAssigned())
}

func TestClear(t *testing.T) {
	day := calendar.NewDay(2025, time.June, 1)

	s := store.NewTaskStore()
	s.Add(mustTask(t, "a", day))
	s.Add(mustTask(t, "b", day))

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Empty(t, s.TasksOnDate(day))
	assert.Empty(t, s.CountByDate())
}
