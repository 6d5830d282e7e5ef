// Package store holds the process-wide mutable scheduling state: the shared
// task collection and the selected-date cursor mirrored by every widget.
package store

import (
	"sync"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/task"
)

// TaskStore is the shared ordered collection of tasks. Insertion order is
// preserved because widgets rely on it for display stability.
//
// Mutations targeting an absent ID are silent no-ops, never errors: UI
// events arrive from several independent widgets and a stale reference must
// not break a render path.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []*task.Task

	// version increments on every effective mutation; the per-day count
	// cache is rebuilt at most once per version.
	version       uint64
	counts        map[calendar.Day]int
	countsVersion uint64
}

// NewTaskStore creates an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		counts: make(map[calendar.Day]int),
	}
}

// Add appends a task. The task's ID must be unique; adding an ID that is
// already present is a no-op and returns false. The task's date is
// normalized on the way in.
func (s *TaskStore) Add(t *task.Task) bool {
	if t == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(t.ID) >= 0 {
		return false
	}

	stored := t.Clone()
	stored.Date = calendar.Normalize(stored.Date)
	s.tasks = append(s.tasks, stored)
	s.version++
	return true
}

// ToggleCompletion flips the completed flag. Returns false (no-op) if the
// ID is absent.
func (s *TaskStore) ToggleCompletion(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	s.version++
	return true
}

// Remove deletes the task. Returns false (no-op) if the ID is absent.
func (s *TaskStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.version++
	return true
}

// ReassignDate moves the task to a new day. Moving a task onto the day it
// is already on is a no-op, not an error. Returns true only when the task
// actually moved.
func (s *TaskStore) ReassignDate(id string, day calendar.Day) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	normalized := calendar.Normalize(day)
	if calendar.SameDay(s.tasks[i].Date, normalized) {
		return false
	}

	s.tasks[i].Date = normalized
	s.version++
	return true
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(id string) (*task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i].Clone(), true
}

// TasksOnDate returns copies of all tasks on the given day, in insertion
// order. The comparison normalizes both sides, so the argument may be a
// raw value from a widget.
func (s *TaskStore) TasksOnDate(day any) []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*task.Task
	for _, t := range s.tasks {
		if calendar.SameDay(t.Date, day) {
			result = append(result, t.Clone())
		}
	}
	return result
}

// All returns copies of every task in insertion order.
func (s *TaskStore) All() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, t.Clone())
	}
	return result
}

// CountByDate returns the number of tasks per day. The map is computed at
// most once per store version, so calendar cells get O(1) lookups instead
// of rescanning the collection on every render.
func (s *TaskStore) CountByDate() map[calendar.Day]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshCounts()

	result := make(map[calendar.Day]int, len(s.counts))
	for d, n := range s.counts {
		result[d] = n
	}
	return result
}

// CountOn returns the number of tasks on a single day.
func (s *TaskStore) CountOn(day calendar.Day) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshCounts()
	return s.counts[calendar.Normalize(day)]
}

// ClearAssignee strips the assignment from every task assigned to the given
// employee name or crew ID. Called when the directory deletes a record so
// tasks never point at a dangling reference.
func (s *TaskStore) ClearAssignee(match func(task.Assignment) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := 0
	for _, t := range s.tasks {
		if match(t.Assigned) {
			t.Assigned = task.Unassigned()
			cleared++
		}
	}
	if cleared > 0 {
		s.version++
	}
	return cleared
}

// Clear removes every task.
func (s *TaskStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return
	}
	s.tasks = nil
	s.version++
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Version returns the current mutation counter.
func (s *TaskStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// indexOf must be called with the lock held.
func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// refreshCounts rebuilds the per-day cache if the store changed since the
// last rebuild. Must be called with the write lock held.
func (s *TaskStore) refreshCounts() {
	if s.countsVersion == s.version && s.counts != nil {
		return
	}

	counts := make(map[calendar.Day]int, len(s.tasks))
	for _, t := range s.tasks {
		counts[calendar.Normalize(t.Date)]++
	}
	s.counts = counts
	s.countsVersion = s.version
}
