// Package task defines the schedulable task model of the calendar core.
package task

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/errs"
	"github.com/okodanev/deskhub/internal/domain/uuid"
)

const maxTitleLength = 500

// clockTimePattern validates the free-form "HH:MM" start/end fields.
// Start and end are deliberately not validated against each other.
var clockTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Task is a schedulable unit of work pinned to a calendar day.
type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
	Date      calendar.Day `json:"date"`
	StartTime string       `json:"start_time,omitempty"`
	EndTime   string       `json:"end_time,omitempty"`
	Location  string       `json:"location,omitempty"`
	Assigned  Assignment   `json:"assigned"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewID generates a unique task ID from the current millisecond clock plus
// a random suffix, so rapid successive creations never collide.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewSuffix()
}

// New creates a task with a fresh ID on the given day.
func New(title string, day calendar.Day) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", errs.ErrInvalidInput, maxTitleLength)
	}
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", errs.ErrInvalidInput)
	}

	return &Task{
		ID:        NewID(),
		Title:     title,
		Date:      calendar.Normalize(day),
		Assigned:  Unassigned(),
		CreatedAt: time.Now(),
	}, nil
}

// SetTimes sets the optional start/end clock times. Each value must look
// like "HH:MM" on its own; no ordering between them is enforced.
func (t *Task) SetTimes(start, end string) error {
	if start != "" && !clockTimePattern.MatchString(start) {
		return fmt.Errorf("%w: start time %q is not HH:MM", errs.ErrInvalidInput, start)
	}
	if end != "" && !clockTimePattern.MatchString(end) {
		return fmt.Errorf("%w: end time %q is not HH:MM", errs.ErrInvalidInput, end)
	}
	t.StartTime = start
	t.EndTime = end
	return nil
}

// DisplayTitle returns the title shown in widgets. There is no separate
// display field, so it always equals Title.
func (t *Task) DisplayTitle() string {
	return t.Title
}

// On reports whether the task falls on the given day.
func (t *Task) On(day any) bool {
	return calendar.SameDay(t.Date, day)
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (t *Task) Clone() *Task {
	c := *t
	c.Assigned = t.Assigned.clone()
	return &c
}
