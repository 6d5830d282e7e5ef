package store

import (
	"sync"

	"github.com/okodanev/deskhub/internal/domain/calendar"
)

// Cursor is the process-wide "currently selected date" cell. Widgets mirror
// it into local state; the synchronizer keeps both sides equal.
type Cursor struct {
	mu  sync.RWMutex
	day calendar.Day
}

// NewCursor creates a cursor positioned on the given day.
func NewCursor(day calendar.Day) *Cursor {
	return &Cursor{day: calendar.Normalize(day)}
}

// Get returns the current day.
func (c *Cursor) Get() calendar.Day {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.day
}

// Set moves the cursor. The write happens only when the new day differs by
// normalized-day value from the current one; writing an equal day reports
// false so observers are not re-triggered. This value comparison is what
// keeps the two sync directions from feeding each other forever.
func (c *Cursor) Set(day calendar.Day) bool {
	normalized := calendar.Normalize(day)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.day == normalized {
		return false
	}
	c.day = normalized
	return true
}
