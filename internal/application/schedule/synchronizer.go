package schedule

import (
	"sync"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	"github.com/okodanev/deskhub/internal/store"
)

// Synchronizer keeps every mounted widget's local selected date equal to
// the shared cursor. Both write directions funnel through the single
// reconcile step, and every comparison is by normalized-day value, so two
// cells holding distinct representations of the same day never re-trigger
// each other: one write settles the whole system.
type Synchronizer struct {
	mu     sync.Mutex
	cursor *store.Cursor
	locals map[uuid.UUID]calendar.Day

	// onSettle fires once per reconcile step that actually moved the
	// shared cursor. It never fires for an equal-day write.
	onSettle func(calendar.Day)
}

// SynchronizerOption configures the Synchronizer.
type SynchronizerOption func(*Synchronizer)

// WithSettleHook registers a callback invoked with the settled day whenever
// the shared cursor actually changes.
func WithSettleHook(hook func(calendar.Day)) SynchronizerOption {
	return func(s *Synchronizer) {
		s.onSettle = hook
	}
}

// NewSynchronizer creates a synchronizer around the shared cursor cell.
func NewSynchronizer(cursor *store.Cursor, opts ...SynchronizerOption) *Synchronizer {
	s := &Synchronizer{
		cursor: cursor,
		locals: make(map[uuid.UUID]calendar.Day),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach registers a widget and returns the day its local cell must start
// on: newly mounted widgets settle immediately instead of waiting a tick.
func (s *Synchronizer) Attach(widgetID uuid.UUID) calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.cursor.Get()
	s.locals[widgetID] = day
	return day
}

// Detach removes a widget's local cell.
func (s *Synchronizer) Detach(widgetID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locals, widgetID)
}

// SetLocal is the local-to-shared write site: a widget changed its own
// selected date. Returns the settled day.
func (s *Synchronizer) SetLocal(widgetID uuid.UUID, day calendar.Day) calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcile(day)
}

// SetShared is the shared-to-local write site: something other than a
// widget interaction (drop resolution, programmatic navigation) moved the
// cursor. Returns the settled day.
func (s *Synchronizer) SetShared(day calendar.Day) calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcile(day)
}

// Shared returns the shared cursor value.
func (s *Synchronizer) Shared() calendar.Day {
	return s.cursor.Get()
}

// Local returns a widget's local cell value.
func (s *Synchronizer) Local(widgetID uuid.UUID) (calendar.Day, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.locals[widgetID]
	return day, ok
}

// Settled reports whether every local cell equals the shared cursor.
func (s *Synchronizer) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	shared := s.cursor.Get()
	for _, local := range s.locals {
		if local != shared {
			return false
		}
	}
	return true
}

// WidgetCount returns the number of attached widgets.
func (s *Synchronizer) WidgetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locals)
}

// reconcile is the single reconciliation step shared by both write sites.
// It normalizes the incoming day, writes the shared cursor only on
// inequality, and copies the settled value into every local cell that
// differs. Must be called with the lock held.
func (s *Synchronizer) reconcile(day calendar.Day) calendar.Day {
	settled := calendar.Normalize(day)

	moved := s.cursor.Set(settled)
	for id, local := range s.locals {
		if local != settled {
			s.locals[id] = settled
		}
	}

	if moved && s.onSettle != nil {
		s.onSettle(settled)
	}
	return settled
}
