package schedule

import (
	"context"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/task"
)

// EventType identifies a schedule change pushed to widgets.
type EventType string

// Schedule event types.
const (
	EventTaskCreated  EventType = "task_created"
	EventTaskUpdated  EventType = "task_updated"
	EventTaskRemoved  EventType = "task_removed"
	EventTaskMoved    EventType = "task_moved"
	EventDateSelected EventType = "date_selected"
	EventStoreCleared EventType = "store_cleared"

	// EventAssignmentsCleared fires when a directory deletion strips
	// assignment references from existing tasks.
	EventAssignmentsCleared EventType = "assignments_cleared"
)

// Event is a schedule change fanned out to every mounted widget. Notice
// carries the transient confirmation text shown to the user ("task moved",
// "task assigned to X"); failures never surface here, they degrade to
// silent no-ops.
type Event struct {
	Type   EventType     `json:"type"`
	Task   *task.Task    `json:"task,omitempty"`
	TaskID string        `json:"task_id,omitempty"`
	Day    *calendar.Day `json:"day,omitempty"`
	Notice string        `json:"notice,omitempty"`
}

// Notifier delivers schedule events to mounted widgets.
// Declared on the consumer side; the websocket hub implements it.
type Notifier interface {
	// Publish fans the event out to all widgets.
	Publish(ctx context.Context, evt Event)
}

// NopNotifier discards all events. Used in tests and in tools that run the
// service without a widget transport.
type NopNotifier struct{}

// Publish implements Notifier.
func (NopNotifier) Publish(context.Context, Event) {}
