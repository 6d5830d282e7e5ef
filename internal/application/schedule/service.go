// Package schedule implements the scheduling use cases: task mutations,
// drag-and-drop resolution, assignment dialogs, and the view synchronizer
// that keeps calendar widgets and the shared date cursor consistent.
package schedule

import (
	"context"
	"log/slog"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/directory"
	"github.com/okodanev/deskhub/internal/domain/task"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	"github.com/okodanev/deskhub/internal/dragdrop"
	"github.com/okodanev/deskhub/internal/infrastructure/metrics"
	"github.com/okodanev/deskhub/internal/store"
)

// DropOutcome classifies how a drop resolved.
type DropOutcome string

// Drop outcomes.
const (
	// OutcomeMoved means an existing task was reassigned to the target day.
	OutcomeMoved DropOutcome = "moved"

	// OutcomeCreated means a task was synthesized and added immediately.
	OutcomeCreated DropOutcome = "created"

	// OutcomePending means an assignment dialog was opened; the store is
	// untouched until it is submitted.
	OutcomePending DropOutcome = "pending"

	// OutcomeNoop means nothing changed: stale task reference, or a task
	// dropped back onto its own current day.
	OutcomeNoop DropOutcome = "noop"

	// OutcomeRejected means the payload was malformed or not accepted by
	// day cells. Logged and swallowed, never an error.
	OutcomeRejected DropOutcome = "rejected"
)

// DropResult describes how a drop on a day cell resolved.
type DropResult struct {
	Outcome DropOutcome        `json:"outcome"`
	Task    *task.Task         `json:"task,omitempty"`
	Pending *PendingAssignment `json:"pending,omitempty"`
}

// Service wires the task store, the cursor synchronizer, the directory, and
// the widget notifier into the scheduling operations widgets call. Every
// operation finishes its store mutation and cursor propagation before
// returning, so a re-render triggered afterwards always observes a
// consistent snapshot.
type Service struct {
	tasks     *store.TaskStore
	sync      *Synchronizer
	directory directory.Lookup
	pending   *pendingRegistry
	notifier  Notifier
	metrics   *metrics.ScheduleMetrics
	logger    *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithNotifier sets the widget notifier.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMetrics sets the Prometheus metrics sink.
func WithMetrics(m *metrics.ScheduleMetrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the scheduling service.
func NewService(
	tasks *store.TaskStore,
	sync *Synchronizer,
	dir directory.Lookup,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		tasks:     tasks,
		sync:      sync,
		directory: dir,
		pending:   newPendingRegistry(),
		notifier:  NopNotifier{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synchronizer exposes the view synchronizer for widget attachment.
func (s *Service) Synchronizer() *Synchronizer {
	return s.sync
}

// AttachWidget registers a calendar widget with the synchronizer and returns
// the settled date the widget should render first.
func (s *Service) AttachWidget(widgetID uuid.UUID) calendar.Day {
	day := s.sync.Attach(widgetID)
	s.observeWidgets()
	return day
}

// DetachWidget removes a widget from the synchronizer.
func (s *Service) DetachWidget(widgetID uuid.UUID) {
	s.sync.Detach(widgetID)
	s.observeWidgets()
}

// QuickAdd creates a minimal task from just a title, dated on the currently
// selected day.
func (s *Service) QuickAdd(ctx context.Context, title string) (*task.Task, error) {
	t, err := task.New(title, s.sync.Shared())
	if err != nil {
		return nil, err
	}

	s.tasks.Add(t)
	s.observeCreated("quick_add")
	s.notifier.Publish(ctx, Event{Type: EventTaskCreated, Task: t})
	return t.Clone(), nil
}

// CreateTaskCommand is the full task form.
type CreateTaskCommand struct {
	Title          string       `json:"title"`
	Date           calendar.Day `json:"date"`
	StartTime      string       `json:"start_time,omitempty"`
	EndTime        string       `json:"end_time,omitempty"`
	Location       string       `json:"location,omitempty"`
	AssigneeName   string       `json:"assignee_name,omitempty"`
	AssigneeAvatar string       `json:"assignee_avatar,omitempty"`
}

// CreateTask creates a task from the full form.
func (s *Service) CreateTask(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	t, err := task.New(cmd.Title, cmd.Date)
	if err != nil {
		return nil, err
	}
	if timesErr := t.SetTimes(cmd.StartTime, cmd.EndTime); timesErr != nil {
		return nil, timesErr
	}
	t.Location = cmd.Location
	if cmd.AssigneeName != "" {
		t.Assigned = task.AssignIndividual(cmd.AssigneeName, cmd.AssigneeAvatar)
	}

	s.tasks.Add(t)
	s.observeCreated("form")
	s.notifier.Publish(ctx, Event{Type: EventTaskCreated, Task: t})
	return t.Clone(), nil
}

// ToggleCompletion flips a task's completed flag. A stale ID is a silent
// no-op per the store contract.
func (s *Service) ToggleCompletion(ctx context.Context, id string) {
	if !s.tasks.ToggleCompletion(id) {
		return
	}
	if t, ok := s.tasks.Get(id); ok {
		s.notifier.Publish(ctx, Event{Type: EventTaskUpdated, Task: t})
	}
}

// DeleteTask removes a task. A stale ID is a silent no-op.
func (s *Service) DeleteTask(ctx context.Context, id string) {
	if s.tasks.Remove(id) {
		s.notifier.Publish(ctx, Event{Type: EventTaskRemoved, TaskID: id})
	}
}

// MoveTask reassigns a task to another day without a drag gesture.
func (s *Service) MoveTask(ctx context.Context, id string, day calendar.Day) {
	if !s.tasks.ReassignDate(id, day) {
		return
	}
	if t, ok := s.tasks.Get(id); ok {
		s.observeMoved()
		s.notifier.Publish(ctx, Event{Type: EventTaskMoved, Task: t, Notice: "task moved"})
	}
}

// ClearTasks empties the store.
func (s *Service) ClearTasks(ctx context.Context) {
	s.tasks.Clear()
	s.notifier.Publish(ctx, Event{Type: EventStoreCleared})
}

// Task returns a single task by ID.
func (s *Service) Task(id string) (*task.Task, bool) {
	return s.tasks.Get(id)
}

// TasksOnDate returns all tasks on the given day in insertion order. The
// argument may be a raw string or timestamp; the store normalizes it.
func (s *Service) TasksOnDate(day any) []*task.Task {
	return s.tasks.TasksOnDate(day)
}

// AllTasks returns every task in insertion order.
func (s *Service) AllTasks() []*task.Task {
	return s.tasks.All()
}

// CountByDate returns the per-day task counts for calendar cells.
func (s *Service) CountByDate() map[calendar.Day]int {
	return s.tasks.CountByDate()
}

// SelectDate records a widget's local date selection and settles the
// cursor across all widgets.
func (s *Service) SelectDate(ctx context.Context, widgetID uuid.UUID, day calendar.Day) calendar.Day {
	settled := s.sync.SetLocal(widgetID, day)
	s.observeReconcile()
	s.notifier.Publish(ctx, Event{Type: EventDateSelected, Day: &settled})
	return settled
}

// SelectedDate returns the shared cursor value.
func (s *Service) SelectedDate() calendar.Day {
	return s.sync.Shared()
}

// DropOnDay resolves a drag-and-drop gesture landing on a day cell of the
// given widget. Malformed payloads are logged and swallowed: a bad drop
// must never break a render path, so the only error-shaped result is the
// rejected outcome.
func (s *Service) DropOnDay(
	ctx context.Context,
	widgetID uuid.UUID,
	carrier *dragdrop.Carrier,
	target calendar.Day,
) DropResult {
	payload, err := dragdrop.Resolve(carrier)
	if err != nil {
		s.logger.WarnContext(ctx, "drop rejected",
			slog.String("error", err.Error()),
		)
		s.observeDrop("unknown", OutcomeRejected)
		return DropResult{Outcome: OutcomeRejected}
	}

	if !dragdrop.DayCellAccepts(payload.Kind()) {
		s.logger.WarnContext(ctx, "drop rejected",
			slog.String("type", string(payload.Kind())),
		)
		s.observeDrop(string(payload.Kind()), OutcomeRejected)
		return DropResult{Outcome: OutcomeRejected}
	}

	target = calendar.Normalize(target)
	result := s.dispatchDrop(ctx, payload, target)

	// The widget that hosted the drop selects the target day itself,
	// local and shared cells in the same step, so sibling widgets see the
	// new date before this handler returns.
	if result.Outcome == OutcomeMoved || result.Outcome == OutcomeCreated {
		s.sync.SetLocal(widgetID, target)
		s.observeReconcile()
		day := target
		s.notifier.Publish(ctx, Event{Type: EventDateSelected, Day: &day})
	}

	s.observeDrop(string(payload.Kind()), result.Outcome)
	return result
}

// dispatchDrop routes a decoded payload by type. The switch is exhaustive
// over the sealed payload union; a new payload type fails compilation here
// until it gets a resolution rule.
func (s *Service) dispatchDrop(ctx context.Context, payload dragdrop.Payload, target calendar.Day) DropResult {
	switch p := payload.(type) {
	case dragdrop.TaskRef:
		return s.resolveTaskDrop(ctx, p, target)

	case dragdrop.EmployeeRef:
		return DropResult{Outcome: OutcomePending, Pending: s.openAssignment(p, target)}

	case dragdrop.CrewRef:
		return DropResult{Outcome: OutcomePending, Pending: s.openAssignment(p, target)}

	case dragdrop.InvoiceRef:
		return s.synthesizeTask(ctx, "Process invoice: "+p.Title, target)

	case dragdrop.BookingRef:
		return s.synthesizeTask(ctx, "Prepare booking: "+p.Title, target)

	default:
		// Unreachable: Decode only produces the types above.
		s.logger.ErrorContext(ctx, "unhandled payload type",
			slog.String("type", string(payload.Kind())),
		)
		return DropResult{Outcome: OutcomeRejected}
	}
}

// resolveTaskDrop moves an existing task to the target day. A stale ID and
// a drop back onto the task's own current day are both quiet no-ops.
func (s *Service) resolveTaskDrop(ctx context.Context, ref dragdrop.TaskRef, target calendar.Day) DropResult {
	current, ok := s.tasks.Get(ref.TaskID)
	if !ok {
		s.logger.DebugContext(ctx, "dropped task no longer exists",
			slog.String("task_id", ref.TaskID),
		)
		return DropResult{Outcome: OutcomeNoop}
	}
	if calendar.SameDay(current.Date, target) {
		return DropResult{Outcome: OutcomeNoop, Task: current}
	}

	s.tasks.ReassignDate(ref.TaskID, target)
	moved, _ := s.tasks.Get(ref.TaskID)
	s.observeMoved()
	s.notifier.Publish(ctx, Event{Type: EventTaskMoved, Task: moved, Notice: "task moved"})
	return DropResult{Outcome: OutcomeMoved, Task: moved}
}

// synthesizeTask creates a task immediately from a non-assignable payload
// (invoice, booking); no dialog is involved.
func (s *Service) synthesizeTask(ctx context.Context, title string, target calendar.Day) DropResult {
	t, err := task.New(title, target)
	if err != nil {
		// Only possible with an empty label; treat like any other bad payload.
		s.logger.WarnContext(ctx, "cannot synthesize task",
			slog.String("error", err.Error()),
		)
		return DropResult{Outcome: OutcomeRejected}
	}

	s.tasks.Add(t)
	s.observeCreated("drop")
	s.notifier.Publish(ctx, Event{Type: EventTaskCreated, Task: t, Notice: t.Title})
	return DropResult{Outcome: OutcomeCreated, Task: t}
}

// DetachEmployee strips assignments referencing a deleted employee. Called
// by the directory when a record is removed so no task keeps a dangling
// reference.
func (s *Service) DetachEmployee(ctx context.Context, name string) {
	cleared := s.tasks.ClearAssignee(func(a task.Assignment) bool {
		ind, ok := a.Individual()
		return ok && ind.Name == name
	})
	if cleared > 0 {
		s.notifier.Publish(ctx, Event{Type: EventAssignmentsCleared})
	}
}

// DetachCrew strips assignments referencing a deleted crew. Member
// snapshots on those tasks are left alone; only the live crew link goes.
func (s *Service) DetachCrew(ctx context.Context, crewID string) {
	cleared := s.tasks.ClearAssignee(func(a task.Assignment) bool {
		crew, ok := a.Crew()
		return ok && crew.ID == crewID
	})
	if cleared > 0 {
		s.notifier.Publish(ctx, Event{Type: EventAssignmentsCleared})
	}
}

func (s *Service) observeCreated(origin string) {
	if s.metrics != nil {
		s.metrics.TasksCreated.WithLabelValues(origin).Inc()
	}
}

func (s *Service) observeMoved() {
	if s.metrics != nil {
		s.metrics.TasksMoved.Inc()
	}
}

func (s *Service) observeDrop(payloadType string, outcome DropOutcome) {
	if s.metrics != nil {
		s.metrics.DropsResolved.WithLabelValues(payloadType, string(outcome)).Inc()
	}
}

func (s *Service) observeReconcile() {
	if s.metrics != nil {
		s.metrics.CursorReconciles.Inc()
	}
}

func (s *Service) observeWidgets() {
	if s.metrics != nil {
		s.metrics.WidgetsAttached.Set(float64(s.sync.WidgetCount()))
	}
}

func (s *Service) observePending() {
	if s.metrics != nil {
		s.metrics.PendingDialogs.Set(float64(s.pending.len()))
	}
}
