package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/errs"
	"github.com/okodanev/deskhub/internal/domain/task"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	"github.com/okodanev/deskhub/internal/dragdrop"
)

// PendingAssignment is an assignment dialog waiting for the user. It holds
// the dropped payload and the pre-filled form; nothing touches the task
// store until the dialog is submitted. Cancelling discards the payload so a
// stale reference can never leak into a later submission.
type PendingAssignment struct {
	Token   uuid.UUID        `json:"token"`
	Date    calendar.Day     `json:"date"`
	Prefill AssignmentForm   `json:"prefill"`
	Payload dragdrop.Payload `json:"-"`
	Created time.Time        `json:"created_at"`
}

// AssignmentForm carries the dialog's form values. The submitted values win
// over the original payload: the user may edit the title, times, location,
// and even the assignee label before confirming.
type AssignmentForm struct {
	Title          string `json:"title"`
	StartTime      string `json:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
	Location       string `json:"location,omitempty"`
	AssigneeName   string `json:"assignee_name,omitempty"`
	AssigneeAvatar string `json:"assignee_avatar,omitempty"`
}

// pendingRegistry tracks open assignment dialogs by token.
type pendingRegistry struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*PendingAssignment
}

func newPendingRegistry() *pendingRegistry {
	return &pendingRegistry{pending: make(map[uuid.UUID]*PendingAssignment)}
}

func (r *pendingRegistry) add(p *PendingAssignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[p.Token] = p
}

// take removes and returns the pending assignment; a dialog is consumed
// exactly once, by either submit or cancel.
func (r *pendingRegistry) take(token uuid.UUID) (*PendingAssignment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[token]
	if ok {
		delete(r.pending, token)
	}
	return p, ok
}

func (r *pendingRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// openAssignment builds the pending dialog for an employee or crew drop.
// The pre-fill comes from the payload; the eventual task comes from the
// submitted form.
func (s *Service) openAssignment(payload dragdrop.Payload, day calendar.Day) *PendingAssignment {
	prefill := AssignmentForm{}
	switch p := payload.(type) {
	case dragdrop.EmployeeRef:
		prefill.AssigneeName = p.Name
		prefill.AssigneeAvatar = p.Avatar
	case dragdrop.CrewRef:
		prefill.AssigneeName = p.Name
	}

	pending := &PendingAssignment{
		Token:   uuid.NewUUID(),
		Date:    calendar.Normalize(day),
		Prefill: prefill,
		Payload: payload,
		Created: time.Now(),
	}
	s.pending.add(pending)
	s.observePending()
	return pending
}

// SubmitAssignment completes a pending assignment dialog and creates the
// task. Individual assignments take the assignee name and avatar from the
// form; crew assignments snapshot the crew's current member names at this
// moment, so later membership edits never rewrite history.
func (s *Service) SubmitAssignment(ctx context.Context, token uuid.UUID, form AssignmentForm) (*task.Task, error) {
	pending, ok := s.pending.take(token)
	if !ok {
		return nil, fmt.Errorf("%w: no pending assignment %s", errs.ErrNotFound, token)
	}

	t, err := task.New(form.Title, pending.Date)
	if err != nil {
		// Leave the dialog open: invalid form input is recoverable.
		s.pending.add(pending)
		return nil, err
	}
	if timesErr := t.SetTimes(form.StartTime, form.EndTime); timesErr != nil {
		s.pending.add(pending)
		return nil, timesErr
	}
	t.Location = form.Location

	switch p := pending.Payload.(type) {
	case dragdrop.EmployeeRef:
		t.Assigned = task.AssignIndividual(form.AssigneeName, form.AssigneeAvatar)
	case dragdrop.CrewRef:
		members, namesErr := s.directory.MemberNames(ctx, p.CrewID)
		if namesErr != nil {
			s.pending.add(pending)
			return nil, fmt.Errorf("resolve crew members: %w", namesErr)
		}
		t.Assigned = task.AssignCrew(p.CrewID, p.Name, members)
	default:
		return nil, fmt.Errorf("%w: payload %s cannot be assigned", errs.ErrInvalidState, pending.Payload.Kind())
	}

	s.tasks.Add(t)
	s.observeCreated("assignment")
	s.observePending()
	s.notifier.Publish(ctx, Event{
		Type:   EventTaskCreated,
		Task:   t,
		Notice: "task assigned to " + t.Assigned.DisplayName(),
	})
	return t.Clone(), nil
}

// CancelAssignment closes a pending dialog without creating anything. The
// payload is dropped with it; cancelling an unknown token is a no-op.
func (s *Service) CancelAssignment(token uuid.UUID) {
	s.pending.take(token)
	s.observePending()
}

// PendingAssignments returns the number of dialogs currently open.
func (s *Service) PendingAssignments() int {
	return s.pending.len()
}
