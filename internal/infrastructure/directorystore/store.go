// Package directorystore is the in-memory employee and crew directory. It
// backs the directory lookup interfaces and runs deletion hooks so the
// scheduler can strip assignments that reference removed records.
package directorystore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okodanev/deskhub/internal/domain/directory"
	"github.com/okodanev/deskhub/internal/domain/errs"
)

// Seed is the YAML shape of the directory seed file.
type Seed struct {
	Employees []directory.Employee `yaml:"employees"`
	Crews     []directory.Crew     `yaml:"crews"`
}

// DeletionHooks are invoked after a record is removed. The scheduler hooks
// in here to clear assignments pointing at the deleted record.
type DeletionHooks struct {
	OnEmployeeDeleted func(ctx context.Context, name string)
	OnCrewDeleted     func(ctx context.Context, crewID string)
}

// Store is an in-memory directory keeping employees and crews in insertion
// order.
type Store struct {
	mu            sync.RWMutex
	employees     map[string]directory.Employee
	employeeOrder []string
	crews         map[string]directory.Crew
	crewOrder     []string
	hooks         DeletionHooks
	logger        *slog.Logger
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty directory store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		employees: make(map[string]directory.Employee),
		crews:     make(map[string]directory.Crew),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDeletionHooks installs the hooks invoked after a record is removed.
func (s *Store) SetDeletionHooks(hooks DeletionHooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = hooks
}

// LoadFile seeds the store from a YAML file.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read directory seed: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse directory seed: %w", err)
	}

	for _, e := range seed.Employees {
		if upsertErr := s.UpsertEmployee(e); upsertErr != nil {
			return upsertErr
		}
	}
	for _, c := range seed.Crews {
		if upsertErr := s.UpsertCrew(c); upsertErr != nil {
			return upsertErr
		}
	}

	s.logger.Info("directory seeded",
		slog.String("path", path),
		slog.Int("employees", len(seed.Employees)),
		slog.Int("crews", len(seed.Crews)),
	)
	return nil
}

// UpsertEmployee adds or replaces an employee record.
func (s *Store) UpsertEmployee(e directory.Employee) error {
	if e.ID == "" || e.Name == "" {
		return fmt.Errorf("%w: employee needs id and name", errs.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[e.ID]; !exists {
		s.employeeOrder = append(s.employeeOrder, e.ID)
	}
	s.employees[e.ID] = e
	return nil
}

// DeleteEmployee removes an employee and runs the deletion hook. Deleting
// an unknown ID is a no-op.
func (s *Store) DeleteEmployee(ctx context.Context, id string) {
	s.mu.Lock()
	e, exists := s.employees[id]
	if exists {
		delete(s.employees, id)
		s.employeeOrder = removeID(s.employeeOrder, id)
	}
	hook := s.hooks.OnEmployeeDeleted
	s.mu.Unlock()

	if !exists {
		return
	}
	if hook != nil {
		hook(ctx, e.Name)
	}
	s.logger.InfoContext(ctx, "employee deleted",
		slog.String("employee_id", id),
		slog.String("name", e.Name),
	)
}

// UpsertCrew adds or replaces a crew record.
func (s *Store) UpsertCrew(c directory.Crew) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("%w: crew needs id and name", errs.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.crews[c.ID]; !exists {
		s.crewOrder = append(s.crewOrder, c.ID)
	}
	s.crews[c.ID] = c
	return nil
}

// DeleteCrew removes a crew and runs the deletion hook. Deleting an unknown
// ID is a no-op.
func (s *Store) DeleteCrew(ctx context.Context, id string) {
	s.mu.Lock()
	_, exists := s.crews[id]
	if exists {
		delete(s.crews, id)
		s.crewOrder = removeID(s.crewOrder, id)
	}
	hook := s.hooks.OnCrewDeleted
	s.mu.Unlock()

	if !exists {
		return
	}
	if hook != nil {
		hook(ctx, id)
	}
	s.logger.InfoContext(ctx, "crew deleted", slog.String("crew_id", id))
}

// Employee implements directory.EmployeeLookup.
func (s *Store) Employee(_ context.Context, id string) (directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return directory.Employee{}, fmt.Errorf("%w: employee %s", errs.ErrNotFound, id)
	}
	return e, nil
}

// Employees implements directory.EmployeeLookup.
func (s *Store) Employees(_ context.Context) ([]directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]directory.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		out = append(out, s.employees[id])
	}
	return out, nil
}

// Crew implements directory.CrewLookup.
func (s *Store) Crew(_ context.Context, id string) (directory.Crew, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.crews[id]
	if !ok {
		return directory.Crew{}, fmt.Errorf("%w: crew %s", errs.ErrNotFound, id)
	}
	return c, nil
}

// Crews implements directory.CrewLookup.
func (s *Store) Crews(_ context.Context) ([]directory.Crew, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]directory.Crew, 0, len(s.crewOrder))
	for _, id := range s.crewOrder {
		out = append(out, s.crews[id])
	}
	return out, nil
}

// MemberNames implements directory.CrewLookup. Members whose employee
// record is gone are skipped, not errors.
func (s *Store) MemberNames(_ context.Context, crewID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.crews[crewID]
	if !ok {
		return nil, fmt.Errorf("%w: crew %s", errs.ErrNotFound, crewID)
	}

	names := make([]string, 0, len(c.MemberIDs))
	for _, memberID := range c.MemberIDs {
		if e, found := s.employees[memberID]; found {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
