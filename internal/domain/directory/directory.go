// Package directory defines the employee and crew records the scheduling
// core reads at assignment time. The directory itself (CRUD, HR flows) is an
// external collaborator; the core only depends on these lookup interfaces.
package directory

import "context"

// Employee is a directory record for a single person.
type Employee struct {
	ID     string `json:"id"     yaml:"id"`
	Name   string `json:"name"   yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Role   string `json:"role,omitempty" yaml:"role"`
}

// Crew is a named group of employees referenced by ID.
type Crew struct {
	ID        string   `json:"id"         yaml:"id"`
	Name      string   `json:"name"       yaml:"name"`
	MemberIDs []string `json:"member_ids" yaml:"member_ids"`
}

// EmployeeLookup resolves employees for assignment.
type EmployeeLookup interface {
	// Employee returns the employee with the given ID.
	// Returns errs.ErrNotFound if absent.
	Employee(ctx context.Context, id string) (Employee, error)

	// Employees returns all employees in stable order.
	Employees(ctx context.Context) ([]Employee, error)
}

// CrewLookup resolves crews and their member names for assignment.
type CrewLookup interface {
	// Crew returns the crew with the given ID.
	// Returns errs.ErrNotFound if absent.
	Crew(ctx context.Context, id string) (Crew, error)

	// Crews returns all crews in stable order.
	Crews(ctx context.Context) ([]Crew, error)

	// MemberNames resolves the display names of the crew's current members.
	// Members whose employee record is gone are skipped, not errors.
	MemberNames(ctx context.Context, crewID string) ([]string, error)
}

// Lookup combines both directory views.
type Lookup interface {
	EmployeeLookup
	CrewLookup
}
