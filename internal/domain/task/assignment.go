package task

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/okodanev/deskhub/internal/domain/errs"
)

// AssignmentKind discriminates the Assignment union.
type AssignmentKind string

// Assignment kinds. A task is either unassigned, assigned to one employee,
// or assigned to a crew; the arms are mutually exclusive by construction.
const (
	KindUnassigned AssignmentKind = "unassigned"
	KindIndividual AssignmentKind = "individual"
	KindCrew       AssignmentKind = "crew"
)

// Individual identifies a single assigned employee by display name.
type Individual struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// CrewSnapshot captures a crew assignment. Members holds the member display
// names resolved at assignment time; later crew-membership edits do not
// touch tasks that were already created.
type CrewSnapshot struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Assignment is a tagged union: exactly one arm is populated, selected by
// the kind. The zero value is unassigned.
type Assignment struct {
	kind       AssignmentKind
	individual Individual
	crew       CrewSnapshot
}

// Unassigned returns the empty assignment.
func Unassigned() Assignment {
	return Assignment{kind: KindUnassigned}
}

// AssignIndividual returns an assignment to a single employee.
func AssignIndividual(name, avatar string) Assignment {
	return Assignment{
		kind:       KindIndividual,
		individual: Individual{Name: name, Avatar: avatar},
	}
}

// AssignCrew returns a crew assignment with a members snapshot. The member
// list is copied so the caller's slice cannot alias stored state.
func AssignCrew(id, name string, members []string) Assignment {
	return Assignment{
		kind: KindCrew,
		crew: CrewSnapshot{ID: id, Name: name, Members: slices.Clone(members)},
	}
}

// Kind returns the populated arm of the union.
func (a Assignment) Kind() AssignmentKind {
	if a.kind == "" {
		return KindUnassigned
	}
	return a.kind
}

// IsAssigned reports whether the task has any assignee.
func (a Assignment) IsAssigned() bool {
	return a.Kind() != KindUnassigned
}

// Individual returns the individual arm. Valid only when Kind is KindIndividual.
func (a Assignment) Individual() (Individual, bool) {
	return a.individual, a.Kind() == KindIndividual
}

// Crew returns the crew arm. Valid only when Kind is KindCrew.
func (a Assignment) Crew() (CrewSnapshot, bool) {
	if a.Kind() != KindCrew {
		return CrewSnapshot{}, false
	}
	return a.crew, true
}

// DisplayName returns the assignee label for notifications and widgets.
func (a Assignment) DisplayName() string {
	switch a.Kind() {
	case KindIndividual:
		return a.individual.Name
	case KindCrew:
		return a.crew.Name
	case KindUnassigned:
		return ""
	}
	return ""
}

func (a Assignment) clone() Assignment {
	c := a
	c.crew.Members = slices.Clone(a.crew.Members)
	return c
}

// assignmentJSON is the wire form of the union.
type assignmentJSON struct {
	Kind       AssignmentKind `json:"kind"`
	Individual *Individual    `json:"individual,omitempty"`
	Crew       *CrewSnapshot  `json:"crew,omitempty"`
}

// MarshalJSON serializes only the populated arm.
func (a Assignment) MarshalJSON() ([]byte, error) {
	out := assignmentJSON{Kind: a.Kind()}
	switch a.Kind() {
	case KindIndividual:
		ind := a.individual
		out.Individual = &ind
	case KindCrew:
		crew := a.crew
		crew.Members = slices.Clone(a.crew.Members)
		out.Crew = &crew
	case KindUnassigned:
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the union, rejecting forms where the declared kind
// and the populated arm disagree.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var in assignmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Kind {
	case KindUnassigned, "":
		*a = Unassigned()
	case KindIndividual:
		if in.Individual == nil {
			return fmt.Errorf("%w: individual assignment without assignee", errs.ErrInvalidInput)
		}
		*a = AssignIndividual(in.Individual.Name, in.Individual.Avatar)
	case KindCrew:
		if in.Crew == nil {
			return fmt.Errorf("%w: crew assignment without crew", errs.ErrInvalidInput)
		}
		*a = AssignCrew(in.Crew.ID, in.Crew.Name, in.Crew.Members)
	default:
		return fmt.Errorf("%w: unknown assignment kind %q", errs.ErrInvalidInput, in.Kind)
	}
	return nil
}
