// Package dragdrop implements the transfer protocol for dragging entities
// between dashboard widgets: the payload schema, its serialized carrier
// form, and the acceptance gate for calendar day cells.
package dragdrop

import (
	"encoding/json"
	"fmt"

	"github.com/okodanev/deskhub/internal/domain/errs"
)

// Type discriminates drag payloads on the wire.
type Type string

// Recognized payload types. Drag sources outside this package (employee
// list, crew list, invoice list, booking list, the calendar itself) must
// serialize one of these.
const (
	TypeTask     Type = "todo"
	TypeEmployee Type = "employee"
	TypeCrew     Type = "crew"
	TypeInvoice  Type = "invoice"
	TypeBooking  Type = "booking"
)

// Payload is the sealed union of everything that can be dragged onto a day
// cell. Constructed at drag start, serialized into the carrier, decoded at
// drop, and discarded after resolution; never stored.
type Payload interface {
	// Kind returns the wire discriminator.
	Kind() Type

	// ID returns the identifier of the dragged entity.
	ID() string

	// Label returns the human-readable text shown during the drag.
	Label() string

	sealed()
}

// TaskRef is a drag of an existing task to another day.
type TaskRef struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// EmployeeRef is a drag of an employee from the directory list.
type EmployeeRef struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
}

// CrewRef is a drag of a crew from the crew list.
type CrewRef struct {
	CrewID string `json:"crew_id"`
	Name   string `json:"name"`
}

// InvoiceRef is a drag of an invoice from the billing list.
type InvoiceRef struct {
	InvoiceID string `json:"invoice_id"`
	Title     string `json:"title"`
}

// BookingRef is a drag of a booking from the bookings list.
type BookingRef struct {
	BookingID string `json:"booking_id"`
	Title     string `json:"title"`
}

// Kind implements Payload.
func (TaskRef) Kind() Type { return TypeTask }

// Kind implements Payload.
func (EmployeeRef) Kind() Type { return TypeEmployee }

// Kind implements Payload.
func (CrewRef) Kind() Type { return TypeCrew }

// Kind implements Payload.
func (InvoiceRef) Kind() Type { return TypeInvoice }

// Kind implements Payload.
func (BookingRef) Kind() Type { return TypeBooking }

// ID implements Payload.
func (p TaskRef) ID() string { return p.TaskID }

// ID implements Payload.
func (p EmployeeRef) ID() string { return p.EmployeeID }

// ID implements Payload.
func (p CrewRef) ID() string { return p.CrewID }

// ID implements Payload.
func (p InvoiceRef) ID() string { return p.InvoiceID }

// ID implements Payload.
func (p BookingRef) ID() string { return p.BookingID }

// Label implements Payload.
func (p TaskRef) Label() string { return p.Title }

// Label implements Payload.
func (p EmployeeRef) Label() string { return p.Name }

// Label implements Payload.
func (p CrewRef) Label() string { return p.Name }

// Label implements Payload.
func (p InvoiceRef) Label() string { return p.Title }

// Label implements Payload.
func (p BookingRef) Label() string { return p.Title }

func (TaskRef) sealed()     {}
func (EmployeeRef) sealed() {}
func (CrewRef) sealed()     {}
func (InvoiceRef) sealed()  {}
func (BookingRef) sealed()  {}

// envelope is the wire form: the common header plus the type-specific data.
type envelope struct {
	ID   string          `json:"id"`
	Text string          `json:"text"`
	Type Type            `json:"type"`
	Data json.RawMessage `json:"originalData"`
}

// Encode serializes a payload into its JSON wire form.
func Encode(p Payload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode drag payload: %w", err)
	}
	return json.Marshal(envelope{
		ID:   p.ID(),
		Text: p.Label(),
		Type: p.Kind(),
		Data: data,
	})
}

// Decode deserializes a payload from its JSON wire form. Malformed input,
// unknown types, and type/data mismatches all report errs.ErrMalformedPayload;
// drop handlers log that and treat the drop as a no-op instead of failing
// the render path.
func Decode(raw []byte) (Payload, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedPayload, err)
	}

	var (
		p   Payload
		err error
	)
	switch env.Type {
	case TypeTask:
		p, err = decodeAs[TaskRef](env)
	case TypeEmployee:
		p, err = decodeAs[EmployeeRef](env)
	case TypeCrew:
		p, err = decodeAs[CrewRef](env)
	case TypeInvoice:
		p, err = decodeAs[InvoiceRef](env)
	case TypeBooking:
		p, err = decodeAs[BookingRef](env)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", errs.ErrMalformedPayload, env.Type)
	}
	if err != nil {
		return nil, err
	}
	if p.ID() == "" {
		return nil, fmt.Errorf("%w: missing id", errs.ErrMalformedPayload)
	}
	return p, nil
}

func decodeAs[T Payload](env envelope) (Payload, error) {
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: %s payload without data", errs.ErrMalformedPayload, env.Type)
	}
	var p T
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedPayload, err)
	}
	return p, nil
}

// DayCellAccepts is the "allow drop" gate for calendar day cells: only the
// recognized payload types may land on a day.
func DayCellAccepts(t Type) bool {
	switch t {
	case TypeTask, TypeEmployee, TypeCrew, TypeInvoice, TypeBooking:
		return true
	default:
		return false
	}
}
