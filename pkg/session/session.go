// Package session owns the mutable state of one form-filling session:
// the authenticated user, the fetched schema, the value map, the error
// map, and the current section index. All mutation flows through Session
// methods so there is exactly one writer; nothing here is goroutine-safe
// and nothing needs to be.
package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/formfill/formfill/pkg/schema"
)

// User is the identity established at login. It is immutable for the
// lifetime of the session.
type User struct {
	RollNumber string
	Name       string
}

// Session carries everything a running form session owns. Values are
// typed per field kind: string for text-like, dropdown and radio fields,
// []string for multi-checkboxes, bool for boolean checkboxes.
type Session struct {
	id     string
	user   User
	form   schema.Form
	values map[string]any
	errors map[string]string
	index  int
}

// New builds a session for an authenticated user over a fetched form and
// initialises the value map: every fieldId in the schema gets its
// type-appropriate empty value, so lookups never miss after this point.
func New(user User, form schema.Form) *Session {
	s := &Session{
		id:     uuid.NewString(),
		user:   user,
		form:   form,
		values: make(map[string]any),
		errors: make(map[string]string),
	}
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			s.values[field.FieldID] = field.EmptyValue()
		}
	}
	return s
}

// ID returns the session identifier used in diagnostics.
func (s *Session) ID() string { return s.id }

// User returns the session identity.
func (s *Session) User() User { return s.user }

// Form returns the schema the session renders. Read-only by convention.
func (s *Session) Form() schema.Form { return s.form }

// Set records a new value for a field and drops any error attached to
// it. The clear is unconditional: editing resets a field's error state
// regardless of whether the new value would itself validate.
func (s *Session) Set(fieldID string, value any) {
	s.values[fieldID] = value
	delete(s.errors, fieldID)
}

// Toggle flips one option of a multi-checkbox field: absent values are
// appended, present values removed. Insertion order is preserved and a
// value can appear at most once, so toggling twice restores the prior
// contents and order. Like Set, it clears the field's error.
func (s *Session) Toggle(fieldID, option string) {
	current, _ := s.values[fieldID].([]string)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == option {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, option)
	}
	s.Set(fieldID, next)
}

// Value returns the current answer for a field, falling back to the
// field's empty value when the map has no entry.
func (s *Session) Value(field schema.Field) any {
	if v, ok := s.values[field.FieldID]; ok {
		return v
	}
	return field.EmptyValue()
}

// Values exposes the value map for validation. Callers must not mutate.
func (s *Session) Values() map[string]any { return s.values }

// ErrorFor returns the validation message attached to a field, or "".
func (s *Session) ErrorFor(fieldID string) string { return s.errors[fieldID] }

// ReplaceErrors swaps the entire error map for the result of a section
// check. Entries for fields outside the checked section do not survive;
// that is the contract, not an accident.
func (s *Session) ReplaceErrors(errs map[string]string) {
	if errs == nil {
		errs = make(map[string]string)
	}
	s.errors = errs
}

// Index returns the current section position.
func (s *Session) Index() int { return s.index }

// SectionCount returns the number of sections in the form.
func (s *Session) SectionCount() int { return len(s.form.Sections) }

// Section returns the section at the current index.
func (s *Session) Section() schema.Section { return s.form.Sections[s.index] }

// AtFirst reports whether the session is on the first section; moving
// backward is impossible there.
func (s *Session) AtFirst() bool { return s.index == 0 }

// AtLast reports whether the session is on the last section, where Next
// gives way to Submit.
func (s *Session) AtLast() bool { return s.index == len(s.form.Sections)-1 }

// Advance moves one section forward. The orchestrator only calls it
// after the current section validated.
func (s *Session) Advance() {
	if !s.AtLast() {
		s.index++
	}
}

// Retreat moves one section back without any validation; backward
// navigation is always unconditional.
func (s *Session) Retreat() {
	if !s.AtFirst() {
		s.index--
	}
}

// FormatValue renders a stored answer for display: multi-selects join
// with a comma, booleans read Yes/No, anything empty or absent shows a
// dash.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		if strings.TrimSpace(v) == "" {
			return "-"
		}
		return v
	case []string:
		if len(v) == 0 {
			return "-"
		}
		return strings.Join(v, ", ")
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	default:
		return "-"
	}
}
