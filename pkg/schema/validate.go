package schema

import (
	"errors"
	"fmt"
)

// ErrNoSections is returned for a form without a single section; there is
// nothing to render or navigate.
var ErrNoSections = errors.New("schema: form has no sections")

// Validate checks the structural invariants a decoded form must satisfy
// before a session is built on top of it: at least one section, non-empty
// identifiers, field IDs unique across the whole form, and options on the
// kinds that select from them. Unknown field types are deliberately NOT an
// error; they render as unsupported placeholders.
func Validate(form Form) error {
	if len(form.Sections) == 0 {
		return ErrNoSections
	}

	seen := make(map[string]string, 16)
	for _, section := range form.Sections {
		if section.SectionID == "" {
			return fmt.Errorf("schema: section %q has an empty sectionId", section.Title)
		}
		for _, field := range section.Fields {
			if field.FieldID == "" {
				return fmt.Errorf("schema: section %s contains a field with an empty fieldId", section.SectionID)
			}
			if prev, dup := seen[field.FieldID]; dup {
				return fmt.Errorf("schema: duplicate fieldId %q (sections %s and %s)", field.FieldID, prev, section.SectionID)
			}
			seen[field.FieldID] = section.SectionID

			switch field.Kind() {
			case KindDropdown, KindRadio:
				if len(field.Options) == 0 {
					return fmt.Errorf("schema: field %s is a %s without options", field.FieldID, field.Type)
				}
			}
			if field.MinLength != nil && *field.MinLength < 0 {
				return fmt.Errorf("schema: field %s has a negative minLength", field.FieldID)
			}
			if field.MaxLength != nil && *field.MaxLength < 0 {
				return fmt.Errorf("schema: field %s has a negative maxLength", field.FieldID)
			}
		}
	}
	return nil
}
