// Package validation evaluates form answers against field constraints.
// The rules run against one field's current value only; cross-field rules
// do not exist in the form model.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/formfill/formfill/pkg/schema"
)

// CheckField applies the per-field rule chain and returns the failure
// message, or "" when the value passes.
//
// Rule order matters: a required-but-empty field reports the required
// message (author override wins) and short-circuits; an empty optional
// field always passes, length bounds notwithstanding; length bounds only
// apply to string values and count characters, not bytes.
func CheckField(field schema.Field, value any) string {
	if isEmpty(value) {
		if field.Required {
			return field.RequiredMessage()
		}
		return ""
	}

	str, ok := value.(string)
	if !ok {
		return ""
	}
	length := utf8.RuneCountInString(str)
	if field.MinLength != nil && length < *field.MinLength {
		return fmt.Sprintf("Minimum length is %d characters", *field.MinLength)
	}
	if field.MaxLength != nil && length > *field.MaxLength {
		return fmt.Sprintf("Maximum length is %d characters", *field.MaxLength)
	}
	return ""
}

// CheckSection runs CheckField over every field of the section and
// collects failures keyed by fieldId. Passing fields are omitted. The
// returned map is always freshly allocated: callers replace their whole
// error map with it, so entries belonging to other sections never
// survive a section check.
func CheckSection(section schema.Section, values map[string]any) (map[string]string, bool) {
	errs := make(map[string]string)
	for _, field := range section.Fields {
		if msg := CheckField(field, values[field.FieldID]); msg != "" {
			errs[field.FieldID] = msg
		}
	}
	return errs, len(errs) == 0
}

// isEmpty reports whether a value counts as "not answered": absent, the
// empty string, or an empty multi-select. A false boolean is an answer.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
