package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Normalize trims and strips markup from every human-visible string in
// the form. Schema text originates from a remote service and is written
// raw to the terminal, so tags and control sequences have no business
// surviving into the display path.
func Normalize(form *Form) {
	if form == nil {
		return
	}
	form.FormTitle = sanitizeText(form.FormTitle)
	for si := range form.Sections {
		section := &form.Sections[si]
		section.SectionID = strings.TrimSpace(section.SectionID)
		section.Title = sanitizeText(section.Title)
		section.Description = sanitizeText(section.Description)
		for fi := range section.Fields {
			field := &section.Fields[fi]
			field.FieldID = strings.TrimSpace(field.FieldID)
			field.Label = sanitizeText(field.Label)
			field.Placeholder = sanitizeText(field.Placeholder)
			if field.Validation != nil {
				field.Validation.Message = sanitizeText(field.Validation.Message)
			}
			for oi := range field.Options {
				field.Options[oi].Label = sanitizeText(field.Options[oi].Label)
			}
		}
	}
}

func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := sanitizer().Sanitize(trimmed)
	// StrictPolicy entity-escapes what it keeps; undo that for terminal
	// output where entities have no meaning.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func sanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
