package tui

import (
	"fmt"
	"strings"

	"github.com/formfill/formfill/pkg/schema"
	"github.com/formfill/formfill/pkg/session"
)

// sectionView builds the screen for the current section: title and
// description, a "Section i of N" position line with a proportional
// progress bar, then every field in schema order with its current value
// and, directly beneath it, any validation error.
func (r *Renderer) sectionView(sess *session.Session) string {
	section := sess.Section()
	position := sess.Index() + 1
	total := sess.SectionCount()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.styles.section.Render(section.Title))
	b.WriteString("\n")
	if section.Description != "" {
		b.WriteString(r.styles.muted.Render(section.Description))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("Section %d of %d", position, total)))
	b.WriteString("\n")
	b.WriteString(r.styles.progressBar(position, total))
	b.WriteString("\n\n")

	for _, field := range section.Fields {
		value := session.FormatValue(sess.Value(field))
		if field.Kind() == schema.KindUnknown {
			value = r.styles.errText.Render("(" + UnsupportedFieldNotice + ")")
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", r.styles.label.Render(fieldLabel(field)), value))
		if msg := sess.ErrorFor(field.FieldID); msg != "" {
			b.WriteString("  " + r.styles.errText.Render("✗ "+msg) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Summary writes the read-only recap of every answer in every section.
// Display only; nothing is transmitted or persisted.
func (r *Renderer) Summary(sess *session.Session) {
	form := sess.Form()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.styles.title.Render("Summary: " + form.FormTitle))
	b.WriteString("\n")
	for _, section := range form.Sections {
		b.WriteString("\n")
		b.WriteString(r.styles.section.Render(section.Title))
		b.WriteString("\n")
		for _, field := range section.Fields {
			label := field.Label
			if label == "" {
				label = field.FieldID
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", label, session.FormatValue(sess.Value(field))))
		}
	}
	b.WriteString("\n")
	fmt.Fprint(r.out, b.String())
}
