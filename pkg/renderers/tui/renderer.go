// Package tui renders a form session in the terminal: survey prompts for
// input, lipgloss-formatted screens for section and summary views. The
// renderer holds no session state of its own; it reads and mutates the
// session it is handed, which keeps the single-writer discipline intact.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/formfill/formfill/pkg/schema"
	"github.com/formfill/formfill/pkg/session"
)

// CredentialsRequiredMessage is shown when either login field is blank
// after trimming. No network call happens in that case.
const CredentialsRequiredMessage = "Both Roll Number and Name are required"

// UnsupportedFieldNotice is displayed in place of a control for field
// types the renderer does not recognise.
const UnsupportedFieldNotice = "unsupported field type"

const noSelectionLabel = "(no selection)"

const (
	labelPrevious = "Previous"
	labelNext     = "Next"
	labelSubmit   = "Submit"
)

// ActionKind enumerates what the user chose on a section screen.
type ActionKind int

const (
	// ActionEdit selects one field of the current section for editing.
	ActionEdit ActionKind = iota
	// ActionPrevious moves one section back; never offered on the first
	// section and never validated.
	ActionPrevious
	// ActionNext asks to advance; the orchestrator validates first.
	ActionNext
	// ActionSubmit finishes the form; only offered on the last section.
	ActionSubmit
)

// Step is one user decision taken on a section screen.
type Step struct {
	Action ActionKind
	// Field indexes into the section's fields when Action is ActionEdit.
	Field int
}

// Renderer drives all terminal interaction for a form session.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	styles styles
}

// New constructs a renderer with the survey driver and stdout views.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver: newSurveyDriver(),
		out:    os.Stdout,
		styles: defaultStyles(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Credentials collects the two login fields and loops until both are
// non-blank after trimming, surfacing the combined inline error in
// between. It performs no network work; the caller owns submission.
func (r *Renderer) Credentials(ctx context.Context) (session.User, error) {
	for {
		roll, err := r.driver.Input(ctx, InputConfig{Message: "Roll Number"})
		if err != nil {
			return session.User{}, err
		}
		name, err := r.driver.Input(ctx, InputConfig{Message: "Name"})
		if err != nil {
			return session.User{}, err
		}

		roll = strings.TrimSpace(roll)
		name = strings.TrimSpace(name)
		if roll == "" || name == "" {
			r.Error(ctx, CredentialsRequiredMessage)
			continue
		}
		return session.User{RollNumber: roll, Name: name}, nil
	}
}

// SectionStep draws the current section screen and asks the user what to
// do next: edit one of its fields, go back, advance, or submit. The
// offered choices follow the session position; Previous is absent on the
// first section and Next gives way to Submit on the last.
func (r *Renderer) SectionStep(ctx context.Context, sess *session.Session) (Step, error) {
	fmt.Fprint(r.out, r.sectionView(sess))

	section := sess.Section()
	options := make([]string, 0, len(section.Fields)+2)
	for _, field := range section.Fields {
		options = append(options, "Edit "+fieldLabel(field))
	}
	prevIdx, nextIdx, submitIdx := -1, -1, -1
	if !sess.AtFirst() {
		prevIdx = len(options)
		options = append(options, labelPrevious)
	}
	if sess.AtLast() {
		submitIdx = len(options)
		options = append(options, labelSubmit)
	} else {
		nextIdx = len(options)
		options = append(options, labelNext)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "What next?",
		Options:      options,
		DefaultIndex: -1,
		PageSize:     len(options),
	})
	if err != nil {
		return Step{}, err
	}

	switch idx {
	case prevIdx:
		return Step{Action: ActionPrevious}, nil
	case nextIdx:
		return Step{Action: ActionNext}, nil
	case submitIdx:
		return Step{Action: ActionSubmit}, nil
	default:
		if idx < 0 || idx >= len(section.Fields) {
			return Step{}, fmt.Errorf("tui: selection %d out of range", idx)
		}
		return Step{Action: ActionEdit, Field: idx}, nil
	}
}

// EditField prompts for a new value of one field and writes it into the
// session, which clears any error attached to the field. Unsupported
// field types show a notice and leave the session untouched.
func (r *Renderer) EditField(ctx context.Context, sess *session.Session, field schema.Field) error {
	switch field.Kind() {
	case schema.KindText:
		current, _ := sess.Value(field).(string)
		value, err := r.driver.Input(ctx, InputConfig{
			Message: fieldLabel(field),
			Default: current,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		sess.Set(field.FieldID, value)

	case schema.KindTextArea:
		current, _ := sess.Value(field).(string)
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: fieldLabel(field),
			Default: current,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		sess.Set(field.FieldID, value)

	case schema.KindDropdown:
		return r.editDropdown(ctx, sess, field)

	case schema.KindRadio:
		return r.editRadio(ctx, sess, field)

	case schema.KindMultiCheckbox:
		return r.editMultiCheckbox(ctx, sess, field)

	case schema.KindBoolCheckbox:
		current, _ := sess.Value(field).(bool)
		value, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fieldLabel(field),
			Default: current,
		})
		if err != nil {
			return err
		}
		sess.Set(field.FieldID, value)

	case schema.KindUnknown:
		// Visible placeholder, no crash, no value emitted.
		return r.driver.Info(ctx, r.styles.errText.Render(
			fmt.Sprintf("%s: %q", UnsupportedFieldNotice, field.Type)))
	}
	return nil
}

// editDropdown offers the options behind a "(no selection)" sentinel
// that maps back to the empty string.
func (r *Renderer) editDropdown(ctx context.Context, sess *session.Session, field schema.Field) error {
	current, _ := sess.Value(field).(string)
	options := make([]string, 0, len(field.Options)+1)
	options = append(options, noSelectionLabel)
	defaultIdx := 0
	for i, opt := range field.Options {
		options = append(options, optionLabel(opt))
		if opt.Value == current && current != "" {
			defaultIdx = i + 1
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fieldLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx <= 0 {
		sess.Set(field.FieldID, "")
		return nil
	}
	sess.Set(field.FieldID, field.Options[idx-1].Value)
	return nil
}

// editRadio selects exactly one option; there is no blank sentinel, the
// group stays unset until the first pick.
func (r *Renderer) editRadio(ctx context.Context, sess *session.Session, field schema.Field) error {
	current, _ := sess.Value(field).(string)
	options := make([]string, len(field.Options))
	defaultIdx := -1
	for i, opt := range field.Options {
		options[i] = optionLabel(opt)
		if opt.Value == current && current != "" {
			defaultIdx = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fieldLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("tui: radio selection %d out of range", idx)
	}
	sess.Set(field.FieldID, field.Options[idx].Value)
	return nil
}

// editMultiCheckbox lets the user rebuild the selection, then applies
// the difference as individual toggles so insertion order of values that
// stay selected is preserved and newly picked values append in option
// order.
func (r *Renderer) editMultiCheckbox(ctx context.Context, sess *session.Session, field schema.Field) error {
	current, _ := sess.Value(field).([]string)
	options := make([]string, len(field.Options))
	valueByLabelIdx := make([]string, len(field.Options))
	for i, opt := range field.Options {
		options[i] = optionLabel(opt)
		valueByLabelIdx[i] = opt.Value
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  fieldLabel(field),
		Options:  options,
		Defaults: selectedIndices(field.Options, current),
	})
	if err != nil {
		return err
	}

	next := make(map[string]struct{}, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(valueByLabelIdx) {
			next[valueByLabelIdx[idx]] = struct{}{}
		}
	}

	was := make(map[string]struct{}, len(current))
	for _, v := range current {
		was[v] = struct{}{}
		if _, keep := next[v]; !keep {
			sess.Toggle(field.FieldID, v)
		}
	}
	for _, opt := range field.Options {
		_, wanted := next[opt.Value]
		_, had := was[opt.Value]
		if wanted && !had {
			sess.Toggle(field.FieldID, opt.Value)
		}
	}
	if len(current) == 0 && len(indices) == 0 {
		// No toggles fired; still counts as an edit.
		sess.Set(field.FieldID, []string{})
	}
	return nil
}

// Notice prints an informational line (e.g. the login success message).
func (r *Renderer) Notice(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.styles.success.Render(msg))
}

// Error prints a user-facing error line.
func (r *Renderer) Error(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.styles.errText.Render(msg))
}

// Ask poses a yes/no question.
func (r *Renderer) Ask(ctx context.Context, msg string, def bool) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: msg, Default: def})
}

// Title prints the form title banner once per session.
func (r *Renderer) Title(title string) {
	if title == "" {
		return
	}
	fmt.Fprintln(r.out, r.styles.title.Render(title))
	fmt.Fprintln(r.out)
}

func fieldLabel(field schema.Field) string {
	label := field.Label
	if label == "" {
		label = field.FieldID
	}
	if field.Required {
		label += " *"
	}
	return label
}

func optionLabel(opt schema.Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Value
}

func selectedIndices(options []schema.Option, selected []string) []int {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	var out []int
	for i, opt := range options {
		if _, ok := set[opt.Value]; ok {
			out = append(out, i)
		}
	}
	return out
}
