package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/formfill/formfill/pkg/api"
	"github.com/formfill/formfill/pkg/renderers/tui"
	"github.com/formfill/formfill/pkg/schema"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	multis   [][]int
	texts    []string
	infos    []string

	inputPos, confirmPos, selectPos, multiPos, textPos int
}

func (s *scriptedDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	v := s.inputs[s.inputPos]
	s.inputPos++
	return v, nil
}

func (s *scriptedDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	if s.textPos >= len(s.texts) {
		return "", errors.New("no textarea scripted")
	}
	v := s.texts[s.textPos]
	s.textPos++
	return v, nil
}

func (s *scriptedDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	v := s.confirms[s.confirmPos]
	s.confirmPos++
	return v, nil
}

func (s *scriptedDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	v := s.selects[s.selectPos]
	s.selectPos++
	return v, nil
}

func (s *scriptedDriver) MultiSelect(_ context.Context, _ tui.SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multis) {
		return nil, errors.New("no multiselect scripted")
	}
	v := s.multis[s.multiPos]
	s.multiPos++
	return v, nil
}

func (s *scriptedDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func (s *scriptedDriver) sawInfo(substr string) bool {
	for _, msg := range s.infos {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type fakeClient struct {
	createCalls int
	createErrs  []error
	formCalls   int
	form        schema.Form
	formErr     error
	lastRoll    string
	lastName    string
}

func (f *fakeClient) CreateUser(_ context.Context, rollNumber, name string) (string, error) {
	f.createCalls++
	f.lastRoll, f.lastName = rollNumber, name
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return "", err
		}
	}
	return api.DefaultUserCreatedMessage, nil
}

func (f *fakeClient) GetForm(_ context.Context, rollNumber string) (schema.Form, error) {
	f.formCalls++
	if f.formErr != nil {
		return schema.Form{}, f.formErr
	}
	return f.form, nil
}

func intp(n int) *int { return &n }

func twoSectionForm() schema.Form {
	return schema.Form{
		FormTitle: "Dynamic Form",
		Sections: []schema.Section{
			{
				SectionID: "s1",
				Title:     "About you",
				Fields: []schema.Field{
					{FieldID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, MinLength: intp(2)},
				},
			},
			{
				SectionID: "s2",
				Title:     "Wrap up",
				Fields: []schema.Field{
					{FieldID: "notes", Type: schema.FieldTypeTextArea, Label: "Notes"},
				},
			},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(driver *scriptedDriver, client Client, out *bytes.Buffer) *Orchestrator {
	renderer := tui.New(tui.WithPromptDriver(driver), tui.WithOutput(out))
	return New(WithClient(client), WithRenderer(renderer), WithLogger(quietLogger()))
}

// Mirrors the canonical walkthrough: "A" is rejected with the min-length
// message and navigation stays put; "Al" passes and the form submits
// from the second section.
func TestRun_MinLengthScenario(t *testing.T) {
	driver := &scriptedDriver{
		inputs: []string{"21BCE100", "Alice", "A", "Al"},
		// s1 menu: [Edit Name *, Next]; s2 menu: [Edit Notes, Previous, Submit]
		selects:  []int{0, 1, 0, 1, 2},
		confirms: []bool{false}, // no second session
	}
	client := &fakeClient{form: twoSectionForm()}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	view := out.String()
	if !strings.Contains(view, "Minimum length is 2 characters") {
		t.Fatalf("min-length error never rendered:\n%s", view)
	}
	if !strings.Contains(view, "Wrap up") {
		t.Fatalf("second section never rendered:\n%s", view)
	}
	if !strings.Contains(view, "Summary") {
		t.Fatalf("summary never rendered:\n%s", view)
	}
	if o.State() != StateReady {
		t.Fatalf("state = %v", o.State())
	}
	if client.formCalls != 1 {
		t.Fatalf("form fetched %d times", client.formCalls)
	}
}

func TestRun_BlankCredentialsNeverHitNetwork(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"", "Alice", "21BCE100", "Alice", "Bob"},
		selects:  []int{1}, // straight to Submit on the single optional section
		confirms: []bool{false},
	}
	form := schema.Form{
		FormTitle: "F",
		Sections: []schema.Section{
			{SectionID: "s1", Title: "Only", Fields: []schema.Field{
				{FieldID: "notes", Type: schema.FieldTypeText, Label: "Notes"},
			}},
		},
	}
	client := &fakeClient{form: form}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !driver.sawInfo(tui.CredentialsRequiredMessage) {
		t.Fatalf("missing inline error, infos = %v", driver.infos)
	}
	if client.createCalls != 1 {
		t.Fatalf("create-user called %d times; the blank attempt must not reach the network", client.createCalls)
	}
	if client.lastRoll != "21BCE100" {
		t.Fatalf("rollNumber = %q", client.lastRoll)
	}
}

func TestRun_LoginRejectionAllowsResubmission(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"21BCE100", "Alice", "21BCE101", "Alice"},
		selects:  []int{1},
		confirms: []bool{false},
	}
	form := schema.Form{
		FormTitle: "F",
		Sections: []schema.Section{
			{SectionID: "s1", Title: "Only", Fields: []schema.Field{
				{FieldID: "notes", Type: schema.FieldTypeText, Label: "Notes"},
			}},
		},
	}
	client := &fakeClient{
		form:       form,
		createErrs: []error{&api.AuthError{Message: "User already exists", Rejected: true}},
	}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !driver.sawInfo("User already exists") {
		t.Fatalf("server message not surfaced, infos = %v", driver.infos)
	}
	if client.createCalls != 2 {
		t.Fatalf("create-user called %d times", client.createCalls)
	}
}

func TestRun_FetchFailureIsTerminalUntilLogout(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"21BCE100", "Alice"},
		confirms: []bool{false}, // decline returning to login
	}
	client := &fakeClient{formErr: &api.FetchError{Err: errors.New("boom")}}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if o.State() != StateFailed {
		t.Fatalf("state = %v", o.State())
	}
	if !driver.sawInfo(api.FormUnavailableMessage) {
		t.Fatalf("fixed failed-to-load message missing, infos = %v", driver.infos)
	}
}

func TestRun_FetchFailureReturnToLoginResets(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"21BCE100", "Alice", "21BCE100", "Alice"},
		confirms: []bool{true, false}, // back to login, then give up again
	}
	client := &fakeClient{formErr: &api.FetchError{Err: errors.New("boom")}}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if client.createCalls != 2 || client.formCalls != 2 {
		t.Fatalf("expected a full second pass, got create=%d form=%d", client.createCalls, client.formCalls)
	}
}

func TestRun_PreviousNeverValidates(t *testing.T) {
	driver := &scriptedDriver{
		inputs: []string{"21BCE100", "Alice", "Al"},
		// s1: edit name, Next; s2: Previous (no validation even though s2
		// would pass anyway); s1 again: Next; s2: Submit.
		selects:  []int{0, 1, 1, 1, 2},
		confirms: []bool{false},
	}
	client := &fakeClient{form: twoSectionForm()}
	var out bytes.Buffer

	o := newOrchestrator(driver, client, &out)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Rendered s1, s2, s1, s2: the first section title shows twice.
	if got := strings.Count(out.String(), "About you"); got < 2 {
		t.Fatalf("expected to revisit the first section, saw it %d times", got)
	}
}

func TestRun_RequiresClient(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	if err := o.Run(context.Background()); err == nil {
		t.Fatal("expected error without a client")
	}
}
