package schema

// FieldType is the wire-level type tag carried by each field in a form
// document. The set is closed; anything else is preserved verbatim and
// surfaces as KindUnknown so renderers can show a placeholder instead of
// failing.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTel      FieldType = "tel"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Kind classifies a field into the variant a renderer dispatches on. It
// folds the text-like wire types together and splits checkbox by whether
// the field carries options, so every consumer branches the same way.
type Kind int

const (
	// KindUnknown marks an unrecognised wire type. Renderers show an
	// "unsupported" placeholder and never emit a value for it.
	KindUnknown Kind = iota
	KindText
	KindTextArea
	KindDropdown
	KindRadio
	// KindMultiCheckbox is a checkbox field with options: an independent
	// multi-select whose value is an ordered []string.
	KindMultiCheckbox
	// KindBoolCheckbox is a checkbox field without options: a single
	// boolean toggle.
	KindBoolCheckbox
)

// Validation carries the author-supplied override for the required-field
// message.
type Validation struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option is one selectable choice of a dropdown, radio, or multi-checkbox
// field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes a single input of a form section.
type Field struct {
	FieldID     string      `json:"fieldId" yaml:"fieldId"`
	Type        FieldType   `json:"type" yaml:"type"`
	Label       string      `json:"label" yaml:"label"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	MinLength   *int        `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Options     []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Section groups the fields shown together on one page. Section order in
// the form defines the navigation sequence.
type Section struct {
	SectionID   string  `json:"sectionId" yaml:"sectionId"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Form is the top-level schema a session renders. It is fetched once and
// read-only thereafter.
type Form struct {
	FormTitle string    `json:"formTitle" yaml:"formTitle"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// Kind resolves the field's rendering variant. This is the single
// classification point; renderers and validation must not re-derive it
// from the raw type string.
func (f Field) Kind() Kind {
	switch f.Type {
	case FieldTypeText, FieldTypeTel, FieldTypeEmail, FieldTypeDate:
		return KindText
	case FieldTypeTextArea:
		return KindTextArea
	case FieldTypeDropdown:
		return KindDropdown
	case FieldTypeRadio:
		return KindRadio
	case FieldTypeCheckbox:
		if len(f.Options) > 0 {
			return KindMultiCheckbox
		}
		return KindBoolCheckbox
	default:
		return KindUnknown
	}
}

// EmptyValue returns the type-appropriate zero answer used when a value
// map is initialised: an empty slice for multi-checkboxes, false for
// boolean checkboxes, the empty string for everything else.
func (f Field) EmptyValue() any {
	switch f.Kind() {
	case KindMultiCheckbox:
		return []string{}
	case KindBoolCheckbox:
		return false
	default:
		return ""
	}
}

// RequiredMessage returns the message reported when a required field is
// left empty, honouring the author override when present.
func (f Field) RequiredMessage() string {
	if f.Validation != nil && f.Validation.Message != "" {
		return f.Validation.Message
	}
	return "This field is required"
}

// FieldByID scans the whole form for a field. Useful for summary and
// error reporting; navigation itself always walks sections in order.
func (m Form) FieldByID(id string) (Field, bool) {
	for _, section := range m.Sections {
		for _, field := range section.Fields {
			if field.FieldID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}
