package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a payload contains no form at all.
var ErrEmptyDocument = errors.New("schema: document contains no form")

// envelope matches the remote wire shape: the form sits under a "form"
// key, optionally next to a server message. Local files may store the
// form bare; both shapes are accepted.
type envelope struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Form    *Form  `json:"form,omitempty" yaml:"form,omitempty"`
}

// DecodeJSON parses a JSON payload into a normalised, validated Form.
func DecodeJSON(data []byte) (Form, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Form{}, fmt.Errorf("schema: decode json: %w", err)
	}
	if env.Form == nil {
		var bare Form
		if err := json.Unmarshal(data, &bare); err != nil {
			return Form{}, fmt.Errorf("schema: decode json: %w", err)
		}
		env.Form = &bare
	}
	return finalize(*env.Form)
}

// DecodeYAML parses a YAML payload into a normalised, validated Form.
func DecodeYAML(data []byte) (Form, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return Form{}, fmt.Errorf("schema: decode yaml: %w", err)
	}
	if env.Form == nil {
		var bare Form
		if err := yaml.Unmarshal(data, &bare); err != nil {
			return Form{}, fmt.Errorf("schema: decode yaml: %w", err)
		}
		env.Form = &bare
	}
	return finalize(*env.Form)
}

// Decode sniffs the payload format and dispatches to the JSON or YAML
// decoder. JSON documents start with an object or array once leading
// whitespace is trimmed; everything else is treated as YAML.
func Decode(data []byte) (Form, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Form{}, ErrEmptyDocument
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

func finalize(form Form) (Form, error) {
	Normalize(&form)
	if err := Validate(form); err != nil {
		return Form{}, err
	}
	return form, nil
}
