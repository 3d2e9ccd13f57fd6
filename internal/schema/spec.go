package schema

import (
	"encoding/json"
	"fmt"

	"github.com/fieldlock/fieldlock/internal/record"
)

// FieldSpec is the serializable form of one record field.
// A nil Default marks the field as required.
type FieldSpec struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Default record.Value `json:"default,omitempty"`
}

// RecordSpec is the serializable form of a compiled record declaration.
// It is the unit stored, hashed, and emitted by the compile command;
// Definition turns it into a live record.Definition.
type RecordSpec struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

// UnmarshalJSON implements json.Unmarshaler for FieldSpec. The default value
// is decoded through record.UnmarshalValue so floats and nulls are rejected
// and large integers survive.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string          `json:"name"`
		Type    string          `json:"type"`
		Default json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Name = raw.Name
	f.Type = raw.Type
	f.Default = nil
	if len(raw.Default) > 0 {
		v, err := record.UnmarshalValue(raw.Default)
		if err != nil {
			return fmt.Errorf("field %q default: %w", raw.Name, err)
		}
		f.Default = v
	}
	return nil
}

// Definition builds a record.Definition from the spec.
// Schema violations surface as record.SchemaError.
func (s *RecordSpec) Definition() (*record.Definition, error) {
	fields := make([]record.Field, len(s.Fields))
	for i, f := range s.Fields {
		typ, err := record.ParseType(f.Type)
		if err != nil {
			return nil, &record.SchemaError{Definition: s.Name, Field: f.Name,
				Message: fmt.Sprintf("unknown field type %q", f.Type)}
		}
		fields[i] = record.Field{Name: f.Name, Type: typ, Default: f.Default}
	}
	return record.NewDefinition(s.Name, fields)
}

// SpecFromDefinition converts a live Definition back to its serializable form.
func SpecFromDefinition(d *record.Definition) RecordSpec {
	defFields := d.Fields()
	fields := make([]FieldSpec, len(defFields))
	for i, f := range defFields {
		fields[i] = FieldSpec{Name: f.Name, Type: f.Type.String(), Default: f.Default}
	}
	return RecordSpec{Name: d.Name(), Fields: fields}
}

// CanonicalJSON renders the spec as RFC 8785 canonical JSON, the form used
// for storage and golden comparison.
func (s *RecordSpec) CanonicalJSON() ([]byte, error) {
	fields := make(record.List, len(s.Fields))
	for i, f := range s.Fields {
		obj := record.Object{
			"name": record.String(f.Name),
			"type": record.String(f.Type),
		}
		if f.Default != nil {
			obj["default"] = f.Default
		}
		fields[i] = obj
	}

	return record.MarshalCanonical(record.Object{
		"name":   record.String(s.Name),
		"fields": fields,
	})
}

// ParseSpec parses the canonical (or plain) JSON form back to a RecordSpec.
func ParseSpec(data []byte) (*RecordSpec, error) {
	var spec RecordSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse record spec: %w", err)
	}
	return &spec, nil
}
