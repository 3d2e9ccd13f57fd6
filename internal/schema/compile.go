package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/fieldlock/fieldlock/internal/record"
)

// Compile parses a CUE value into a RecordSpec.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the record struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`record: Point: { x: int, y: int, z: int | *0 }`)
//	spec, err := Compile(v.LookupPath(cue.ParsePath("record.Point")))
func Compile(v cue.Value) (*RecordSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &RecordSpec{}

	// The record name is the struct label (the last path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		field, err := compileField(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		spec.Fields = append(spec.Fields, field)
	}

	if len(spec.Fields) == 0 {
		return nil, &CompileError{
			Field:   spec.Name,
			Message: "record must declare at least one field",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// compileField maps one CUE struct field to a FieldSpec.
func compileField(name string, v cue.Value) (FieldSpec, error) {
	typeName, err := extractTypeName(v)
	if err != nil {
		if compileErr, ok := err.(*CompileError); ok {
			compileErr.Field = name
		}
		return FieldSpec{}, err
	}

	field := FieldSpec{Name: name, Type: typeName}

	// A disjunction default (*expr) becomes the field default. Fields
	// without one stay required.
	if dv, ok := v.Default(); ok {
		def, err := compileDefault(dv)
		if err != nil {
			return FieldSpec{}, &CompileError{
				Field:   name,
				Message: fmt.Sprintf("invalid default: %v", err),
				Pos:     v.Pos(),
			}
		}
		field.Default = def
	}

	return field, nil
}

// compileDefault converts a concrete CUE default value to a record value.
func compileDefault(v cue.Value) (record.Value, error) {
	var raw any
	if err := v.Decode(&raw); err != nil {
		return nil, err
	}
	return record.FromGo(raw)
}

// extractTypeName converts a CUE type to a field type string.
// Floats are rejected: record values must have exact canonical forms.
func extractTypeName(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string", nil
	case cue.IntKind:
		return "int", nil
	case cue.BoolKind:
		return "bool", nil
	case cue.ListKind:
		return "list", nil
	case cue.StructKind:
		return "object", nil
	case cue.FloatKind, cue.NumberKind:
		return "", &CompileError{
			Field:   "type",
			Message: "float types are not supported - use int instead",
			Pos:     v.Pos(),
		}
	default:
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
