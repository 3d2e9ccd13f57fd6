package record

import (
	"fmt"
	"strings"
)

// SchemaError reports an invalid Definition: a duplicate field name, a
// required field declared after a defaulted one, an empty field list, or a
// malformed identifier. Raised at definition time, never later.
type SchemaError struct {
	Definition string // type name being defined
	Field      string // offending field, if any
	Message    string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema %s: field %s: %s", e.Definition, e.Field, e.Message)
	}
	return fmt.Sprintf("schema %s: %s", e.Definition, e.Message)
}

// ValueError reports a value outside the supported algebra (floats, nulls,
// unknown Go types) or a value that does not conform to a field's type.
type ValueError struct {
	Field   string // field being assigned, if known
	Message string
}

func (e *ValueError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("value for field %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ArityError reports a construction attempt with required fields missing or
// with more positional values than the definition has fields.
type ArityError struct {
	Definition string
	Missing    []string // required fields left unbound; empty on overflow
	Given      int      // positional values supplied on overflow
	Arity      int      // total field count
}

func (e *ArityError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing required fields: %s",
			e.Definition, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %d positional values for %d fields", e.Definition, e.Given, e.Arity)
}

// UnknownFieldError reports a named construction value that matches no field,
// or a field bound twice (positionally and by name).
type UnknownFieldError struct {
	Definition string
	Field      string
	Duplicate  bool // field was already bound positionally
}

func (e *UnknownFieldError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s: field %s bound more than once", e.Definition, e.Field)
	}
	return fmt.Sprintf("%s: unknown field %s", e.Definition, e.Field)
}

// NoSuchFieldError reports a named read of a field the definition does not
// declare. The instance is unaffected.
type NoSuchFieldError struct {
	Definition string
	Field      string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("%s has no field %s", e.Definition, e.Field)
}

// IndexError reports a positional read outside [0, len(fields)).
type IndexError struct {
	Definition string
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Definition, e.Index, e.Len)
}

// ImmutableFieldError reports a mutation attempt on a constructed instance.
// Instances are permanently read-only; this error is unconditional and no
// state changes when it is returned.
type ImmutableFieldError struct {
	Definition string
	Field      string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s.%s: record fields are immutable", e.Definition, e.Field)
}
