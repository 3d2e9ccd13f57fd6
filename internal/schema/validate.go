package schema

import (
	"fmt"
	"regexp"

	"github.com/fieldlock/fieldlock/internal/record"
)

// Validation error codes (E100-E199)
const (
	ErrUnsupportedSpec = "E100" // value is not a RecordSpec
	ErrDuplicateField  = "E101" // field name repeats
	ErrFieldOrder      = "E102" // required field after a defaulted one
	ErrNoFields        = "E103" // empty field list
	ErrInvalidType     = "E104" // unknown type string
	ErrBadIdentifier   = "E105" // malformed record or field name
	ErrBadDefault      = "E106" // default does not match declared type
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled RecordSpec against the schema rules.
// Returns all errors found (does not fail fast).
func Validate(spec *RecordSpec) []ValidationError {
	var errs []ValidationError

	if !identRe.MatchString(spec.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("record name %q must be an identifier", spec.Name),
			Code:    ErrBadIdentifier,
		})
	}

	if len(spec.Fields) == 0 {
		errs = append(errs, ValidationError{
			Field:   "fields",
			Message: "at least one field is required",
			Code:    ErrNoFields,
		})
	}

	seen := make(map[string]bool)
	seenDefault := false
	for i, f := range spec.Fields {
		where := fmt.Sprintf("fields[%d]", i)

		if !identRe.MatchString(f.Name) {
			errs = append(errs, ValidationError{
				Field:   where + ".name",
				Message: fmt.Sprintf("field name %q must be an identifier", f.Name),
				Code:    ErrBadIdentifier,
			})
		}
		if seen[f.Name] {
			errs = append(errs, ValidationError{
				Field:   where + ".name",
				Message: fmt.Sprintf("duplicate field name: %q", f.Name),
				Code:    ErrDuplicateField,
			})
		}
		seen[f.Name] = true

		typ, err := record.ParseType(f.Type)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   where + ".type",
				Message: fmt.Sprintf("invalid field type %q", f.Type),
				Code:    ErrInvalidType,
			})
			continue
		}

		if f.Default != nil {
			seenDefault = true
			if !typ.Matches(f.Default) {
				errs = append(errs, ValidationError{
					Field: where + ".default",
					Message: fmt.Sprintf("default for %q does not match type %s",
						f.Name, f.Type),
					Code: ErrBadDefault,
				})
			}
		} else if seenDefault {
			errs = append(errs, ValidationError{
				Field: where,
				Message: fmt.Sprintf("required field %q follows a field with a default",
					f.Name),
				Code: ErrFieldOrder,
			})
		}
	}

	return errs
}
