package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fieldlock/fieldlock/internal/record"
	"github.com/fieldlock/fieldlock/internal/schema"
)

// FieldValue is one rendered name→value entry, value in canonical JSON.
type FieldValue struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// RecordOutput is the JSON payload for a constructed or stored record.
type RecordOutput struct {
	Name           string       `json:"name"`
	ID             string       `json:"id,omitempty"`
	DefinitionHash string       `json:"definition_hash,omitempty"`
	Fields         []FieldValue `json:"fields"`
	BatchToken     string       `json:"batch_token,omitempty"`
	CreatedAt      string       `json:"created_at,omitempty"`
}

func recordOutput(in *record.Instance) (*RecordOutput, error) {
	out := &RecordOutput{Name: in.Definition().Name()}
	for _, p := range in.Pairs() {
		data, err := record.MarshalCanonical(p.Value)
		if err != nil {
			return nil, fmt.Errorf("rendering field %q: %w", p.Name, err)
		}
		out.Fields = append(out.Fields, FieldValue{Name: p.Name, Value: data})
	}
	return out, nil
}

// printRecord renders a record for text output: the Name(field=value, ...)
// form plus any identity lines.
func printRecord(w io.Writer, in *record.Instance, out *RecordOutput) {
	fmt.Fprintln(w, in.String())
	if out.ID != "" {
		fmt.Fprintf(w, "  id: %s\n", out.ID)
	}
	if out.DefinitionHash != "" {
		fmt.Fprintf(w, "  definition: %s\n", out.DefinitionHash)
	}
	if out.BatchToken != "" {
		fmt.Fprintf(w, "  batch: %s\n", out.BatchToken)
	}
}

// constructionCode maps a construction failure to its error code.
func constructionCode(err error) string {
	var arityErr *record.ArityError
	var unknownErr *record.UnknownFieldError
	var valueErr *record.ValueError
	var schemaErr *record.SchemaError
	switch {
	case errors.As(err, &arityErr):
		return ErrCodeArity
	case errors.As(err, &unknownErr):
		return ErrCodeUnknownField
	case errors.As(err, &valueErr), errors.As(err, &schemaErr):
		return ErrCodeBadValue
	}
	return ErrCodeGeneric
}

// buildInstance constructs an instance of the given spec from command-line
// inputs: positional arguments bind fields in declaration order, --set
// assignments and a values file bind by name. --set wins over the file on
// collision. String-typed fields take their raw text; other fields parse
// through the scalar grammar.
func buildInstance(spec *schema.RecordSpec, positionalArgs, setArgs []string, valuesFile string) (*record.Instance, error) {
	def, err := spec.Definition()
	if err != nil {
		return nil, err
	}

	positional := make([]record.Value, len(positionalArgs))
	for i, arg := range positionalArgs {
		positional[i] = parseForField(def, i, arg)
	}

	var named map[string]record.Value
	if valuesFile != "" {
		named, err = LoadValuesFile(valuesFile)
		if err != nil {
			return nil, err
		}
	}
	for _, arg := range setArgs {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		if named == nil {
			named = make(map[string]record.Value)
		}
		if i, ok := def.Index(name); ok {
			named[name] = parseForField(def, i, raw)
		} else {
			// Unknown names still reach the constructor so the error
			// carries the right kind.
			named[name] = ParseScalar(raw)
		}
	}

	return def.New(positional, named)
}

// parseForField parses raw text against the declared type of field i.
// String fields take the text verbatim; out-of-range positions fall back to
// the scalar grammar and fail later with an ArityError.
func parseForField(def *record.Definition, i int, raw string) record.Value {
	if i < 0 || i >= def.NumFields() {
		return ParseScalar(raw)
	}
	f, err := def.Field(i)
	if err != nil || f.Type != record.TypeString {
		return ParseScalar(raw)
	}
	return record.String(raw)
}
