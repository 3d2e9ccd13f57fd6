package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fieldlock/fieldlock/internal/record"
)

// ParseScalar interprets a command-line string as a record value: an
// integer if it parses as one, a bool for the literals true/false,
// otherwise a string.
func ParseScalar(s string) record.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return record.Int(n)
	}
	switch s {
	case "true":
		return record.Bool(true)
	case "false":
		return record.Bool(false)
	}
	return record.String(s)
}

// ParseAssignment splits a --set argument of the form name=value.
func ParseAssignment(arg string) (string, record.Value, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("expected name=value, got %q", arg)
	}
	return name, ParseScalar(raw), nil
}

// LoadValuesFile reads a YAML (or JSON) mapping of field name to value.
// Floats and nulls in the document are rejected, matching the value algebra.
func LoadValuesFile(path string) (map[string]record.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing values file: %w", err)
	}

	values := make(map[string]record.Value, len(raw))
	for name, v := range raw {
		conv, err := record.FromGo(v)
		if err != nil {
			return nil, fmt.Errorf("values file field %q: %w", name, err)
		}
		values[name] = conv
	}
	return values, nil
}
