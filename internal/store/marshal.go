package store

import (
	"fmt"

	"github.com/fieldlock/fieldlock/internal/record"
	"github.com/fieldlock/fieldlock/internal/schema"
)

// marshalValues converts an instance to canonical JSON TEXT for storage:
// a JSON object of field name to value. Field order is recoverable from the
// definition, so the canonical key ordering loses nothing.
func marshalValues(in *record.Instance) (string, error) {
	obj := make(record.Object, in.Len())
	for _, p := range in.Pairs() {
		obj[p.Name] = p.Value
	}
	data, err := record.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal values: %w", err)
	}
	return string(data), nil
}

// unmarshalValues rebuilds an instance from stored canonical JSON.
// Values decode through record.UnmarshalObject, which routes integers
// through json.Number so values beyond 2^53 survive.
func unmarshalValues(def *record.Definition, data string) (*record.Instance, error) {
	obj, err := record.UnmarshalObject([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	in, err := def.FromMap(obj)
	if err != nil {
		return nil, fmt.Errorf("rebuild instance: %w", err)
	}
	return in, nil
}

// marshalDefinition converts a definition to canonical JSON TEXT.
func marshalDefinition(def *record.Definition) (string, error) {
	spec := schema.SpecFromDefinition(def)
	data, err := spec.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal definition: %w", err)
	}
	return string(data), nil
}

// unmarshalDefinition rebuilds a definition from stored canonical JSON.
func unmarshalDefinition(data string) (*record.Definition, error) {
	spec, err := schema.ParseSpec([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal definition: %w", err)
	}
	def, err := spec.Definition()
	if err != nil {
		return nil, fmt.Errorf("rebuild definition: %w", err)
	}
	return def, nil
}
