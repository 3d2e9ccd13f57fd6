package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface over the field value algebra.
// Only String, Int, Bool, List, and Object implement it.
// Floats and nulls are deliberately absent: every value must have an exact
// canonical JSON form so content addresses stay stable.
type Value interface {
	isValue() // sealed
}

// String is a string field value.
type String string

func (String) isValue() {}

// Int is an integer field value. Always int64.
type Int int64

func (Int) isValue() {}

// Bool is a boolean field value.
type Bool bool

func (Bool) isValue() {}

// List is an ordered sequence of values.
type List []Value

func (List) isValue() {}

// Object is a map of string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) isValue() {}

// MarshalJSON implements json.Marshaler for String.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// MarshalJSON implements json.Marshaler for Int.
func (n Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(n))
}

// MarshalJSON implements json.Marshaler for Bool.
func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// SortedKeys returns the object's keys ordered by UTF-16 code units, the
// ordering RFC 8785 canonical JSON requires. Go's sort.Strings compares
// UTF-8 bytes, which produces a different order for some inputs.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// compareKeysUTF16 compares strings by UTF-16 code units per RFC 8785.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

// Equal reports whether two values are structurally equal.
// Lists compare element-wise in order; objects compare key-wise.
// Values of different kinds are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Copy returns a deep copy of v. Scalars are returned as-is; lists and
// objects get fresh containers all the way down, so the copy shares no
// mutable state with the original.
func Copy(v Value) Value {
	switch val := v.(type) {
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = Copy(elem)
		}
		return out
	case Object:
		out := make(Object, len(val))
		for k, elem := range val {
			out[k] = Copy(elem)
		}
		return out
	default:
		return v
	}
}

// FromGo converts a plain Go value to a Value.
// Accepted inputs: string, bool, int/int64, json.Number holding an integer,
// []any, map[string]any, and Value itself. Floats and nil are rejected with
// a ValueError.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, &ValueError{Message: "null is not a record value"}
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case json.Number:
		s := string(val)
		if strings.ContainsAny(s, ".eE") {
			return nil, &ValueError{Message: fmt.Sprintf("float values are not supported: %s", s)}
		}
		n, err := val.Int64()
		if err != nil {
			return nil, &ValueError{Message: fmt.Sprintf("number out of int64 range: %s", s)}
		}
		return Int(n), nil
	case float32, float64:
		return nil, &ValueError{Message: fmt.Sprintf("float values are not supported: %v", val)}
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	default:
		return nil, &ValueError{Message: fmt.Sprintf("unsupported value type %T", v)}
	}
}

// UnmarshalValue parses JSON into a Value.
// Integers are decoded through json.Number so values beyond 2^53 survive;
// floats and nulls are rejected.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromGo(raw)
}

// UnmarshalObject parses a JSON object into an Object.
func UnmarshalObject(data []byte) (Object, error) {
	v, err := UnmarshalValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, &ValueError{Message: fmt.Sprintf("expected JSON object, got %T", v)}
	}
	return obj, nil
}
