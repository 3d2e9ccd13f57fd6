package record

import (
	"fmt"
	"iter"
	"strings"
)

// Pair is one name→value entry of an instance, in declaration order.
type Pair struct {
	Name  string
	Value Value
}

// Instance is an immutable value conforming to a Definition.
// The backing array is private and never handed out; every accessor returns
// copies, so an Instance is safe to share across any number of readers.
type Instance struct {
	def    *Definition
	values []Value
}

// New constructs an Instance from positional and named values. Either slice
// or map may be nil. Positional values bind fields in declaration order;
// named values bind by field name; fields left unbound take their declared
// default.
//
// Fails with ArityError when a required field is missing or too many
// positional values are given, UnknownFieldError when a named value matches
// no field or re-binds a positionally bound one, and ValueError when a value
// does not conform to its field's type. On any failure no instance exists;
// there is no observable partially constructed state.
func (d *Definition) New(positional []Value, named map[string]Value) (*Instance, error) {
	arity := len(d.fields)
	if len(positional) > arity {
		return nil, &ArityError{Definition: d.name, Given: len(positional), Arity: arity}
	}

	values := make([]Value, arity)
	bound := make([]bool, arity)

	for i, v := range positional {
		if err := d.checkValue(i, v); err != nil {
			return nil, err
		}
		values[i] = Copy(v)
		bound[i] = true
	}

	// Deterministic error selection: walk fields in declaration order rather
	// than ranging over the map.
	for _, f := range d.fields {
		v, ok := named[f.Name]
		if !ok {
			continue
		}
		i := d.index[f.Name]
		if bound[i] {
			return nil, &UnknownFieldError{Definition: d.name, Field: f.Name, Duplicate: true}
		}
		if err := d.checkValue(i, v); err != nil {
			return nil, err
		}
		values[i] = Copy(v)
		bound[i] = true
	}
	if len(named) > 0 {
		for name := range named {
			if _, ok := d.index[name]; !ok {
				return nil, &UnknownFieldError{Definition: d.name, Field: name}
			}
		}
	}

	var missing []string
	for i, f := range d.fields {
		if bound[i] {
			continue
		}
		if f.Default != nil {
			values[i] = Copy(f.Default)
			continue
		}
		missing = append(missing, f.Name)
	}
	if len(missing) > 0 {
		return nil, &ArityError{Definition: d.name, Missing: missing, Arity: arity}
	}

	return &Instance{def: d, values: values}, nil
}

// FromValues constructs an Instance from a plain value sequence in
// declaration order. Trailing defaulted fields may be omitted.
func (d *Definition) FromValues(values []Value) (*Instance, error) {
	return d.New(values, nil)
}

// FromMap constructs an Instance from a name→value mapping.
func (d *Definition) FromMap(values map[string]Value) (*Instance, error) {
	return d.New(nil, values)
}

// FromPairs constructs an Instance from ordered name→value pairs, the shape
// Pairs produces. Together they round-trip: FromPairs(in.Pairs()) is equal
// to in.
func (d *Definition) FromPairs(pairs []Pair) (*Instance, error) {
	named := make(map[string]Value, len(pairs))
	for _, p := range pairs {
		if _, dup := named[p.Name]; dup {
			return nil, &UnknownFieldError{Definition: d.name, Field: p.Name, Duplicate: true}
		}
		named[p.Name] = p.Value
	}
	return d.New(nil, named)
}

func (d *Definition) checkValue(i int, v Value) error {
	f := d.fields[i]
	if v == nil {
		return &ValueError{Field: f.Name, Message: "value must not be nil"}
	}
	if !f.Type.Matches(v) {
		return &ValueError{Field: f.Name,
			Message: fmt.Sprintf("expected %s, got %s", f.Type, TypeOf(v))}
	}
	return nil
}

// Definition returns the schema this instance conforms to.
func (in *Instance) Definition() *Definition { return in.def }

// Len returns the number of fields.
func (in *Instance) Len() int { return len(in.values) }

// Get returns the value bound to the named field.
// Fails with NoSuchFieldError if the definition does not declare the name.
func (in *Instance) Get(name string) (Value, error) {
	i, ok := in.def.index[name]
	if !ok {
		return nil, &NoSuchFieldError{Definition: in.def.name, Field: name}
	}
	return Copy(in.values[i]), nil
}

// At returns the value at a 0-based position.
// Fails with IndexError outside [0, Len()).
func (in *Instance) At(i int) (Value, error) {
	if i < 0 || i >= len(in.values) {
		return nil, &IndexError{Definition: in.def.name, Index: i, Len: len(in.values)}
	}
	return Copy(in.values[i]), nil
}

// Set rejects any post-construction assignment. A declared field yields an
// ImmutableFieldError, an undeclared one a NoSuchFieldError; in both cases
// the instance is untouched.
func (in *Instance) Set(name string, _ Value) error {
	if _, ok := in.def.index[name]; !ok {
		return &NoSuchFieldError{Definition: in.def.name, Field: name}
	}
	return &ImmutableFieldError{Definition: in.def.name, Field: name}
}

// Values iterates field values in declaration order. The sequence is
// restartable: each range over it starts from the first field.
func (in *Instance) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range in.values {
			if !yield(Copy(v)) {
				return
			}
		}
	}
}

// Pairs returns ordered name→value pairs. The slice and the values in it are
// independent copies; mutating them cannot reach the instance.
func (in *Instance) Pairs() []Pair {
	pairs := make([]Pair, len(in.values))
	for i, f := range in.def.fields {
		pairs[i] = Pair{Name: f.Name, Value: Copy(in.values[i])}
	}
	return pairs
}

// ToMap returns a fresh name→value map, safe for the caller to mutate.
func (in *Instance) ToMap() map[string]Value {
	m := make(map[string]Value, len(in.values))
	for i, f := range in.def.fields {
		m[f.Name] = Copy(in.values[i])
	}
	return m
}

// ToList returns the field values only, in declaration order.
func (in *Instance) ToList() []Value {
	out := make([]Value, len(in.values))
	for i, v := range in.values {
		out[i] = Copy(v)
	}
	return out
}

// Replace returns a new Instance with the named fields rebound and all other
// values carried over. The receiver is unchanged. Fails with
// UnknownFieldError for an undeclared name and ValueError for a
// non-conforming value.
func (in *Instance) Replace(named map[string]Value) (*Instance, error) {
	values := make([]Value, len(in.values))
	copy(values, in.values)

	for _, f := range in.def.fields {
		v, ok := named[f.Name]
		if !ok {
			continue
		}
		i := in.def.index[f.Name]
		if err := in.def.checkValue(i, v); err != nil {
			return nil, err
		}
		values[i] = Copy(v)
	}
	for name := range named {
		if _, ok := in.def.index[name]; !ok {
			return nil, &UnknownFieldError{Definition: in.def.name, Field: name}
		}
	}

	return &Instance{def: in.def, values: values}, nil
}

// Equal reports structural equality: the definitions must be Equivalent and
// every field value must compare equal pairwise. Instances of
// differently-shaped definitions are never equal.
func (in *Instance) Equal(other *Instance) bool {
	if in == other {
		return true
	}
	if other == nil || !in.def.Equivalent(other.def) {
		return false
	}
	for i := range in.values {
		if !Equal(in.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// String renders the instance as Name(field=value, ...).
func (in *Instance) String() string {
	var b strings.Builder
	b.WriteString(in.def.name)
	b.WriteByte('(')
	for i, f := range in.def.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", f.Name, formatValue(in.values[i]))
	}
	b.WriteByte(')')
	return b.String()
}

// formatValue renders a value for display. Canonical JSON is close enough
// for every kind and keeps output deterministic.
func formatValue(v Value) string {
	data, err := MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}
