package record

import "regexp"

// identRe matches valid type and field names.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field describes one named, typed slot of a Definition.
// A nil Default marks the field as required.
type Field struct {
	Name    string
	Type    Type
	Default Value
}

// Required reports whether the field must be supplied at construction.
func (f Field) Required() bool {
	return f.Default == nil
}

// Definition is an immutable schema: a type name plus an ordered field list.
// It is created once, validated up front, and shared by every Instance
// derived from it. Safe for unsynchronized concurrent use.
type Definition struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewDefinition builds a Definition from a type name and an ordered field
// list. It returns a SchemaError if the name or a field name is not a valid
// identifier, a field name repeats, the field list is empty, a field type is
// invalid, a required field follows a defaulted one, or a default does not
// conform to its field's type.
func NewDefinition(name string, fields []Field) (*Definition, error) {
	if !identRe.MatchString(name) {
		return nil, &SchemaError{Definition: name, Message: "type name must be an identifier"}
	}
	if len(fields) == 0 {
		return nil, &SchemaError{Definition: name, Message: "at least one field is required"}
	}

	index := make(map[string]int, len(fields))
	seenDefault := false
	for i, f := range fields {
		if !identRe.MatchString(f.Name) {
			return nil, &SchemaError{Definition: name, Field: f.Name, Message: "field name must be an identifier"}
		}
		if _, dup := index[f.Name]; dup {
			return nil, &SchemaError{Definition: name, Field: f.Name, Message: "duplicate field name"}
		}
		if _, ok := typeNames[f.Type]; !ok {
			return nil, &SchemaError{Definition: name, Field: f.Name, Message: "invalid field type"}
		}
		if f.Default != nil {
			if !f.Type.Matches(f.Default) {
				return nil, &SchemaError{Definition: name, Field: f.Name,
					Message: "default does not match field type " + f.Type.String()}
			}
			seenDefault = true
		} else if seenDefault {
			return nil, &SchemaError{Definition: name, Field: f.Name,
				Message: "required field follows a field with a default"}
		}
		index[f.Name] = i
	}

	// Copy the field slice and deep-copy defaults so later caller mutations
	// cannot reach the definition.
	own := make([]Field, len(fields))
	for i, f := range fields {
		own[i] = Field{Name: f.Name, Type: f.Type}
		if f.Default != nil {
			own[i].Default = Copy(f.Default)
		}
	}

	return &Definition{name: name, fields: own, index: index}, nil
}

// MustDefinition is like NewDefinition but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefinition(name string, fields []Field) *Definition {
	d, err := NewDefinition(name, fields)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the definition's type name.
func (d *Definition) Name() string { return d.name }

// NumFields returns the number of declared fields.
func (d *Definition) NumFields() int { return len(d.fields) }

// Fields returns a copy of the ordered field list.
func (d *Definition) Fields() []Field {
	out := make([]Field, len(d.fields))
	for i, f := range d.fields {
		out[i] = Field{Name: f.Name, Type: f.Type}
		if f.Default != nil {
			out[i].Default = Copy(f.Default)
		}
	}
	return out
}

// Field returns the field at position i.
// Returns an IndexError outside [0, NumFields()).
func (d *Definition) Field(i int) (Field, error) {
	if i < 0 || i >= len(d.fields) {
		return Field{}, &IndexError{Definition: d.name, Index: i, Len: len(d.fields)}
	}
	f := d.fields[i]
	if f.Default != nil {
		f.Default = Copy(f.Default)
	}
	return f, nil
}

// FieldNames returns the field names in declaration order.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named field.
func (d *Definition) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Equivalent reports whether two definitions have the same shape: the same
// field names, declared types, and order. The type name and defaults do not
// participate, so instance equality stays purely structural.
func (d *Definition) Equivalent(other *Definition) bool {
	if d == other {
		return true
	}
	if other == nil || len(d.fields) != len(other.fields) {
		return false
	}
	for i, f := range d.fields {
		if f.Name != other.fields[i].Name || f.Type != other.fields[i].Type {
			return false
		}
	}
	return true
}
