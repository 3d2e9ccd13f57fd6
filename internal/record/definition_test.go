package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointDef is the running example: x and y required, z defaulted to 0.
func pointDef(t *testing.T) *Definition {
	t.Helper()
	d, err := NewDefinition("Point", []Field{
		{Name: "x", Type: TypeInt},
		{Name: "y", Type: TypeInt},
		{Name: "z", Type: TypeInt, Default: Int(0)},
	})
	require.NoError(t, err)
	return d
}

func TestNewDefinition(t *testing.T) {
	d := pointDef(t)

	assert.Equal(t, "Point", d.Name())
	assert.Equal(t, 3, d.NumFields())
	assert.Equal(t, []string{"x", "y", "z"}, d.FieldNames())

	i, ok := d.Index("y")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = d.Index("w")
	assert.False(t, ok)
}

func TestNewDefinitionDuplicateField(t *testing.T) {
	_, err := NewDefinition("Bad", []Field{
		{Name: "x", Type: TypeInt},
		{Name: "x", Type: TypeString},
	})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "x", schemaErr.Field)
	assert.Contains(t, schemaErr.Message, "duplicate")
}

func TestNewDefinitionRequiredAfterDefault(t *testing.T) {
	_, err := NewDefinition("Bad", []Field{
		{Name: "a", Type: TypeInt, Default: Int(1)},
		{Name: "b", Type: TypeInt},
	})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "b", schemaErr.Field)
}

func TestNewDefinitionEmptyFields(t *testing.T) {
	_, err := NewDefinition("Empty", nil)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestNewDefinitionBadIdentifiers(t *testing.T) {
	_, err := NewDefinition("1Point", []Field{{Name: "x", Type: TypeInt}})
	require.Error(t, err)

	_, err = NewDefinition("Point", []Field{{Name: "x y", Type: TypeInt}})
	require.Error(t, err)
}

func TestNewDefinitionDefaultTypeMismatch(t *testing.T) {
	_, err := NewDefinition("Bad", []Field{
		{Name: "x", Type: TypeInt, Default: String("0")},
	})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Message, "default")
}

func TestDefinitionFieldsIsolation(t *testing.T) {
	d := pointDef(t)

	fields := d.Fields()
	fields[0].Name = "mutated"
	fields[2].Default = Int(99)

	assert.Equal(t, []string{"x", "y", "z"}, d.FieldNames())
	f, err := d.Field(2)
	require.NoError(t, err)
	assert.Equal(t, Int(0), f.Default)
}

func TestDefinitionFieldOutOfRange(t *testing.T) {
	d := pointDef(t)

	_, err := d.Field(3)
	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 3, idxErr.Index)

	_, err = d.Field(-1)
	require.ErrorAs(t, err, &idxErr)
}

func TestDefinitionEquivalent(t *testing.T) {
	d1 := pointDef(t)
	d2 := pointDef(t)
	assert.True(t, d1.Equivalent(d2))

	// Same shape under a different type name still counts.
	renamed := MustDefinition("Coord", []Field{
		{Name: "x", Type: TypeInt},
		{Name: "y", Type: TypeInt},
		{Name: "z", Type: TypeInt, Default: Int(0)},
	})
	assert.True(t, d1.Equivalent(renamed))

	// Different order does not.
	reordered := MustDefinition("Point", []Field{
		{Name: "y", Type: TypeInt},
		{Name: "x", Type: TypeInt},
		{Name: "z", Type: TypeInt, Default: Int(0)},
	})
	assert.False(t, d1.Equivalent(reordered))

	// Neither does a different field type.
	retyped := MustDefinition("Point", []Field{
		{Name: "x", Type: TypeString},
		{Name: "y", Type: TypeInt},
		{Name: "z", Type: TypeInt, Default: Int(0)},
	})
	assert.False(t, d1.Equivalent(retyped))

	assert.False(t, d1.Equivalent(nil))
}
