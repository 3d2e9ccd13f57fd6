package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPositional(t *testing.T) {
	d := pointDef(t)

	in, err := d.New([]Value{Int(10), Int(20)}, nil)
	require.NoError(t, err)

	x, err := in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(10), x)

	y, err := in.Get("y")
	require.NoError(t, err)
	assert.Equal(t, Int(20), y)

	// Omitted defaulted field takes its declared default.
	z, err := in.Get("z")
	require.NoError(t, err)
	assert.Equal(t, Int(0), z)
}

func TestNewNamed(t *testing.T) {
	d := pointDef(t)

	in, err := d.FromMap(map[string]Value{"x": Int(1), "y": Int(2), "z": Int(3)})
	require.NoError(t, err)

	assert.Equal(t, "Point(x=1, y=2, z=3)", in.String())
}

func TestNewMixed(t *testing.T) {
	d := pointDef(t)

	in, err := d.New([]Value{Int(1)}, map[string]Value{"y": Int(2)})
	require.NoError(t, err)

	v, err := in.At(0)
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)

	v, err = in.At(1)
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)
}

func TestNewMissingRequired(t *testing.T) {
	d := pointDef(t)

	_, err := d.New(nil, nil)
	require.Error(t, err)

	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, []string{"x", "y"}, arityErr.Missing)
}

func TestNewTooManyPositional(t *testing.T) {
	d := pointDef(t)

	_, err := d.FromValues([]Value{Int(1), Int(2), Int(3), Int(4)})
	require.Error(t, err)

	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, 4, arityErr.Given)
	assert.Equal(t, 3, arityErr.Arity)
}

func TestNewUnknownNamedField(t *testing.T) {
	d := pointDef(t)

	_, err := d.New([]Value{Int(1), Int(2)}, map[string]Value{"w": Int(3)})
	require.Error(t, err)

	var unknownErr *UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "w", unknownErr.Field)
	assert.False(t, unknownErr.Duplicate)
}

func TestNewDuplicateBinding(t *testing.T) {
	d := pointDef(t)

	_, err := d.New([]Value{Int(1)}, map[string]Value{"x": Int(5), "y": Int(2)})
	require.Error(t, err)

	var unknownErr *UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "x", unknownErr.Field)
	assert.True(t, unknownErr.Duplicate)
}

func TestNewTypeMismatch(t *testing.T) {
	d := pointDef(t)

	_, err := d.FromValues([]Value{String("ten"), Int(20)})
	require.Error(t, err)

	var valErr *ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "x", valErr.Field)
}

func TestGetUnknownField(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	_, err = in.Get("w")
	var noField *NoSuchFieldError
	require.ErrorAs(t, err, &noField)
	assert.Equal(t, "w", noField.Field)
}

func TestAtOutOfRange(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	v, err := in.At(0)
	require.NoError(t, err)
	assert.Equal(t, Int(10), v)

	var idxErr *IndexError
	_, err = in.At(3)
	require.ErrorAs(t, err, &idxErr)
	_, err = in.At(-1)
	require.ErrorAs(t, err, &idxErr)
}

func TestReadsAreIdempotent(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	first, err := in.Get("x")
	require.NoError(t, err)
	second, err := in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSetAlwaysFails(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	err = in.Set("x", Int(15))
	var immErr *ImmutableFieldError
	require.ErrorAs(t, err, &immErr)
	assert.Equal(t, "x", immErr.Field)

	// Prior reads are unchanged after the failed mutation.
	x, err := in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(10), x)
}

func TestSetUnknownField(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	var noField *NoSuchFieldError
	require.ErrorAs(t, in.Set("w", Int(1)), &noField)
}

func TestValuesIterationRestartable(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	collect := func() []Value {
		var out []Value
		for v := range in.Values() {
			out = append(out, v)
		}
		return out
	}

	assert.Equal(t, []Value{Int(10), Int(20), Int(0)}, collect())
	// A second range starts over from the first field.
	assert.Equal(t, []Value{Int(10), Int(20), Int(0)}, collect())
}

func TestValuesIterationEarlyStop(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	var first Value
	for v := range in.Values() {
		first = v
		break
	}
	assert.Equal(t, Int(10), first)
}

func TestPairsOrderAndIsolation(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	pairs := in.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, Pair{Name: "x", Value: Int(10)}, pairs[0])
	assert.Equal(t, Pair{Name: "y", Value: Int(20)}, pairs[1])
	assert.Equal(t, Pair{Name: "z", Value: Int(0)}, pairs[2])

	pairs[0].Value = Int(99)
	x, err := in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(10), x)
}

func TestToMapIsolation(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	m := in.ToMap()
	assert.Equal(t, Int(10), m["x"])

	m["x"] = Int(99)
	delete(m, "y")

	x, err := in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(10), x)
	_, err = in.Get("y")
	require.NoError(t, err)
}

func TestToList(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	assert.Equal(t, []Value{Int(10), Int(20), Int(0)}, in.ToList())
}

func TestNestedValueIsolation(t *testing.T) {
	d := MustDefinition("Bag", []Field{{Name: "items", Type: TypeList}})

	supplied := List{Int(1), Int(2)}
	in, err := d.FromValues([]Value{supplied})
	require.NoError(t, err)

	// Mutating the caller's slice after construction must not reach the
	// instance, and mutating a read result must not either.
	supplied[0] = Int(99)
	got, err := in.Get("items")
	require.NoError(t, err)
	assert.Equal(t, List{Int(1), Int(2)}, got)

	got.(List)[1] = Int(99)
	again, err := in.Get("items")
	require.NoError(t, err)
	assert.Equal(t, List{Int(1), Int(2)}, again)
}

func TestRoundTripThroughPairs(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	back, err := d.FromPairs(in.Pairs())
	require.NoError(t, err)
	assert.True(t, in.Equal(back))
}

func TestRoundTripThroughMap(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(7), Int(8)})
	require.NoError(t, err)

	back, err := d.FromMap(in.ToMap())
	require.NoError(t, err)
	assert.True(t, in.Equal(back))
}

func TestReplace(t *testing.T) {
	d := pointDef(t)
	in, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	moved, err := in.Replace(map[string]Value{"x": Int(15)})
	require.NoError(t, err)

	x, err := moved.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(15), x)

	// Original unchanged.
	x, err = in.Get("x")
	require.NoError(t, err)
	assert.Equal(t, Int(10), x)

	_, err = in.Replace(map[string]Value{"w": Int(1)})
	var unknownErr *UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
}

func TestEqualityProperties(t *testing.T) {
	d := pointDef(t)

	a, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)
	b, err := d.FromMap(map[string]Value{"x": Int(10), "y": Int(20), "z": Int(0)})
	require.NoError(t, err)
	c, err := d.FromValues([]Value{Int(10), Int(20), Int(0)})
	require.NoError(t, err)

	// Reflexive, symmetric, transitive.
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.True(t, b.Equal(c))
	assert.True(t, a.Equal(c))

	diff, err := d.FromValues([]Value{Int(10), Int(21)})
	require.NoError(t, err)
	assert.False(t, a.Equal(diff))
	assert.False(t, a.Equal(nil))
}

func TestEqualityAcrossShapes(t *testing.T) {
	point := pointDef(t)
	pixel := MustDefinition("Pixel", []Field{
		{Name: "x", Type: TypeInt},
		{Name: "y", Type: TypeInt},
		{Name: "alpha", Type: TypeInt, Default: Int(0)},
	})

	a, err := point.FromValues([]Value{Int(1), Int(2)})
	require.NoError(t, err)
	b, err := pixel.FromValues([]Value{Int(1), Int(2)})
	require.NoError(t, err)

	// Identical values, differing shape: never equal.
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))
}

func TestPointExample(t *testing.T) {
	// The full worked example: Point = {x: int, y: int, z: int = 0}.
	d := pointDef(t)

	p, err := d.FromValues([]Value{Int(10), Int(20)})
	require.NoError(t, err)

	v, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, Int(10), v)

	named, err := d.FromMap(map[string]Value{"x": Int(10), "y": Int(20), "z": Int(0)})
	require.NoError(t, err)
	assert.True(t, p.Equal(named))

	var immErr *ImmutableFieldError
	require.ErrorAs(t, p.Set("x", Int(15)), &immErr)

	_, err = d.New(nil, nil)
	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)

	_, err = d.New([]Value{Int(1), Int(2)}, map[string]Value{"w": Int(3)})
	var unknownErr *UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
}
