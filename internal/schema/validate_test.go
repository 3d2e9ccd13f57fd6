package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlock/fieldlock/internal/record"
)

func TestValidateClean(t *testing.T) {
	spec := compilePoint(t)
	assert.Empty(t, Validate(spec))
}

func TestValidateDuplicateField(t *testing.T) {
	spec := &RecordSpec{
		Name: "Bad",
		Fields: []FieldSpec{
			{Name: "x", Type: "int"},
			{Name: "x", Type: "string"},
		},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateField, errs[0].Code)
	assert.Contains(t, errs[0].Message, "duplicate")
}

func TestValidateFieldOrder(t *testing.T) {
	spec := &RecordSpec{
		Name: "Bad",
		Fields: []FieldSpec{
			{Name: "a", Type: "int", Default: record.Int(1)},
			{Name: "b", Type: "int"},
		},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrFieldOrder, errs[0].Code)
}

func TestValidateNoFields(t *testing.T) {
	spec := &RecordSpec{Name: "Empty"}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNoFields, errs[0].Code)
}

func TestValidateInvalidType(t *testing.T) {
	spec := &RecordSpec{
		Name:   "Bad",
		Fields: []FieldSpec{{Name: "ratio", Type: "float"}},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrInvalidType, errs[0].Code)
}

func TestValidateBadIdentifier(t *testing.T) {
	spec := &RecordSpec{
		Name:   "1Bad",
		Fields: []FieldSpec{{Name: "x y", Type: "int"}},
	}

	errs := Validate(spec)
	require.Len(t, errs, 2)
	assert.Equal(t, ErrBadIdentifier, errs[0].Code)
	assert.Equal(t, ErrBadIdentifier, errs[1].Code)
}

func TestValidateBadDefault(t *testing.T) {
	spec := &RecordSpec{
		Name: "Bad",
		Fields: []FieldSpec{
			{Name: "x", Type: "int", Default: record.String("0")},
		},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrBadDefault, errs[0].Code)
}

func TestValidateCollectsAll(t *testing.T) {
	spec := &RecordSpec{
		Name: "Bad",
		Fields: []FieldSpec{
			{Name: "a", Type: "int", Default: record.Int(1)},
			{Name: "a", Type: "float"},
		},
	}

	errs := Validate(spec)
	// Duplicate name and invalid type both reported.
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Contains(t, codes, ErrDuplicateField)
	assert.Contains(t, codes, ErrInvalidType)
}
