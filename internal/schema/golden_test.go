package schema

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden files pin the canonical JSON form of compiled records. Any change
// to canonical serialization changes content addresses, so a diff here means
// stored record IDs no longer match.
//
// To regenerate golden files, run:
//
//	go test ./internal/schema -update

func TestCanonicalJSONGoldenPoint(t *testing.T) {
	spec := compilePoint(t)

	data, err := spec.CanonicalJSON()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "point", data)
}

func TestCanonicalJSONGoldenProfile(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		record: Profile: {
			name:   string
			active: bool | *true
		}
	`)
	require.NoError(t, v.Err())

	spec, err := Compile(v.LookupPath(cue.ParsePath("record.Profile")))
	require.NoError(t, err)

	data, err := spec.CanonicalJSON()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "profile", data)
}
