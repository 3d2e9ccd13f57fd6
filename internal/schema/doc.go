// Package schema compiles CUE record declarations into record Definitions.
//
// Records are declared as CUE structs under the "record" namespace:
//
//	record: Point: {
//		x: int
//		y: int
//		z: int | *0
//	}
//
// CUE defaults (the *expr disjunction branch) become field defaults. The
// compiler produces a RecordSpec, an intermediate form that serializes to
// canonical JSON; Validate re-checks a spec and reports coded errors.
package schema
