// Package record implements immutable named-field records.
//
// A Definition describes an ordered list of named, typed fields, some of
// which may carry defaults. An Instance is a concrete value conforming to a
// Definition: constructed once, readable by name or position, and never
// mutable afterwards. Equality between instances is structural.
//
// Field values are drawn from a small sealed algebra (Value) that serializes
// to canonical JSON, so definitions and instances have stable content
// addresses.
package record
