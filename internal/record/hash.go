package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainDefinition = "fieldlock/definition/v1"
	DomainRecord     = "fieldlock/record/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefinitionHash computes the content address of a Definition: a hash over
// its canonical JSON form (type name plus the ordered field list with types
// and defaults). Stable across processes and restarts.
func DefinitionHash(d *Definition) (string, error) {
	canonical, err := MarshalCanonical(definitionObject(d))
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// definitionObject builds the canonical value form of a definition.
// Field order is preserved by encoding fields as a list.
func definitionObject(d *Definition) Object {
	fields := make(List, len(d.fields))
	for i, f := range d.fields {
		obj := Object{
			"name": String(f.Name),
			"type": String(f.Type.String()),
		}
		if f.Default != nil {
			obj["default"] = f.Default
		}
		fields[i] = obj
	}
	return Object{
		"name":   String(d.name),
		"fields": fields,
	}
}

// InstanceID computes the content address of an Instance: a hash over the
// definition's content address and the instance's values in field order.
// Equal instances of the same definition always produce the same ID.
func InstanceID(in *Instance) (string, error) {
	defHash, err := DefinitionHash(in.def)
	if err != nil {
		return "", fmt.Errorf("InstanceID: %w", err)
	}

	canonical, err := MarshalCanonical(Object{
		"definition": String(defHash),
		"values":     List(in.values),
	})
	if err != nil {
		return "", fmt.Errorf("InstanceID: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

// MustDefinitionHash is like DefinitionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefinitionHash(d *Definition) string {
	h, err := DefinitionHash(d)
	if err != nil {
		panic(err)
	}
	return h
}

// MustInstanceID is like InstanceID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustInstanceID(in *Instance) string {
	id, err := InstanceID(in)
	if err != nil {
		panic(err)
	}
	return id
}
