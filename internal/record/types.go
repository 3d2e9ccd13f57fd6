package record

import "fmt"

// Type identifies the semantic type of a field.
type Type int

const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeBool
	TypeList
	TypeObject
)

var typeNames = map[Type]string{
	TypeString: "string",
	TypeInt:    "int",
	TypeBool:   "bool",
	TypeList:   "list",
	TypeObject: "object",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType converts a type name to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeInvalid, &ValueError{Message: fmt.Sprintf("unknown field type %q", s)}
}

// TypeOf returns the Type of a value.
func TypeOf(v Value) Type {
	switch v.(type) {
	case String:
		return TypeString
	case Int:
		return TypeInt
	case Bool:
		return TypeBool
	case List:
		return TypeList
	case Object:
		return TypeObject
	default:
		return TypeInvalid
	}
}

// Matches reports whether v conforms to the type.
func (t Type) Matches(v Value) bool {
	return v != nil && TypeOf(v) == t
}
