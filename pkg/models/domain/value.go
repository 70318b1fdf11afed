package domain

import (
	"fmt"
	"math"
	"strconv"
)

type ValueKind int

const (
	KindBare ValueKind = iota
	KindReference
)

// Value is a single field of an ERP record. Relational fields arrive as an
// (id, display name) pair and become a Reference; everything else is Bare.
type Value struct {
	kind ValueKind
	raw  interface{}
	id   int64
	name string
}

func Bare(v interface{}) Value {
	return Value{kind: KindBare, raw: v}
}

func Reference(id int64, name string) Value {
	return Value{kind: KindReference, id: id, name: name}
}

// ParseValue classifies a value decoded from the wire. A list of at least two
// elements whose head is an integer id is a Reference.
func ParseValue(raw interface{}) Value {
	if list, ok := raw.([]interface{}); ok && len(list) >= 2 {
		if id, ok := toInt64(list[0]); ok {
			return Reference(id, scalarString(list[1]))
		}
	}
	return Bare(raw)
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Raw() interface{} {
	if v.kind == KindReference {
		return []interface{}{v.id, v.name}
	}
	return v.raw
}

// Display returns the human-readable form of the value: the display name of a
// Reference, "" for falsy values and short lists, the scalar's text otherwise.
func (v Value) Display() string {
	if v.kind == KindReference {
		return v.name
	}
	if v.IsZero() {
		return ""
	}
	if list, ok := v.raw.([]interface{}); ok {
		if len(list) < 2 {
			return ""
		}
		return scalarString(list[1])
	}
	return scalarString(v.raw)
}

func (v Value) String() string {
	return v.Display()
}

// Float returns the numeric value, or 0 for anything missing, falsy or non-numeric.
func (v Value) Float() float64 {
	if v.kind == KindReference {
		return 0
	}
	switch n := v.raw.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	default:
		return 0
	}
}

// Int returns a bare integer value, such as a record id.
func (v Value) Int() (int64, bool) {
	if v.kind == KindReference {
		return 0, false
	}
	return toInt64(v.raw)
}

// RefID returns the id of a Reference.
func (v Value) RefID() (int64, bool) {
	if v.kind != KindReference {
		return 0, false
	}
	return v.id, true
}

// IsZero reports whether the value is falsy: missing, false, zero, empty
// string or empty collection. References are never falsy.
func (v Value) IsZero() bool {
	if v.kind == KindReference {
		return false
	}
	switch t := v.raw.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int64:
		return t == 0
	case int:
		return t == 0
	case int32:
		return t == 0
	default:
		return false
	}
}

func toInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}

func scalarString(raw interface{}) string {
	switch t := raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
