// value.go — the closed runtime value model.
//
// cahlang values form a small tagged union: none, booleans, numbers
// (float64) and strings. Values are copied freely and never shared
// mutably; equality is structural and never crosses tags.
package cahlang

import "strconv"

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNone ValueTag = iota // none (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
)

// Value is the universal runtime carrier. Tag determines which Go type
// Data holds (see ValueTag). The zero Value is none.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// None is the singleton none Value.
var None = Value{Tag: VTNone}

func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// String renders the canonical textual form used by print and by string
// concatenation: strings verbatim, numbers via default float formatting,
// booleans as "true"/"false", none as "none".
func (v Value) String() string {
	switch v.Tag {
	case VTNone:
		return "none"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	default:
		return "<unknown>"
	}
}

// Truthy maps any value to a condition: none is false, booleans are
// themselves, everything else is true.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTNone:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// Equal is structural equality. Values of differing tags are never equal;
// none equals none.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNone:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return false
	}
}
