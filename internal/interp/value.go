package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the dynamic type of a Value.
type Kind int

const (
	VInt Kind = iota
	VReal
	VBool
	VString
)

// Value is a dynamically-typed pseudocode runtime value, drawn from
// {integer, real, boolean, string} per spec §3.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
}

func IntVal(i int64) Value    { return Value{Kind: VInt, I: i} }
func RealVal(f float64) Value { return Value{Kind: VReal, F: f} }
func BoolVal(b bool) Value    { return Value{Kind: VBool, B: b} }
func StringVal(s string) Value { return Value{Kind: VString, S: s} }

// Float returns v coerced to float64 (valid for VInt and VReal).
func (v Value) Float() float64 {
	if v.Kind == VInt {
		return float64(v.I)
	}
	return v.F
}

// Truthy implements the dialect's truthiness for AND/OR/NOT and
// conditionals: zero/empty/false are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VInt:
		return v.I != 0
	case VReal:
		return v.F != 0
	case VBool:
		return v.B
	case VString:
		return v.S != ""
	default:
		return false
	}
}

// String renders v the way WRITE concatenates it into output.
func (v Value) String() string {
	switch v.Kind {
	case VInt:
		return strconv.FormatInt(v.I, 10)
	case VReal:
		return formatReal(v.F)
	case VBool:
		if v.B {
			return "adevarat"
		}
		return "fals"
	case VString:
		return v.S
	default:
		return ""
	}
}

// formatReal mirrors how teaching-dialect output typically renders a real:
// shortest round-trip decimal, never scientific notation, always showing at
// least one fractional digit.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// TypeName returns the spec's {int, real, bool, string, var}-style tag for
// v's dynamic kind (used in error messages and trace descriptions).
func (v Value) TypeName() string {
	switch v.Kind {
	case VInt:
		return "int"
	case VReal:
		return "real"
	case VBool:
		return "bool"
	case VString:
		return "string"
	default:
		return fmt.Sprintf("necunoscut(%d)", v.Kind)
	}
}
