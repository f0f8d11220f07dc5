// Package value defines the tagged runtime value universe that the
// evaluator and operator kernel operate over.
package value

import (
	"fmt"
	"math"
	"strings"

	"sheetscript/pkg/ast"
)

// Tag is the dynamic kind of a Value.
type Tag string

const (
	TagNum    Tag = "Num"
	TagString Tag = "String"
	TagBool   Tag = "Bool"
	TagArray  Tag = "Array"
	TagRange  Tag = "Range"
	TagNull   Tag = "Null"
	TagAssign Tag = "Assign"
	TagInput  Tag = "Input"
	TagError  Tag = "Error"
)

// Span mirrors ast.Span; values carry the span of the expression that
// produced them for error reporting.
type Span = ast.Span

// Value is the tagged union every expression reduces to.
type Value struct {
	Tag Tag
	Sp  Span

	Num    float64
	Str    string
	Bool   bool
	Arr    []Value
	RLo    int64
	RHi    int64 // exclusive
	RIncl  bool  // true if built from an IRange (a..=b) literal
	Names  []string // Assign tag: the bound names
	Inner  *Value   // Assign: the bound value; Input: the supplied value or nil
	Name   string   // Input tag: the input's name
	Kind   ast.TypeTag // Input tag: its declared type
}

func Num(v float64, sp Span) Value    { return Value{Tag: TagNum, Num: v, Sp: sp} }
func Str(v string, sp Span) Value     { return Value{Tag: TagString, Str: v, Sp: sp} }
func Bool_(v bool, sp Span) Value     { return Value{Tag: TagBool, Bool: v, Sp: sp} }
func Array(v []Value, sp Span) Value  { return Value{Tag: TagArray, Arr: v, Sp: sp} }
func Null(sp Span) Value              { return Value{Tag: TagNull, Sp: sp} }
func ErrVal(sp Span) Value            { return Value{Tag: TagError, Sp: sp} }
func Rng(lo, hi int64, sp Span) Value { return Value{Tag: TagRange, RLo: lo, RHi: hi, Sp: sp} }

// RngIncl builds a Range that was written with the inclusive `..=`
// operator; hi is already the exclusive bound (the kernel's IRange
// case passes b+1), but RIncl is kept so indexing's reverse-slice rule
// can recover the original inclusive endpoint.
func RngIncl(lo, hi int64, sp Span) Value {
	return Value{Tag: TagRange, RLo: lo, RHi: hi, RIncl: true, Sp: sp}
}

func AssignVal(names []string, inner Value, sp Span) Value {
	return Value{Tag: TagAssign, Names: names, Inner: &inner, Sp: sp}
}

// UnresolvedInput builds an Input placeholder whose value has not been
// supplied (inner is conceptually Null).
func UnresolvedInput(name string, kind ast.TypeTag, sp Span) Value {
	return Value{Tag: TagInput, Name: name, Kind: kind, Sp: sp}
}

// ResolvedInput builds an Input placeholder carrying a concrete value.
func ResolvedInput(name string, kind ast.TypeTag, v Value, sp Span) Value {
	return Value{Tag: TagInput, Name: name, Kind: kind, Inner: &v, Sp: sp}
}

// IsUnresolved reports whether this Input's value has not yet been
// supplied.
func (v Value) IsUnresolved() bool {
	return v.Tag == TagInput && v.Inner == nil
}

// IsInteger reports whether a Num value has no fractional part. This is
// the exact-trunc test spec.md §9 requires — no near-integer heuristics.
func (v Value) IsInteger() bool {
	return v.Tag == TagNum && v.Num == math.Trunc(v.Num)
}

// Len reports the element/character count of an Array or String value.
// Callers must check Tag first.
func (v Value) Len() int {
	switch v.Tag {
	case TagArray:
		return len(v.Arr)
	case TagString:
		return len([]rune(v.Str))
	default:
		return 0
	}
}

// String renders a value for display and for the In-over-String
// membership rule's "string representation of x" clause.
func (v Value) String() string {
	switch v.Tag {
	case TagNum:
		return formatNum(v.Num)
	case TagString:
		return v.Str
	case TagBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TagArray:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagRange:
		return fmt.Sprintf("%d..%d", v.RLo, v.RHi)
	case TagNull:
		return "null"
	case TagInput:
		if v.Inner != nil {
			return v.Inner.String()
		}
		return fmt.Sprintf("<input %s>", v.Name)
	case TagAssign:
		if v.Inner != nil {
			return v.Inner.String()
		}
		return "<assign>"
	case TagError:
		return "<error>"
	default:
		return "<?>"
	}
}

func formatNum(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%g", f)
}
