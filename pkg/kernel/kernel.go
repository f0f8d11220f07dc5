// Package kernel implements the operator kernel: a total function per
// spec.md §4.1 operator, dispatching on the dynamic tag of its operands
// and producing either a new Value or a typed error.
package kernel

import (
	"math"
	"strings"

	"sheetscript/internal/errs"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/value"
)

func typeErr(ctx errs.TypeErrorContext, expected []string, got value.Value, detail string) *errs.TypeError {
	return &errs.TypeError{
		Expected: expected,
		Got:      string(got.Tag),
		GotSpan:  errs.Span{Start: got.Sp.Start, End: got.Sp.End},
		Context:  ctx,
		Detail:   detail,
	}
}

// Infix applies op to lhs and rhs, both already-resolved concrete
// values (the evaluator is responsible for routing unresolved Input
// operands around the kernel before reaching here).
func Infix(lhs value.Value, op ast.Op, rhs value.Value, sp ast.Span) (value.Value, error) {
	switch op {
	case ast.OpPow:
		return arithPow(lhs, rhs, sp)
	case ast.OpMul:
		return mul(lhs, rhs, sp)
	case ast.OpDiv:
		return numOnly(lhs, rhs, sp, op, func(a, b float64) float64 { return a / b })
	case ast.OpAdd:
		return numOnly(lhs, rhs, sp, op, func(a, b float64) float64 { return a + b })
	case ast.OpSub:
		return numOnly(lhs, rhs, sp, op, func(a, b float64) float64 { return a - b })
	case ast.OpMod:
		return numOnly(lhs, rhs, sp, op, math.Mod)
	case ast.OpLt:
		return compare(lhs, rhs, sp, op, func(a, b float64) bool { return a < b })
	case ast.OpGt:
		return compare(lhs, rhs, sp, op, func(a, b float64) bool { return a > b })
	case ast.OpLte:
		return compare(lhs, rhs, sp, op, func(a, b float64) bool { return a <= b })
	case ast.OpGte:
		return compare(lhs, rhs, sp, op, func(a, b float64) bool { return a >= b })
	case ast.OpEq:
		return equals(lhs, rhs, sp, false)
	case ast.OpNeq:
		return equals(lhs, rhs, sp, true)
	case ast.OpAnd:
		return boolOnly(lhs, rhs, sp, op, func(a, b bool) bool { return a && b })
	case ast.OpOr:
		return boolOnly(lhs, rhs, sp, op, func(a, b bool) bool { return a || b })
	case ast.OpIn:
		return in(lhs, rhs, sp)
	case ast.OpRange:
		return rangeOp(lhs, rhs, sp, 0)
	case ast.OpIRange:
		return rangeOp(lhs, rhs, sp, 1)
	}
	return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"known operator"}, lhs, string(op))
}

func arithPow(lhs, rhs value.Value, sp ast.Span) (value.Value, error) {
	if lhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Num"}, lhs, string(ast.OpPow))
	}
	if rhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Num"}, rhs, string(ast.OpPow))
	}
	if lhs.IsInteger() && rhs.IsInteger() {
		return value.Num(intPow(lhs.Num, int32(rhs.Num)), sp), nil
	}
	return value.Num(math.Pow(lhs.Num, rhs.Num), sp), nil
}

func intPow(base float64, exp int32) float64 {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	result := 1.0
	for i := int32(0); i < exp; i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func mul(lhs, rhs value.Value, sp ast.Span) (value.Value, error) {
	if lhs.Tag == value.TagNum && rhs.Tag == value.TagNum {
		return value.Num(lhs.Num*rhs.Num, sp), nil
	}
	if lhs.Tag == value.TagString && rhs.Tag == value.TagNum {
		return repeatString(lhs.Str, rhs, sp)
	}
	if lhs.Tag == value.TagNum && rhs.Tag == value.TagString {
		return repeatString(rhs.Str, lhs, sp)
	}
	if lhs.Tag != value.TagNum && lhs.Tag != value.TagString {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Num", "String"}, lhs, string(ast.OpMul))
	}
	return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Num", "String"}, rhs, string(ast.OpMul))
}

func repeatString(s string, count value.Value, sp ast.Span) (value.Value, error) {
	if !count.IsInteger() {
		return value.Value{}, typeErr(errs.CtxStringMul, []string{"Int"}, count, "")
	}
	n := int(count.Num)
	if n < 0 {
		n = 0
	}
	return value.Str(strings.Repeat(s, n), sp), nil
}

func numOnly(lhs, rhs value.Value, sp ast.Span, op ast.Op, f func(a, b float64) float64) (value.Value, error) {
	if lhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Num"}, lhs, string(op))
	}
	if rhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Num"}, rhs, string(op))
	}
	return value.Num(f(lhs.Num, rhs.Num), sp), nil
}

func compare(lhs, rhs value.Value, sp ast.Span, op ast.Op, f func(a, b float64) bool) (value.Value, error) {
	if lhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Num"}, lhs, string(op))
	}
	if rhs.Tag != value.TagNum {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Num"}, rhs, string(op))
	}
	return value.Bool_(f(lhs.Num, rhs.Num), sp), nil
}

func boolOnly(lhs, rhs value.Value, sp ast.Span, op ast.Op, f func(a, b bool) bool) (value.Value, error) {
	if lhs.Tag != value.TagBool {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Bool"}, lhs, string(op))
	}
	if rhs.Tag != value.TagBool {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Bool"}, rhs, string(op))
	}
	return value.Bool_(f(lhs.Bool, rhs.Bool), sp), nil
}

// equals implements same-tag equality across Num, String, Bool, Array;
// cross-tag operands are a TypeError, not false — spec.md §4.1.
func equals(lhs, rhs value.Value, sp ast.Span, negate bool) (value.Value, error) {
	if lhs.Tag != rhs.Tag {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{string(lhs.Tag)}, rhs, "Eq")
	}
	eq, err := rawEquals(lhs, rhs)
	if err != nil {
		return value.Value{}, err
	}
	if negate {
		eq = !eq
	}
	return value.Bool_(eq, sp), nil
}

func rawEquals(lhs, rhs value.Value) (bool, error) {
	switch lhs.Tag {
	case value.TagNum:
		return lhs.Num == rhs.Num, nil
	case value.TagString:
		return lhs.Str == rhs.Str, nil
	case value.TagBool:
		return lhs.Bool == rhs.Bool, nil
	case value.TagArray:
		if len(lhs.Arr) != len(rhs.Arr) {
			return false, nil
		}
		for i := range lhs.Arr {
			eq, err := rawEquals(lhs.Arr[i], rhs.Arr[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, typeErr(errs.CtxInfixLhs, []string{"Num", "String", "Bool", "Array"}, lhs, "Eq")
	}
}

// in implements the three membership shapes of spec.md §4.1.
func in(x, container value.Value, sp ast.Span) (value.Value, error) {
	switch container.Tag {
	case value.TagArray:
		for _, el := range container.Arr {
			if el.Tag != x.Tag {
				continue
			}
			eq, err := rawEquals(x, el)
			if err != nil {
				return value.Value{}, err
			}
			if eq {
				return value.Bool_(true, sp), nil
			}
		}
		return value.Bool_(false, sp), nil
	case value.TagString:
		return value.Bool_(strings.Contains(container.Str, x.String()), sp), nil
	case value.TagRange:
		if !x.IsInteger() {
			return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Int"}, x, "In")
		}
		n := int64(x.Num)
		return value.Bool_(n >= container.RLo && n < container.RHi, sp), nil
	default:
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Array", "String", "Range"}, container, "In")
	}
}

func rangeOp(lhs, rhs value.Value, sp ast.Span, inclusiveAdjust int64) (value.Value, error) {
	if lhs.Tag != value.TagNum || !lhs.IsInteger() {
		return value.Value{}, typeErr(errs.CtxInfixLhs, []string{"Int"}, lhs, "Range")
	}
	if rhs.Tag != value.TagNum || !rhs.IsInteger() {
		return value.Value{}, typeErr(errs.CtxInfixRhs, []string{"Int"}, rhs, "Range")
	}
	if inclusiveAdjust != 0 {
		return value.RngIncl(int64(lhs.Num), int64(rhs.Num)+inclusiveAdjust, sp), nil
	}
	return value.Rng(int64(lhs.Num), int64(rhs.Num), sp), nil
}

// Not implements unary negation over Bool.
func Not(v value.Value, sp ast.Span) (value.Value, error) {
	if v.Tag != value.TagBool {
		return value.Value{}, typeErr(errs.CtxNot, []string{"Bool"}, v, "")
	}
	return value.Bool_(!v.Bool, sp), nil
}

// Index implements spec.md §4.1's indexing rules: integer indices on
// Array/String with negative-index normalization, and Range indices
// with the forward-or-reverse slicing rule.
func Index(container, idx value.Value, sp ast.Span) (value.Value, error) {
	switch container.Tag {
	case value.TagArray, value.TagString:
	default:
		return value.Value{}, typeErr(errs.CtxIndexOf, []string{"Array", "String"}, container, "")
	}

	switch idx.Tag {
	case value.TagNum:
		if !idx.IsInteger() {
			return value.Value{}, typeErr(errs.CtxIndex, []string{"Int"}, idx, "")
		}
		return indexScalar(container, int64(idx.Num), sp)
	case value.TagRange:
		return indexRange(container, idx)
	default:
		return value.Value{}, typeErr(errs.CtxIndex, []string{"Int", "Range"}, idx, "")
	}
}

func normalize(k, n int64) int64 {
	if k < 0 {
		return k + n
	}
	return k
}

func indexScalar(container value.Value, k int64, sp ast.Span) (value.Value, error) {
	n := int64(container.Len())
	nk := normalize(k, n)
	if nk < 0 || nk >= n {
		return value.Value{}, &errs.IndexError{Index: int(k), Len: int(n), Span: errs.Span{Start: sp.Start, End: sp.End}}
	}
	if container.Tag == value.TagArray {
		return container.Arr[nk], nil
	}
	runes := []rune(container.Str)
	return value.Str(string(runes[nk]), sp), nil
}

func indexRange(container value.Value, idx value.Value) (value.Value, error) {
	n := int64(container.Len())
	nlo := normalize(idx.RLo, n)
	nhi := normalize(idx.RHi, n)

	if nlo <= nhi {
		return slice(container, nlo, nhi, idx.Sp)
	}

	// idx.RHi is already the effective exclusive bound (an IRange's raw
	// upper + 1); recover the endpoint the reverse walk should stop on,
	// which is one past it for an exclusive Range and the raw inclusive
	// endpoint itself for an IRange.
	reverseEnd := idx.RHi + 1
	if idx.RIncl {
		reverseEnd = idx.RHi - 1
	}
	return reverseSlice(container, nlo, normalize(reverseEnd, n), idx.Sp)
}

func slice(container value.Value, lo, hi int64, sp ast.Span) (value.Value, error) {
	lo, hi = clampRange(lo, hi, int64(container.Len()))
	if container.Tag == value.TagArray {
		out := make([]value.Value, 0, hi-lo)
		out = append(out, container.Arr[lo:hi]...)
		return value.Array(out, sp), nil
	}
	runes := []rune(container.Str)
	return value.Str(string(runes[lo:hi]), sp), nil
}

// reverseSlice returns container's elements from index hi down to lo,
// inclusive of both ends, in that descending order.
func reverseSlice(container value.Value, hi, lo int64, sp ast.Span) (value.Value, error) {
	n := int64(container.Len())
	if hi > n-1 {
		hi = n - 1
	}
	if lo < 0 {
		lo = 0
	}
	if container.Tag == value.TagArray {
		var out []value.Value
		for i := hi; i >= lo; i-- {
			out = append(out, container.Arr[i])
		}
		return value.Array(out, sp), nil
	}
	runes := []rune(container.Str)
	var out []rune
	for i := hi; i >= lo; i-- {
		out = append(out, runes[i])
	}
	return value.Str(string(out), sp), nil
}

func clampRange(lo, hi, n int64) (int64, int64) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
