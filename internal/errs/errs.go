// Package errs defines the structured error kinds raised across the
// lexer, parser, dependency planner, and evaluator. Every kind carries
// enough payload to let a host render a precise diagnostic, and every
// kind implements the standard error interface so callers that don't
// care about structure can just print it.
package errs

import "fmt"

// Span mirrors ast.Span without importing package ast, so errs stays a
// leaf dependency usable from the lexer up through the evaluator.
type Span struct {
	Start, End int
}

type SyntaxError struct {
	Message string
	Span    Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Span.Start, e.Span.End, e.Message)
}

type ParsingError struct {
	Message string
	Span    Span
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Span.Start, e.Span.End, e.Message)
}

type ReassignError struct {
	Name    string
	OldSpan Span
	NewSpan Span
}

func (e *ReassignError) Error() string {
	return fmt.Sprintf("%q is already bound (first at %d:%d, reassigned at %d:%d)",
		e.Name, e.OldSpan.Start, e.OldSpan.End, e.NewSpan.Start, e.NewSpan.End)
}

type ReferenceError struct {
	Name string
	Span Span
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("undefined reference to %q at %d:%d", e.Name, e.Span.Start, e.Span.End)
}

// ChainLink is one hop in a RecursionError's causal chain.
type ChainLink struct {
	Name string
	Span Span
}

type RecursionError struct {
	Chain []ChainLink
}

func (e *RecursionError) Error() string {
	s := "dependency cycle: "
	for i, link := range e.Chain {
		if i > 0 {
			s += " -> "
		}
		s += link.Name
	}
	return s
}

// TypeErrorContext names where in the evaluator a type mismatch arose.
type TypeErrorContext string

const (
	CtxInfixLhs   TypeErrorContext = "InfixOpLhs"
	CtxInfixRhs   TypeErrorContext = "InfixOpRhs"
	CtxStringMul  TypeErrorContext = "StringMul"
	CtxIndex      TypeErrorContext = "Index"
	CtxIndexOf    TypeErrorContext = "IndexOf"
	CtxCondition  TypeErrorContext = "Condition"
	CtxNot        TypeErrorContext = "Not"
)

type TypeError struct {
	Expected []string
	Got      string // the offending value's type tag
	GotSpan  Span
	Context  TypeErrorContext
	Detail   string // free-form extra context, e.g. the operator symbol
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error (%s%s): expected %v, got %s at %d:%d",
		e.Context, detailSuffix(e.Detail), e.Expected, e.Got, e.GotSpan.Start, e.GotSpan.End)
}

func detailSuffix(d string) string {
	if d == "" {
		return ""
	}
	return fmt.Sprintf("{%s}", d)
}

type IndexError struct {
	Index int
	Len   int
	Span  Span
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d at %d:%d", e.Index, e.Len, e.Span.Start, e.Span.End)
}
