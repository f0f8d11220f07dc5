// Package ast defines the expression tree produced by the parser and
// consumed by the evaluator and dependency planner.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start, End int
}

// Node is implemented by every AST node.
type Node interface {
	String() string
	Span() Span
}

// Statement is a top-level statement: either Assign or Input.
type Statement interface {
	Node
	statementNode()
}

// Expression is any node that can appear as (or inside) a value-producing
// expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var out strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.String())
		out.WriteString(";")
	}
	return out.String()
}
func (p *Program) Span() Span {
	if len(p.Statements) == 0 {
		return Span{}
	}
	return Span{p.Statements[0].Span().Start, p.Statements[len(p.Statements)-1].Span().End}
}

// --- Literals ---

type NumLiteral struct {
	Value float64
	Sp    Span
}

func (n *NumLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}
func (n *NumLiteral) Span() Span     { return n.Sp }
func (n *NumLiteral) expressionNode() {}

type StringLiteral struct {
	Value string
	Sp    Span
}

func (s *StringLiteral) String() string  { return fmt.Sprintf("%q", s.Value) }
func (s *StringLiteral) Span() Span      { return s.Sp }
func (s *StringLiteral) expressionNode() {}

type BoolLiteral struct {
	Value bool
	Sp    Span
}

func (b *BoolLiteral) String() string  { return fmt.Sprintf("%t", b.Value) }
func (b *BoolLiteral) Span() Span      { return b.Sp }
func (b *BoolLiteral) expressionNode() {}

type NullLiteral struct {
	Sp Span
}

func (n *NullLiteral) String() string  { return "null" }
func (n *NullLiteral) Span() Span      { return n.Sp }
func (n *NullLiteral) expressionNode() {}

type ArrayLiteral struct {
	Elements []Expression
	Sp       Span
}

func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *ArrayLiteral) Span() Span      { return a.Sp }
func (a *ArrayLiteral) expressionNode() {}

// --- Identifiers and inputs ---

type Ident struct {
	Name string
	Sp   Span
}

func (i *Ident) String() string  { return i.Name }
func (i *Ident) Span() Span      { return i.Sp }
func (i *Ident) expressionNode() {}
func (i *Ident) statementNode()  {}

// TypeTag is the declared kind of an input.
type TypeTag string

const (
	TypeAny    TypeTag = "Any"
	TypeNum    TypeTag = "Num"
	TypeInt    TypeTag = "Int"
	TypeString TypeTag = "String"
	TypeBool   TypeTag = "Bool"
	TypeArray  TypeTag = "Array"
	TypeRange  TypeTag = "Range"
)

// Input declares an external input, optionally at top level or nested
// inside another expression's Ident position (though top-level use is
// the only form the grammar's statement rule produces).
type Input struct {
	Name string
	Kind TypeTag
	Sp   Span
}

func (i *Input) String() string {
	if i.Kind == "" || i.Kind == TypeAny {
		return fmt.Sprintf("input %s", i.Name)
	}
	return fmt.Sprintf("input %s: %s", i.Name, i.Kind)
}
func (i *Input) Span() Span      { return i.Sp }
func (i *Input) expressionNode() {}
func (i *Input) statementNode()  {}

// --- Operators ---

type Op string

const (
	OpPow    Op = "**"
	OpMul    Op = "*"
	OpDiv    Op = "/"
	OpMod    Op = "%"
	OpAdd    Op = "+"
	OpSub    Op = "-"
	OpEq     Op = "=="
	OpNeq    Op = "!="
	OpLt     Op = "<"
	OpGt     Op = ">"
	OpLte    Op = "<="
	OpGte    Op = ">="
	OpAnd    Op = "and"
	OpOr     Op = "or"
	OpIn     Op = "in"
	OpRange  Op = ".."
	OpIRange Op = "..="
)

type InfixOp struct {
	Lhs Expression
	Op  Op
	Rhs Expression
	Sp  Span
}

func (e *InfixOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Lhs.String(), e.Op, e.Rhs.String())
}
func (e *InfixOp) Span() Span      { return e.Sp }
func (e *InfixOp) expressionNode() {}

type Not struct {
	Rhs Expression
	Sp  Span
}

func (e *Not) String() string  { return fmt.Sprintf("(not %s)", e.Rhs.String()) }
func (e *Not) Span() Span      { return e.Sp }
func (e *Not) expressionNode() {}

type Index struct {
	Lhs Expression
	Rhs Expression
	Sp  Span
}

func (e *Index) String() string  { return fmt.Sprintf("%s[%s]", e.Lhs.String(), e.Rhs.String()) }
func (e *Index) Span() Span      { return e.Sp }
func (e *Index) expressionNode() {}

// --- Assignment and conditional ---

// Assign is a chained top-level assignment: a = b = c = value.
type Assign struct {
	Names []string
	Value Expression
	Sp    Span
}

func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", strings.Join(a.Names, " = "), a.Value.String())
}
func (a *Assign) Span() Span     { return a.Sp }
func (a *Assign) statementNode() {}

type Conditional struct {
	Condition Expression
	Inner     Expression
	Other     Expression
	Sp        Span
}

func (c *Conditional) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", c.Condition.String(), c.Inner.String(), c.Other.String())
}
func (c *Conditional) Span() Span      { return c.Sp }
func (c *Conditional) expressionNode() {}
