// Package eval implements the recursive expression evaluator: given an
// environment of already-computed bindings, it reduces an ast.Expression
// to a value.Value, accumulating type errors rather than aborting on the
// first one, and propagating Input placeholders instead of failing when
// a dependency's value hasn't been supplied yet.
package eval

import (
	"sheetscript/internal/errs"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/kernel"
	"sheetscript/pkg/value"
)

// Env resolves a bound name to its current value. The dependency planner
// is responsible for only calling Eval once every name an expression
// references already has an entry.
type Env interface {
	Lookup(name string) (value.Value, bool)
}

// MapEnv is the simplest Env: a flat map, sufficient since sheetscript
// has no nested lexical scopes.
type MapEnv map[string]value.Value

func (e MapEnv) Lookup(name string) (value.Value, bool) {
	v, ok := e[name]
	return v, ok
}

// Result bundles an expression's value with the errors and required
// inputs collected while producing it.
type Result struct {
	Value    value.Value
	Errors   []error
	Required []string // names of unresolved Input placeholders reached
}

func single(v value.Value) Result { return Result{Value: v} }

func fail(v value.Value, err error) Result {
	return Result{Value: v, Errors: []error{err}}
}

// Eval reduces expr against env.
func Eval(expr ast.Expression, env Env) Result {
	switch e := expr.(type) {
	case *ast.NumLiteral:
		return single(value.Num(e.Value, e.Sp))
	case *ast.StringLiteral:
		return single(value.Str(e.Value, e.Sp))
	case *ast.BoolLiteral:
		return single(value.Bool_(e.Value, e.Sp))
	case *ast.NullLiteral:
		return single(value.Null(e.Sp))
	case *ast.ArrayLiteral:
		return evalArray(e, env)
	case *ast.Ident:
		return evalIdent(e, env)
	case *ast.Input:
		return single(value.UnresolvedInput(e.Name, e.Kind, e.Sp))
	case *ast.InfixOp:
		return evalInfix(e, env)
	case *ast.Not:
		return evalNot(e, env)
	case *ast.Index:
		return evalIndex(e, env)
	case *ast.Conditional:
		return evalConditional(e, env)
	default:
		return fail(value.ErrVal(expr.Span()), &errs.SyntaxError{
			Message: "unevaluable expression",
			Span:    errs.Span{Start: expr.Span().Start, End: expr.Span().End},
		})
	}
}

// evalArray evaluates every element unconditionally so independently
// broken elements all surface their errors in one pass.
func evalArray(e *ast.ArrayLiteral, env Env) Result {
	elems := make([]value.Value, 0, len(e.Elements))
	var errsOut []error
	var required []string
	for _, el := range e.Elements {
		r := Eval(el, env)
		errsOut = append(errsOut, r.Errors...)
		required = append(required, r.Required...)
		elems = append(elems, r.Value)
	}
	return Result{Value: value.Array(elems, e.Sp), Errors: errsOut, Required: required}
}

func evalIdent(e *ast.Ident, env Env) Result {
	v, ok := env.Lookup(e.Name)
	if !ok {
		return fail(value.ErrVal(e.Sp), &errs.ReferenceError{
			Name: e.Name,
			Span: errs.Span{Start: e.Sp.Start, End: e.Sp.End},
		})
	}
	if v.IsUnresolved() {
		return Result{Value: v, Required: []string{v.Name}}
	}
	if v.Tag == value.TagInput {
		return single(*v.Inner)
	}
	return single(v)
}

// evalInfix evaluates both operands unconditionally — error accumulation
// takes priority over short-circuiting — then routes around the kernel
// entirely if either side is an unresolved input, since the kernel only
// operates on concrete values.
func evalInfix(e *ast.InfixOp, env Env) Result {
	l := Eval(e.Lhs, env)
	r := Eval(e.Rhs, env)

	errsOut := append(append([]error{}, l.Errors...), r.Errors...)
	required := append(append([]string{}, l.Required...), r.Required...)

	if len(l.Required) > 0 || len(r.Required) > 0 {
		return Result{Value: value.Null(e.Sp), Errors: errsOut, Required: required}
	}
	if len(errsOut) > 0 {
		return Result{Value: value.ErrVal(e.Sp), Errors: errsOut, Required: required}
	}

	v, err := kernel.Infix(l.Value, e.Op, r.Value, e.Sp)
	if err != nil {
		return Result{Value: value.ErrVal(e.Sp), Errors: []error{err}}
	}
	return single(v)
}

func evalNot(e *ast.Not, env Env) Result {
	r := Eval(e.Rhs, env)
	if len(r.Required) > 0 {
		return Result{Value: value.Null(e.Sp), Errors: r.Errors, Required: r.Required}
	}
	if len(r.Errors) > 0 {
		return Result{Value: value.ErrVal(e.Sp), Errors: r.Errors}
	}
	v, err := kernel.Not(r.Value, e.Sp)
	if err != nil {
		return fail(value.ErrVal(e.Sp), err)
	}
	return single(v)
}

func evalIndex(e *ast.Index, env Env) Result {
	l := Eval(e.Lhs, env)
	r := Eval(e.Rhs, env)

	errsOut := append(append([]error{}, l.Errors...), r.Errors...)
	required := append(append([]string{}, l.Required...), r.Required...)

	if len(required) > 0 {
		return Result{Value: value.Null(e.Sp), Errors: errsOut, Required: required}
	}
	if len(errsOut) > 0 {
		return Result{Value: value.ErrVal(e.Sp), Errors: errsOut}
	}

	v, err := kernel.Index(l.Value, r.Value, e.Sp)
	if err != nil {
		return fail(value.ErrVal(e.Sp), err)
	}
	return single(v)
}

// evalConditional evaluates only the selected branch, unless the
// condition itself is an unresolved input, in which case neither branch
// is evaluated — spec.md's evaluator design explicitly forbids guessing
// which branch an unsupplied Bool input would take.
func evalConditional(e *ast.Conditional, env Env) Result {
	cond := Eval(e.Condition, env)
	if len(cond.Required) > 0 {
		return Result{Value: value.Null(e.Sp), Errors: cond.Errors, Required: cond.Required}
	}
	if len(cond.Errors) > 0 {
		return Result{Value: value.ErrVal(e.Sp), Errors: cond.Errors}
	}
	if cond.Value.Tag != value.TagBool {
		return fail(value.ErrVal(e.Sp), &errs.TypeError{
			Expected: []string{"Bool"},
			Got:      string(cond.Value.Tag),
			GotSpan:  errs.Span{Start: cond.Value.Sp.Start, End: cond.Value.Sp.End},
			Context:  errs.CtxCondition,
		})
	}
	if cond.Value.Bool {
		return Eval(e.Inner, env)
	}
	return Eval(e.Other, env)
}
