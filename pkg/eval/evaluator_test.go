package eval

import (
	"testing"

	"sheetscript/pkg/ast"
	"sheetscript/pkg/value"
)

var sp = ast.Span{}

func num(f float64) *ast.NumLiteral { return &ast.NumLiteral{Value: f, Sp: sp} }
func ident(n string) *ast.Ident     { return &ast.Ident{Name: n, Sp: sp} }

func TestEvalLiteral(t *testing.T) {
	r := Eval(num(3), MapEnv{})
	if len(r.Errors) != 0 || r.Value.Num != 3 {
		t.Fatalf("got %+v", r)
	}
}

func TestEvalInfixKernelTypeError(t *testing.T) {
	bad := &ast.InfixOp{
		Lhs: &ast.BoolLiteral{Value: true, Sp: sp},
		Op:  ast.OpAdd,
		Rhs: &ast.BoolLiteral{Value: false, Sp: sp},
		Sp:  sp,
	}
	r := Eval(bad, MapEnv{})
	if len(r.Errors) == 0 {
		t.Fatal("expected a type error")
	}
}

func TestEvalIdentUnresolvedInput(t *testing.T) {
	env := MapEnv{"x": value.UnresolvedInput("x", ast.TypeNum, sp)}
	r := Eval(ident("x"), env)
	if len(r.Required) != 1 || r.Required[0] != "x" {
		t.Fatalf("expected x required, got %+v", r)
	}
}

func TestEvalIdentReferenceError(t *testing.T) {
	r := Eval(ident("missing"), MapEnv{})
	if len(r.Errors) != 1 {
		t.Fatalf("expected a ReferenceError, got %+v", r)
	}
}

func TestEvalInfixWithUnresolvedInputShortCircuitsToNull(t *testing.T) {
	env := MapEnv{"x": value.UnresolvedInput("x", ast.TypeNum, sp)}
	expr := &ast.InfixOp{Lhs: ident("x"), Op: ast.OpAdd, Rhs: num(1), Sp: sp}
	r := Eval(expr, env)
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if r.Value.Tag != value.TagNull {
		t.Errorf("expected Null while input unresolved, got %+v", r.Value)
	}
	if len(r.Required) != 1 || r.Required[0] != "x" {
		t.Errorf("expected x recorded as required, got %v", r.Required)
	}
}

func TestEvalInfixWithResolvedInputUsesConcreteValue(t *testing.T) {
	env := MapEnv{"x": value.ResolvedInput("x", ast.TypeNum, value.Num(4, sp), sp)}
	expr := &ast.InfixOp{Lhs: ident("x"), Op: ast.OpAdd, Rhs: num(1), Sp: sp}
	r := Eval(expr, env)
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if r.Value.Num != 5 {
		t.Errorf("expected 5, got %v", r.Value.Num)
	}
}

func TestEvalConditionalDoesNotEvaluateUnchosenBranch(t *testing.T) {
	panicky := &ast.Ident{Name: "undeclared-and-unused", Sp: sp}
	cond := &ast.Conditional{
		Condition: &ast.BoolLiteral{Value: true, Sp: sp},
		Inner:     num(1),
		Other:     panicky,
		Sp:        sp,
	}
	r := Eval(cond, MapEnv{})
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if r.Value.Num != 1 {
		t.Errorf("expected 1, got %+v", r.Value)
	}
}

func TestEvalConditionalWithUnresolvedBoolInputEvaluatesNeitherBranch(t *testing.T) {
	env := MapEnv{"c": value.UnresolvedInput("c", ast.TypeBool, sp)}
	panicky := &ast.Ident{Name: "undeclared", Sp: sp}
	cond := &ast.Conditional{Condition: ident("c"), Inner: panicky, Other: panicky, Sp: sp}
	r := Eval(cond, env)
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if r.Value.Tag != value.TagNull {
		t.Errorf("expected Null, got %+v", r.Value)
	}
	if len(r.Required) != 1 || r.Required[0] != "c" {
		t.Errorf("expected c required, got %v", r.Required)
	}
}

func TestEvalArrayAccumulatesAllElementErrors(t *testing.T) {
	arr := &ast.ArrayLiteral{Elements: []ast.Expression{ident("a"), ident("b")}, Sp: sp}
	r := Eval(arr, MapEnv{})
	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 reference errors, got %v", r.Errors)
	}
}

func TestEvalIndex(t *testing.T) {
	env := MapEnv{"xs": value.Array([]value.Value{value.Num(10, sp), value.Num(20, sp)}, sp)}
	expr := &ast.Index{Lhs: ident("xs"), Rhs: num(1), Sp: sp}
	r := Eval(expr, env)
	if len(r.Errors) != 0 || r.Value.Num != 20 {
		t.Fatalf("got %+v", r)
	}
}
