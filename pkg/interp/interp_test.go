package interp

import (
	"testing"

	"sheetscript/pkg/ast"
	"sheetscript/internal/errs"
)

func TestSeedArithmeticPrecedence(t *testing.T) {
	store, errsOut := Interpret("x = 12 + 8 * 3;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Num != 36 {
		t.Errorf("got %v, want 36", store.Values["x"].Num)
	}
}

func TestSeedMixedPrecedenceAndPow(t *testing.T) {
	store, errsOut := Interpret("x = 10 + (30 - 5) * 3 ** 2;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Num != 235 {
		t.Errorf("got %v, want 235", store.Values["x"].Num)
	}
}

func TestSeedStringRepeatAndTypeError(t *testing.T) {
	store, errsOut := Interpret("x = 'nice' * 3;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Str != "nicenicenice" {
		t.Errorf("got %q", store.Values["x"].Str)
	}

	_, errsOut = Interpret("x = 'nice' * 'cool';")
	if len(errsOut) == 0 {
		t.Fatal("expected a TypeError")
	}
}

func TestSeedArrayIndexInAndOutOfRange(t *testing.T) {
	store, errsOut := Interpret("x = [1,2,3,4][3];")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Num != 4 {
		t.Errorf("got %v, want 4", store.Values["x"].Num)
	}

	_, errsOut = Interpret("x = [1,2,3][3];")
	if len(errsOut) != 1 {
		t.Fatalf("expected one error, got %v", errsOut)
	}
	if ie, ok := errsOut[0].(*errs.IndexError); !ok || ie.Index != 3 || ie.Len != 3 {
		t.Errorf("expected IndexError{3,3}, got %#v", errsOut[0])
	}
}

func TestSeedReverseSlices(t *testing.T) {
	store, errsOut := Interpret("x = 'wonderful'[-1..4];")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Str != "lufr" {
		t.Errorf("got %q, want lufr", store.Values["x"].Str)
	}

	store, errsOut = Interpret("x = 'sickening'[-4..=3];")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if store.Values["x"].Str != "nek" {
		t.Errorf("got %q, want nek", store.Values["x"].Str)
	}
}

func TestSeedChainedAssignment(t *testing.T) {
	store, errsOut := Interpret("these = are = all = 12;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	for _, name := range []string{"these", "are", "all"} {
		if store.Values[name].Num != 12 {
			t.Errorf("expected %s=12, got %v", name, store.Values[name].Num)
		}
	}
}

func TestSeedCycleProducesSingleRecursionError(t *testing.T) {
	_, errsOut := Interpret("a = b + 1; b = a + 1;")
	count := 0
	for _, e := range errsOut {
		if rec, ok := e.(*errs.RecursionError); ok {
			count++
			names := map[string]bool{}
			for _, l := range rec.Chain {
				names[l.Name] = true
			}
			if !names["a"] || !names["b"] {
				t.Errorf("expected chain to list both a and b, got %v", rec.Chain)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one RecursionError, got %d among %v", count, errsOut)
	}
}

func TestSeedInputDeclaration(t *testing.T) {
	store, errsOut := Interpret("input cool: Bool;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	v := store.Values["cool"]
	if v.Tag != "Input" || v.Name != "cool" || v.Kind != ast.TypeBool || v.Inner != nil {
		t.Errorf("got %+v", v)
	}
	if len(store.Inputs) != 1 || store.Inputs[0].Name != "cool" || store.Inputs[0].Kind != ast.TypeBool {
		t.Errorf("got inputs %+v", store.Inputs)
	}
	if store.Cached["cool"] {
		t.Errorf("expected cool uncached")
	}
}

func TestDeterminism(t *testing.T) {
	src := "a = 1; b = a + 2;"
	s1, e1 := Interpret(src)
	s2, e2 := Interpret(src)
	if len(e1) != 0 || len(e2) != 0 {
		t.Fatalf("unexpected errors: %v / %v", e1, e2)
	}
	if s1.Values["b"].Num != s2.Values["b"].Num {
		t.Errorf("expected determinism, got %v vs %v", s1.Values["b"].Num, s2.Values["b"].Num)
	}
}

func TestInputFreeCachedness(t *testing.T) {
	store, errsOut := Interpret("a = 1; b = a + 2; c = [1,2,3][1];")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	for name, cached := range store.Cached {
		if !cached {
			t.Errorf("expected %s cached with no inputs present, got false", name)
		}
	}
}

func TestGetInputsDoesNotEvaluate(t *testing.T) {
	inputs, errsOut := GetInputs("input a: Num; b = a + undeclared_name;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	if len(inputs) != 1 || inputs[0].Name != "a" || inputs[0].Kind != ast.TypeNum {
		t.Fatalf("got %+v", inputs)
	}
}

func TestParseErrorsShortCircuitPlanning(t *testing.T) {
	_, errsOut := Interpret("a = ;")
	if len(errsOut) == 0 {
		t.Fatal("expected a parse error")
	}
}
