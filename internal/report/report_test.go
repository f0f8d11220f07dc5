package report

import (
	"strings"
	"testing"

	"sheetscript/pkg/interp"
)

func TestRenderListsBindingsAndDependencies(t *testing.T) {
	store, errsOut := interp.Interpret("a = 1; b = a + 1;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}

	out, err := Render(store)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if !strings.Contains(out, "a = 1") {
		t.Errorf("missing binding a, got:\n%s", out)
	}
	if !strings.Contains(out, "depends on: a") {
		t.Errorf("expected b to list a as a dependency, got:\n%s", out)
	}
	if !strings.Contains(out, "used by:    b") {
		t.Errorf("expected a to list b as a dependent, got:\n%s", out)
	}
}

func TestRenderListsInputs(t *testing.T) {
	store, errsOut := interp.Interpret("input x: Num;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}

	out, err := Render(store)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, "INPUTS") || !strings.Contains(out, "x: Num") {
		t.Errorf("expected input x listed, got:\n%s", out)
	}
}

func TestRenderBindingWithNoDependenciesSaysNone(t *testing.T) {
	store, errsOut := interp.Interpret("a = 1;")
	if len(errsOut) != 0 {
		t.Fatalf("unexpected errors: %v", errsOut)
	}
	out, err := Render(store)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, "depends on: (none)") {
		t.Errorf("expected no dependencies, got:\n%s", out)
	}
}
