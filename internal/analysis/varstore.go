package analysis

import "sheetscript/pkg/value"
import "sheetscript/pkg/ast"

// InputDecl names one external input a program declared and the type
// tag it was declared with.
type InputDecl struct {
	Name string
	Kind ast.TypeTag
}

// VarStore is the resolved state of an interpreted program: every
// binding's value, the dependency graph between bindings, the inputs
// the program still needs, and enough bookkeeping to tell a caller
// which values are stale with respect to unsupplied inputs.
type VarStore struct {
	Values     map[string]value.Value
	Inputs     []InputDecl
	Deps       map[string][]string
	Dependents map[string][]string
	Source     map[string]string
	Cached     map[string]bool
}

func newVarStore() *VarStore {
	return &VarStore{
		Values:     make(map[string]value.Value),
		Deps:       make(map[string][]string),
		Dependents: make(map[string][]string),
		Source:     make(map[string]string),
		Cached:     make(map[string]bool),
	}
}
