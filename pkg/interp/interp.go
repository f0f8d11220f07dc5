// Package interp is the sheetscript interpreter facade: it wires the
// lexer, parser, and dependency planner into the two entry points the
// CLI and REPL actually call.
package interp

import (
	"sheetscript/internal/analysis"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/lexer"
	"sheetscript/pkg/parser"
	"sheetscript/pkg/value"
)

// Interpret parses source and runs the dependency planner over it,
// returning the populated VarStore or the full error list. Parse
// errors short-circuit before planning ever runs.
func Interpret(source string) (*analysis.VarStore, []error) {
	return InterpretWithInputs(source, nil)
}

// InterpretWithInputs is Interpret, but pre-resolves any declared
// Input named in inputs to the given value before planning runs.
func InterpretWithInputs(source string, inputs map[string]value.Value) (*analysis.VarStore, []error) {
	prog, errsOut := parse(source)
	if len(errsOut) > 0 {
		return nil, errsOut
	}
	return analysis.PlanWithInputs(prog, inputs)
}

// GetInputs parses source and lists every `input` declaration it
// contains, in source order, without evaluating anything.
func GetInputs(source string) ([]analysis.InputDecl, []error) {
	prog, errsOut := parse(source)
	if len(errsOut) > 0 {
		return nil, errsOut
	}

	var inputs []analysis.InputDecl
	for _, stmt := range prog.Statements {
		if in, ok := stmt.(*ast.Input); ok {
			inputs = append(inputs, analysis.InputDecl{Name: in.Name, Kind: in.Kind})
		}
	}
	return inputs, nil
}

func parse(source string) (*ast.Program, []error) {
	l := lexer.New([]byte(source))
	p := parser.New(l)
	return p.ParseProgram()
}
