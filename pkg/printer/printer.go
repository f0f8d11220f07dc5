// Package printer regenerates canonical source text from an AST,
// used by the dependency planner to populate VarStore.source.
package printer

import "sheetscript/pkg/ast"

// Print renders expr back to source text. Infix expressions are fully
// parenthesized, matching the AST nodes' own String() methods — the
// printer exists as its own package so the dependency planner and CLI
// `fmt` command share one source-regeneration path instead of each
// calling Expression.String() directly.
func Print(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	return expr.String()
}

// PrintStatement renders a top-level statement back to source text,
// including the trailing semicolon a program file would show.
func PrintStatement(stmt ast.Statement) string {
	if stmt == nil {
		return ""
	}
	return stmt.String() + ";"
}

// PrintProgram renders an entire program, one statement per line.
func PrintProgram(prog *ast.Program) string {
	out := ""
	for i, s := range prog.Statements {
		if i > 0 {
			out += "\n"
		}
		out += PrintStatement(s)
	}
	return out
}
