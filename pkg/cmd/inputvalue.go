package cmd

import (
	"fmt"
	"strconv"

	"sheetscript/internal/analysis"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/value"
)

// parseInputValue converts a raw string (from --set name=value or a
// config file) into a value.Value matching decl's declared kind.
func parseInputValue(decl analysis.InputDecl, raw string) (value.Value, error) {
	sp := ast.Span{}
	switch decl.Kind {
	case ast.TypeNum, ast.TypeInt:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("input %q: %q is not a valid Num: %w", decl.Name, raw, err)
		}
		if decl.Kind == ast.TypeInt && !value.Num(f, sp).IsInteger() {
			return value.Value{}, fmt.Errorf("input %q: %q is not a valid Int", decl.Name, raw)
		}
		return value.Num(f, sp), nil
	case ast.TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return value.Value{}, fmt.Errorf("input %q: %q is not a valid Bool: %w", decl.Name, raw, err)
		}
		return value.Bool_(b, sp), nil
	case ast.TypeString, ast.TypeAny:
		return value.Str(raw, sp), nil
	default:
		return value.Value{}, fmt.Errorf("input %q: values of kind %s cannot be supplied from the command line", decl.Name, decl.Kind)
	}
}

// resolveInputs builds the name->Value map InterpretWithInputs needs,
// from --set flags (highest priority) then config-file defaults, for
// every input declared in decls.
func resolveInputs(decls []analysis.InputDecl, sets map[string]string) (map[string]value.Value, []error) {
	resolved := make(map[string]value.Value)
	var errsOut []error

	byName := map[string]analysis.InputDecl{}
	for _, d := range decls {
		byName[d.Name] = d
	}

	apply := func(raw map[string]string) {
		for name, rawVal := range raw {
			decl, ok := byName[name]
			if !ok {
				continue
			}
			if _, already := resolved[name]; already {
				continue
			}
			v, err := parseInputValue(decl, rawVal)
			if err != nil {
				errsOut = append(errsOut, err)
				continue
			}
			resolved[name] = v
		}
	}

	apply(sets)
	apply(configuredInputs())

	return resolved, errsOut
}
