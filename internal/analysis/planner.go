package analysis

import (
	"sort"

	"sheetscript/internal/errs"
	"sheetscript/pkg/ast"
	"sheetscript/pkg/eval"
	"sheetscript/pkg/printer"
	"sheetscript/pkg/value"
)

// depRef is one identifier reference reached while walking an
// expression, kept with the span of that specific occurrence so
// reference-chain errors can point at the exact use site.
type depRef struct {
	Name string
	Span ast.Span
}

// declRecord is a program's declaration table entry for one bound
// name: either an Input declaration or one name out of a (possibly
// chained) Assign.
type declRecord struct {
	Name      string
	Span      ast.Span
	IsInput   bool
	InputKind ast.TypeTag
	Expr      ast.Expression // nil for Input declarations
	Names     []string       // every name this same Assign bound, including Name
	Deps      []depRef
}

// Plan runs the full four-step dependency planning and evaluation
// pipeline over a parsed program with no input values supplied.
func Plan(prog *ast.Program) (*VarStore, []error) {
	return PlanWithInputs(prog, nil)
}

// PlanWithInputs runs the same pipeline as Plan, but seeds any
// declared Input whose name appears in inputs with that resolved
// value instead of leaving it unresolved. This is the hook the CLI's
// `run` command uses to apply `--set`/config-supplied values
// without giving the pure interpreter functions any notion of a host
// environment.
func PlanWithInputs(prog *ast.Program, inputs map[string]value.Value) (*VarStore, []error) {
	declarations, declOrder, errsOut := buildDeclarations(prog)

	g := NewGraph()
	for _, name := range declOrder {
		g.AddNode(name)
	}
	for _, name := range declOrder {
		for _, dep := range declarations[name].Deps {
			if _, ok := declarations[dep.Name]; ok {
				g.AddEdge(dep.Name, name)
			}
		}
	}

	sorted, ok := g.TopoSort()

	// A name can be sorted by the declared-edges graph above yet still be
	// unresolvable, if one of its dependencies was never declared at all
	// (so no edge for it exists in g). Propagate that forward across the
	// order the graph did manage to produce.
	blocked := make(map[string]bool, len(declOrder))
	for _, name := range declOrder {
		blocked[name] = hasUndeclaredDep(declarations[name], declarations)
	}
	for _, name := range sorted {
		for _, d := range declarations[name].Deps {
			if blocked[d.Name] {
				blocked[name] = true
			}
		}
	}

	placed := make(map[string]bool, len(declOrder))
	anyBlocked := false
	for _, name := range sorted {
		placed[name] = !blocked[name]
		anyBlocked = anyBlocked || blocked[name]
	}

	if !ok || anyBlocked {
		errsOut = append(errsOut, reportStalled(declarations, declOrder, placed)...)
		return nil, errsOut
	}

	store := newVarStore()
	for _, name := range declOrder {
		rec := declarations[name]
		deps := make([]string, 0, len(rec.Deps))
		seen := map[string]bool{}
		for _, d := range rec.Deps {
			if !seen[d.Name] {
				seen[d.Name] = true
				deps = append(deps, d.Name)
			}
		}
		store.Deps[name] = deps
		for _, d := range deps {
			store.Dependents[d] = append(store.Dependents[d], name)
		}
		if rec.IsInput {
			store.Inputs = append(store.Inputs, InputDecl{Name: name, Kind: rec.InputKind})
		}
	}

	env := eval.MapEnv{}

	for _, name := range sorted {
		rec := declarations[name]
		if rec.IsInput {
			v := value.UnresolvedInput(name, rec.InputKind, rec.Span)
			if supplied, ok := inputs[name]; ok {
				v = value.ResolvedInput(name, rec.InputKind, supplied, rec.Span)
			}
			env[name] = v
			store.Values[name] = v
			store.Source[name] = printer.Print(&ast.Input{Name: name, Kind: rec.InputKind, Sp: rec.Span})
			store.Cached[name] = !v.IsUnresolved()
			continue
		}

		result := eval.Eval(rec.Expr, env)
		store.Source[name] = printer.Print(rec.Expr)
		errsOut = append(errsOut, result.Errors...)

		bound := value.AssignVal(rec.Names, result.Value, rec.Span)
		env[name] = *bound.Inner
		store.Values[name] = *bound.Inner

		cached := len(result.Required) == 0 && len(result.Errors) == 0
		for _, d := range store.Deps[name] {
			cached = cached && store.Cached[d]
		}
		store.Cached[name] = cached
	}

	if len(errsOut) > 0 {
		return nil, errsOut
	}
	return store, nil
}

// hasUndeclaredDep reports whether rec references at least one name
// with no declaration record at all.
func hasUndeclaredDep(rec *declRecord, declarations map[string]*declRecord) bool {
	for _, d := range rec.Deps {
		if _, ok := declarations[d.Name]; !ok {
			return true
		}
	}
	return false
}

// buildDeclarations performs step 1 (declaration table) and step 2
// (deps(expr)) together: declRecord.Deps is populated as each statement
// is walked.
func buildDeclarations(prog *ast.Program) (map[string]*declRecord, []string, []error) {
	declarations := make(map[string]*declRecord)
	var order []string
	var errsOut []error

	declare := func(name string, sp ast.Span, rec *declRecord) {
		if existing, dup := declarations[name]; dup {
			errsOut = append(errsOut, &errs.ReassignError{
				Name:    name,
				OldSpan: errs.Span{Start: existing.Span.Start, End: existing.Span.End},
				NewSpan: errs.Span{Start: sp.Start, End: sp.End},
			})
			return
		}
		declarations[name] = rec
		order = append(order, name)
	}

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.Assign:
			deps := collectDeps(s.Value)
			for _, name := range s.Names {
				declare(name, s.Sp, &declRecord{
					Name:  name,
					Span:  s.Sp,
					Expr:  s.Value,
					Names: s.Names,
					Deps:  deps,
				})
			}
		case *ast.Input:
			declare(s.Name, s.Sp, &declRecord{
				Name:      s.Name,
				Span:      s.Sp,
				IsInput:   true,
				InputKind: s.Kind,
			})
		}
	}

	return declarations, order, errsOut
}

// collectDeps walks expr structurally and returns every identifier
// reference it contains, in the order encountered.
func collectDeps(expr ast.Expression) []depRef {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *ast.NumLiteral, *ast.StringLiteral, *ast.BoolLiteral, *ast.NullLiteral:
		return nil
	case *ast.Ident:
		return []depRef{{Name: e.Name, Span: e.Sp}}
	case *ast.ArrayLiteral:
		var out []depRef
		for _, el := range e.Elements {
			out = append(out, collectDeps(el)...)
		}
		return out
	case *ast.InfixOp:
		out := collectDeps(e.Lhs)
		out = append(out, collectDeps(e.Rhs)...)
		return out
	case *ast.Not:
		return collectDeps(e.Rhs)
	case *ast.Index:
		out := collectDeps(e.Lhs)
		out = append(out, collectDeps(e.Rhs)...)
		return out
	case *ast.Conditional:
		out := collectDeps(e.Condition)
		out = append(out, collectDeps(e.Inner)...)
		out = append(out, collectDeps(e.Other)...)
		return out
	default:
		return nil
	}
}

// reportStalled runs gather_deps_errors over every name the topological
// sort could not place, deduplicating identical cycles reached from
// more than one of their own members.
func reportStalled(declarations map[string]*declRecord, order []string, placed map[string]bool) []error {
	var out []error
	seenCycle := map[string]bool{}

	for _, name := range order {
		if placed[name] {
			continue
		}
		rec := declarations[name]
		for _, err := range gatherDepsErrors(rec.Name, nil, declarations, rec.Span) {
			if rec, isCycle := err.(*errs.RecursionError); isCycle {
				key := cycleKey(rec.Chain)
				if seenCycle[key] {
					continue
				}
				seenCycle[key] = true
			}
			out = append(out, err)
		}
	}
	return out
}

func cycleKey(chain []errs.ChainLink) string {
	seen := map[string]bool{}
	names := make([]string, 0, len(chain))
	for _, c := range chain {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		key += n + ","
	}
	return key
}

// gatherDepsErrors implements spec's gather_deps_errors: it walks a
// stalled name's dependency chain, emitting a RecursionError the
// moment a name reappears, or a ReferenceError the moment it reaches a
// name with no declaration at all.
func gatherDepsErrors(n0 string, chain []errs.ChainLink, declarations map[string]*declRecord, parentSpan ast.Span) []error {
	for _, link := range chain {
		if link.Name == n0 {
			full := append(append([]errs.ChainLink{}, chain...), errs.ChainLink{Name: n0, Span: errs.Span{Start: parentSpan.Start, End: parentSpan.End}})
			return []error{&errs.RecursionError{Chain: full}}
		}
	}

	rec, ok := declarations[n0]
	if !ok {
		return []error{&errs.ReferenceError{Name: n0, Span: errs.Span{Start: parentSpan.Start, End: parentSpan.End}}}
	}

	newChain := append(append([]errs.ChainLink{}, chain...), errs.ChainLink{Name: n0, Span: errs.Span{Start: rec.Span.Start, End: rec.Span.End}})

	var out []error
	for _, d := range rec.Deps {
		out = append(out, gatherDepsErrors(d.Name, newChain, declarations, d.Span)...)
	}
	return out
}
