// Package report renders a planned VarStore as a human-readable
// dependency report, the payload behind the CLI's `doc` command.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"sheetscript/internal/analysis"
)

const reportTemplate = `SHEETSCRIPT DEPENDENCY REPORT
{{ range .Bindings }}
{{ .Name }} = {{ .Source }}
    value:      {{ .Value }}
    cached:     {{ .Cached }}
    depends on: {{ .Deps }}
    used by:    {{ .Dependents }}
{{ end }}
{{ if .Inputs }}
INPUTS
{{ range .Inputs }}  {{ .Name }}: {{ .Kind }}
{{ end }}{{ end }}`

// Binding is one VarStore entry rendered into the report.
type Binding struct {
	Name       string
	Source     string
	Value      string
	Cached     bool
	Deps       string
	Dependents string
}

// InputLine is one declared input rendered into the report's INPUTS
// section.
type InputLine struct {
	Name string
	Kind string
}

type reportData struct {
	Bindings []Binding
	Inputs   []InputLine
}

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Render formats store as a dependency report, bindings in
// alphabetical order for a stable, diffable output.
func Render(store *analysis.VarStore) (string, error) {
	names := make([]string, 0, len(store.Values))
	for name := range store.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	data := reportData{}
	for _, name := range names {
		data.Bindings = append(data.Bindings, Binding{
			Name:       name,
			Source:     store.Source[name],
			Value:      store.Values[name].String(),
			Cached:     store.Cached[name],
			Deps:       joinOrNone(store.Deps[name]),
			Dependents: joinOrNone(store.Dependents[name]),
		})
	}
	for _, in := range store.Inputs {
		data.Inputs = append(data.Inputs, InputLine{Name: in.Name, Kind: string(in.Kind)})
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering dependency report: %w", err)
	}
	return out.String(), nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
