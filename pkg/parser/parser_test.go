package parser

import (
	"strings"
	"testing"

	"sheetscript/pkg/lexer"
)

func parse(t *testing.T, input string) (string, []error) {
	t.Helper()
	l := lexer.New([]byte(input))
	p := New(l)
	prog, errs := p.ParseProgram()
	return prog.String(), errs
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mul before add", "x = 12 + 8 * 3;", "x = (12 + (8 * 3));"},
		{"pow right assoc", "x = 2 ** 3 ** 2;", "x = (2 ** (3 ** 2));"},
		{"paren grouping", "x = 10 + (30 - 5) * 3 ** 2;", "x = (10 + ((30 - 5) * (3 ** 2)));"},
		{"chained assign", "these = are = all = 12;", "these = are = all = 12;"},
		{"and looser than compare", "x = a < b and c > d;", "x = ((a < b) and (c > d));"},
		{"not binds tight", "x = not a and b;", "x = ((not a) and b);"},
		{"index postfix", "x = a[1];", "x = a[1];"},
		{"range", "x = 1..4;", "x = (1 .. 4);"},
		{"conditional", "x = if a then b else c;", "x = (if a then b else c);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := parse(t, tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			got = strings.TrimSpace(got)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInputDeclaration(t *testing.T) {
	got, errs := parse(t, "input cool: Bool;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := "input cool: Bool;"
	if strings.TrimSpace(got) != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"unbalanced paren", "x = (1 + 1;", true},
		{"unbalanced bracket", "x = [1, 2;", true},
		{"bare expression at top level", "1 + 1;", true},
		{"valid program", "x = 1 + 1;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parse(t, tt.input)
			if tt.wantError && len(errs) == 0 {
				t.Errorf("expected a parse error, got none")
			}
			if !tt.wantError && len(errs) != 0 {
				t.Errorf("expected no parse errors, got %v", errs)
			}
		})
	}
}
