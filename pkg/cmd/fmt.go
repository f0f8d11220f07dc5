package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetscript/pkg/lexer"
	"sheetscript/pkg/parser"
	"sheetscript/pkg/printer"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print a program back through the source printer",
	Long:  `Parses a program and regenerates its canonical source text, one statement per line.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		l := lexer.New(src)
		p := parser.New(l)
		prog, errsOut := p.ParseProgram()
		if len(errsOut) > 0 {
			printErrors(errsOut)
			return fmt.Errorf("%d error(s)", len(errsOut))
		}

		out := printer.PrintProgram(prog)
		if fmtWrite {
			if err := os.WriteFile(args[0], []byte(out+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the formatted output back to the file")
}
