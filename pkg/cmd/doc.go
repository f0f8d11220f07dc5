package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetscript/internal/report"
	"sheetscript/pkg/interp"
)

var docCmd = &cobra.Command{
	Use:   "doc <file>",
	Short: "Print a program's dependency report",
	Long:  `Interprets a program with no inputs supplied and renders every binding's value, source, cache state, and dependency edges.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		store, errsOut := interp.Interpret(string(src))
		if len(errsOut) > 0 {
			printErrors(errsOut)
			return fmt.Errorf("%d error(s)", len(errsOut))
		}

		out, err := report.Render(store)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
}
