package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetscript/pkg/interp"
)

var checkCmd = &cobra.Command{
	Use:     "check <file>",
	Short:   "Report planner and evaluator errors without requiring inputs",
	Long:    `Runs a full interpret pass with no input values supplied, surfacing every declaration, dependency, and type error reachable without them.`,
	Aliases: []string{"vet"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		printHeader("Check")
		printInfo("Input", args[0])

		_, errsOut := interp.Interpret(string(src))
		if len(errsOut) == 0 {
			fmt.Println(subtextStyle.Render("ok"))
			return nil
		}
		printErrors(errsOut)
		return fmt.Errorf("%d error(s)", len(errsOut))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
