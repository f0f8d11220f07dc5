package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetscript/pkg/interp"
)

var inputsCmd = &cobra.Command{
	Use:   "inputs <file>",
	Short: "List the inputs a program declares",
	Long:  `Parses a program and prints every declared input's name and type tag, in source order, without evaluating anything.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		decls, errsOut := interp.GetInputs(string(src))
		if len(errsOut) > 0 {
			printErrors(errsOut)
			return fmt.Errorf("%d error(s)", len(errsOut))
		}

		if len(decls) == 0 {
			fmt.Println(subtextStyle.Render("(no inputs declared)"))
			return nil
		}
		printHeader("Inputs")
		for _, d := range decls {
			fmt.Printf("  %s: %s\n", d.Name, d.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inputsCmd)
}
