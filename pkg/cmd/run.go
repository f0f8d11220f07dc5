package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sheetscript/pkg/interp"
)

var runSets []string

var runCmd = &cobra.Command{
	Use:   "run [flags] <file>",
	Short: "Interpret a sheetscript program and print its bindings",
	Long:  `Loads a program, resolves declared inputs from --set and config, interprets it, and prints the resulting bindings.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		decls, getErrs := interp.GetInputs(string(src))
		if len(getErrs) > 0 {
			printErrors(getErrs)
			return fmt.Errorf("%d error(s)", len(getErrs))
		}

		sets, err := parseSetFlags(runSets)
		if err != nil {
			return err
		}

		inputs, resolveErrs := resolveInputs(decls, sets)
		if len(resolveErrs) > 0 {
			printErrors(resolveErrs)
			return fmt.Errorf("%d error(s)", len(resolveErrs))
		}

		store, errsOut := interp.InterpretWithInputs(string(src), inputs)
		if len(errsOut) > 0 {
			printErrors(errsOut)
			return fmt.Errorf("%d error(s)", len(errsOut))
		}

		printHeader("Run")
		names := make([]string, 0, len(store.Values))
		for name := range store.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s = %s\n", name, store.Values[name].String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringSliceVar(&runSets, "set", nil, "supply a declared input as name=value, may be repeated")
}

func parseSetFlags(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=value", s)
		}
		out[name] = val
	}
	return out, nil
}
