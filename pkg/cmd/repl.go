package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sheetscript/pkg/interp"
)

var (
	replNoBanner bool
	replHistory  string
)

var replCmd = &cobra.Command{
	Use:   "repl [flags]",
	Short: "Start an interactive read-eval-print loop",
	Long:  `Reads one top-level statement per line, merges it into a running program buffer, and re-interprets the accumulated source after every line. A line that introduces a planner or evaluator error is retracted so the session stays live.`,
	Run: func(cmd *cobra.Command, args []string) {
		noBanner := replNoBanner || replNoBannerConfigured()
		if !noBanner {
			fmt.Println(logoStyle.Render("sheetscript") + " repl")
			fmt.Println(subtextStyle.Render("Type 'exit' or Ctrl+D to quit."))
		}
		runRepl(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replNoBanner, "no-banner", false, "hide the welcome banner")
	replCmd.Flags().StringVar(&replHistory, "history", "", "path to an accepted-line history file")
}

func runRepl(in *os.File, out *os.File) {
	prompt := replPrompt()
	historyPath := replHistory
	if historyPath == "" {
		historyPath = replHistoryFile()
	}

	scanner := bufio.NewScanner(in)
	var buffer strings.Builder
	prevRendered := map[string]string{}

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			fmt.Fprint(out, prompt)
			continue
		}
		if !strings.HasSuffix(line, ";") {
			line += ";"
		}

		candidate := buffer.String() + line + "\n"
		store, errsOut := interp.Interpret(candidate)
		if len(errsOut) > 0 {
			printErrors(errsOut)
			fmt.Fprint(out, prompt)
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")
		appendHistory(historyPath, line)

		names := make([]string, 0, len(store.Values))
		for name := range store.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rendered := store.Values[name].String()
			if prevRendered[name] != rendered {
				fmt.Fprintf(out, "  %s = %s\n", name, rendered)
			}
			prevRendered[name] = rendered
		}

		fmt.Fprint(out, prompt)
	}
}

func appendHistory(path, line string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
}
