package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true) // Blue accent
	subtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))           // Dim gray
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Sheetscript interpreter",
	Long: logoStyle.Render("sheetscript") + ` - a spreadsheet-style expression interpreter.

Declare bindings and inputs, let the dependency planner order them, and evaluate.`,
	// Silence usages on error to keep output clean
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.sheetrc.yaml or ./sheet.yaml)")
}

// Helper for printing section headers
func printHeader(title string) {
	fmt.Println(headerStyle.Render(title))
}

// Helper for printing info
func printInfo(label, value string) {
	fmt.Printf("%s: %s\n", subtextStyle.Render(label), value)
}

// Helper for printing one error per line, styled.
func printErrors(errsOut []error) {
	for _, e := range errsOut {
		fmt.Println(errorStyle.Render("error:"), e)
	}
}
