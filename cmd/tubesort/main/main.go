package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tubesort/cmd/tubesort"
	"github.com/arthur-debert/tubesort/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := tubesort.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		theme := styles.New(lipgloss.NewRenderer(os.Stderr))
		fmt.Fprintln(os.Stderr, theme.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
