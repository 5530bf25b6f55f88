package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tubesort/cmd/tubesort"
	"github.com/arthur-debert/tubesort/internal/version"
)

func main() {
	rootCmd := tubesort.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TUBESORT",
		Section: "1",
		Source:  "tubesort " + version.Version,
		Manual:  "tubesort manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
