package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hwpg",
	Short: "Generate a recursive-descent parser from a grammar",
	Long: `hwpg reads a grammar's raw parse tree (as JSON, since parsing grammar
text itself is out of scope) and generates a hand-written-style recursive-
descent parser: one function per rule, driven by the grammar's own
structure rather than a parsing table.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
