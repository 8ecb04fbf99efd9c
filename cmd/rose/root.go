package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rose",
	Short: "Derive words from small formal grammars",
	Long: `rose provides the following features:
- Lists the rules of a grammar and reports its properties.
- Generates words by leftmost derivations, either random or following given rules.
- Prints text files, optionally with line numbers.

Every symbol of a grammar is a single character. Upper-case letters are
non-terminals and everything else is a terminal.`,
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
