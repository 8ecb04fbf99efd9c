package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the rules of a grammar",
		Example: `  rose list -g grammar.txt`,
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
	listFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default built-in grammar)")
	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*listFlags.grammar)
	if err != nil {
		return err
	}

	width := len(fmt.Sprint(g.Len() - 1))
	for i, r := range g.Rules() {
		fmt.Fprintf(os.Stdout, "%*v: %v\n", width, i, r)
	}

	return nil
}
