package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nihei9/rose/derivation"
	"github.com/nihei9/rose/grammar"
	"github.com/spf13/cobra"
)

const noWordMessage = "no word generated"

var deriveFlags = struct {
	grammar  *string
	maxSteps *int
	seed     *int64
	apply    *[]int
	history  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Generate a word by a leftmost derivation",
		Example: `  rose derive -g grammar.txt --max-steps 50
  rose derive --apply 0,1,2,2 --history`,
		Args: cobra.NoArgs,
		RunE: runDerive,
	}
	deriveFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default built-in grammar)")
	deriveFlags.maxSteps = cmd.Flags().IntP("max-steps", "m", 20, "maximum number of rules applied in a random derivation; a negative value means no limit")
	deriveFlags.seed = cmd.Flags().Int64P("seed", "s", 0, "seed of the random derivation (default current time)")
	deriveFlags.apply = cmd.Flags().IntSliceP("apply", "a", nil, "rule indices applied to the leftmost non-terminal in order instead of random choices")
	deriveFlags.history = cmd.Flags().Bool("history", false, "print every step of the derivation")
	rootCmd.AddCommand(cmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*deriveFlags.grammar)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if cmd.Flags().Changed("seed") {
		seed = *deriveFlags.seed
	}

	var d *derivation.Derivation
	if cmd.Flags().Changed("apply") {
		d, err = deriveByRules(g, *deriveFlags.apply)
	} else {
		d = deriveRandomly(g, *deriveFlags.maxSteps, derivation.NewChooser(seed))
	}
	if *deriveFlags.history {
		fmt.Fprint(os.Stdout, d.History())
	}
	if err != nil {
		return err
	}

	return writeWord(os.Stdout, d)
}

func deriveByRules(g *grammar.Grammar, rules []int) (*derivation.Derivation, error) {
	d := derivation.New(g)
	for _, idx := range rules {
		err := d.DeriveLeftmost(idx)
		if err != nil {
			return d, fmt.Errorf("Cannot apply rule %v to %v: %w", idx, d.Word(), err)
		}
	}
	return d, nil
}

func deriveRandomly(g *grammar.Grammar, maxSteps int, c derivation.Chooser) *derivation.Derivation {
	d := derivation.New(g)
	d.DeriveRandom(maxSteps, c)
	return d
}

func writeWord(w io.Writer, d *derivation.Derivation) error {
	if !d.IsComplete() {
		_, err := fmt.Fprintln(w, noWordMessage)
		return err
	}
	word := d.Word()
	if word == "" {
		word = "ε"
	}
	_, err := fmt.Fprintln(w, word)
	return err
}
