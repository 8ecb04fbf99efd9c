package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/rose/grammar"
	"github.com/nihei9/rose/grammar/symbol"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a report on a grammar in a readable format",
		Example: `  rose show -g grammar.txt`,
		Args:    cobra.NoArgs,
		RunE:    runShow,
	}
	showFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default built-in grammar)")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*showFlags.grammar)
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, g)
	if err != nil {
		return err
	}

	return nil
}

const reportTemplate = `# Summary

Start symbol: {{ .Start }}
Valid: {{ printYesNo .IsValid }}
Regular (exactly one side per rule): {{ printYesNo .IsRegular }}
Regular (all rules on the same side): {{ printYesNo .IsTextbookRegular }}

# Terminals

{{ printSymbols .Terminals }}

# Non-terminals

{{ printSymbols .NonTerminals }}

# Rules

{{ range $i, $r := .Rules -}}
{{ printRule $i $r }}
{{ end -}}
`

func writeReport(w io.Writer, g *grammar.Grammar) error {
	fns := template.FuncMap{
		"printYesNo": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
		"printSymbols": func(syms []symbol.Symbol) string {
			if len(syms) == 0 {
				return "-"
			}
			texts := make([]string, len(syms))
			for i, sym := range syms {
				texts[i] = sym.String()
			}
			return strings.Join(texts, " ")
		},
		"printRule": func(i int, r *grammar.Rule) string {
			var b strings.Builder
			b.WriteString(r.LHS.String())
			b.WriteString(" →")
			if len(r.RHS) == 0 {
				b.WriteString(" ε")
			} else {
				b.WriteString(" ")
				b.WriteString(symbol.Join(r.RHS))
			}

			var marks []string
			if !r.IsValid() {
				marks = append(marks, "invalid")
			}
			if r.IsLeftRegular() {
				marks = append(marks, "left-regular")
			}
			if r.IsRightRegular() {
				marks = append(marks, "right-regular")
			}
			if len(marks) > 0 {
				b.WriteString("  (")
				b.WriteString(strings.Join(marks, ", "))
				b.WriteString(")")
			}

			return fmt.Sprintf("%4v %v", i, b.String())
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, g)
	if err != nil {
		return err
	}

	return nil
}
