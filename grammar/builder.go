package grammar

import (
	"github.com/nihei9/rose/grammar/symbol"
	"github.com/nihei9/rose/spec"
)

// GrammarBuilder turns a parsed grammar description into a grammar. Every alternative of a line
// becomes a rule, and rules are numbered in the order they appear.
type GrammarBuilder struct {
	AST *spec.RootNode
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil {
		return nil, ErrNoRule
	}

	var rules []*Rule
	for _, node := range b.AST.Rules {
		lhs := symbol.FromRune(node.LHS)
		for _, alt := range node.RHS {
			rhs := make([]symbol.Symbol, 0, len(alt.Symbols))
			for _, r := range alt.Symbols {
				rhs = append(rhs, symbol.FromRune(r))
			}
			rule, err := NewRuleFromSymbols(lhs, rhs)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	}

	return NewGrammar(rules)
}
