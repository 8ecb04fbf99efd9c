package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/rose/grammar/symbol"
)

// Grammar is an ordered list of rules together with the alphabets derived from them.
// A grammar is never modified after construction, so it can be shared between derivations.
type Grammar struct {
	start       symbol.Symbol
	rules       []*Rule
	symbolTable *symbol.SymbolTableReader
	lhs2Rules   map[symbol.Symbol][]int
}

// NewGrammar builds a grammar from rules. The LHS of the first rule becomes the start symbol,
// and the index of each rule in rules is the handle used to apply it.
func NewGrammar(rules []*Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, ErrNoRule
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	rs := make([]*Rule, 0, len(rules))
	lhs2Rules := map[symbol.Symbol][]int{}
	for i, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("rule #%v is nil", i)
		}
		r, err := NewRuleFromSymbols(rule.LHS, rule.RHS)
		if err != nil {
			return nil, err
		}

		_, err = w.Register(r.LHS)
		if err != nil {
			return nil, err
		}
		for _, sym := range r.RHS {
			_, err := w.Register(sym)
			if err != nil {
				return nil, err
			}
		}

		lhs2Rules[r.LHS] = append(lhs2Rules[r.LHS], i)
		rs = append(rs, r)
	}

	return &Grammar{
		start:       rs[0].LHS,
		rules:       rs,
		symbolTable: symTab.Reader(),
		lhs2Rules:   lhs2Rules,
	}, nil
}

// MustNewGrammar is like NewGrammar but panics when the grammar cannot be built.
func MustNewGrammar(rules []*Rule) *Grammar {
	g, err := NewGrammar(rules)
	if err != nil {
		panic(err)
	}
	return g
}

// Default returns the grammar used when no grammar file is given.
func Default() *Grammar {
	return MustNewGrammar([]*Rule{
		NewRule('S', "aA"),
		NewRule('A', "AAa"),
		NewRule('A', "b"),
	})
}

func (g *Grammar) Start() symbol.Symbol {
	return g.start
}

func (g *Grammar) Len() int {
	return len(g.rules)
}

// Rule returns a copy of the rule at index i.
func (g *Grammar) Rule(i int) (*Rule, bool) {
	if i < 0 || i >= len(g.rules) {
		return nil, false
	}
	return g.rules[i].clone(), true
}

// Rules returns copies of the rules in rule order.
func (g *Grammar) Rules() []*Rule {
	rs := make([]*Rule, len(g.rules))
	for i, r := range g.rules {
		rs[i] = r.clone()
	}
	return rs
}

// Terminals returns the terminals in order of first appearance.
func (g *Grammar) Terminals() []symbol.Symbol {
	return g.symbolTable.TerminalSymbols()
}

// NonTerminals returns the non-terminals in order of first appearance.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return g.symbolTable.NonTerminalSymbols()
}

// RuleIndicesByLHS returns, in rule order, the indices of every rule whose LHS is nt.
func (g *Grammar) RuleIndicesByLHS(nt symbol.Symbol) []int {
	idxs := g.lhs2Rules[nt]
	if len(idxs) == 0 {
		return []int{}
	}
	rs := make([]int, len(idxs))
	copy(rs, idxs)
	return rs
}

func (g *Grammar) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grammar:\n")
	for _, r := range g.rules {
		fmt.Fprintf(&b, "%v\n", r)
	}
	return b.String()
}

// IsValid reports whether every rule has a non-terminal LHS.
func (g *Grammar) IsValid() bool {
	for _, r := range g.rules {
		if !r.IsValid() {
			return false
		}
	}
	return true
}

// IsRegular reports whether every rule is exactly one of left-regular or right-regular.
//
// A rule satisfying both predicates, such as `A -> b`, makes the grammar non-regular under this
// definition. Use IsTextbookRegular for the classical one.
func (g *Grammar) IsRegular() bool {
	for _, r := range g.rules {
		if r.IsLeftRegular() == r.IsRightRegular() {
			return false
		}
	}
	return true
}

// IsTextbookRegular reports whether all rules are left-regular or all rules are right-regular.
// Right-hand sides are still limited to two symbols.
func (g *Grammar) IsTextbookRegular() bool {
	left := true
	right := true
	for _, r := range g.rules {
		if !r.IsLeftRegular() {
			left = false
		}
		if !r.IsRightRegular() {
			right = false
		}
		if !left && !right {
			return false
		}
	}
	return true
}
