package grammar

import (
	"fmt"

	"github.com/nihei9/rose/grammar/symbol"
)

// Rule is a production `LHS -> RHS`. The RHS may be empty.
type Rule struct {
	LHS symbol.Symbol
	RHS []symbol.Symbol
}

// NewRule builds a rule from characters, classifying each of them by case.
func NewRule(lhs rune, rhs string) *Rule {
	return &Rule{
		LHS: symbol.FromRune(lhs),
		RHS: symbol.FromString(rhs),
	}
}

// NewRuleFromSymbols builds a rule from already classified symbols.
func NewRuleFromSymbols(lhs symbol.Symbol, rhs []symbol.Symbol) (*Rule, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("%w; LHS: %#v", semErrNilSymbol, lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("%w; LHS: %v, RHS: %#v", semErrNilSymbol, lhs, rhs)
		}
	}
	r := &Rule{
		LHS: lhs,
		RHS: make([]symbol.Symbol, len(rhs)),
	}
	copy(r.RHS, rhs)
	return r, nil
}

func (r *Rule) clone() *Rule {
	rhs := make([]symbol.Symbol, len(r.RHS))
	copy(rhs, r.RHS)
	return &Rule{
		LHS: r.LHS,
		RHS: rhs,
	}
}

func (r *Rule) String() string {
	return fmt.Sprintf("%v -> %v", r.LHS, symbol.Join(r.RHS))
}

// IsValid reports whether the LHS is a non-terminal.
func (r *Rule) IsValid() bool {
	return r.LHS.IsNonTerminal()
}

// IsLeftRegular reports whether the RHS is a single terminal or a non-terminal followed by a terminal.
// Right-hand sides longer than two symbols are never left-regular.
func (r *Rule) IsLeftRegular() bool {
	switch len(r.RHS) {
	case 1:
		return r.RHS[0].IsTerminal()
	case 2:
		return r.RHS[0].IsNonTerminal() && r.RHS[1].IsTerminal()
	}
	return false
}

// IsRightRegular reports whether the RHS is a single terminal or a terminal followed by a non-terminal.
// Right-hand sides longer than two symbols are never right-regular.
func (r *Rule) IsRightRegular() bool {
	switch len(r.RHS) {
	case 1:
		return r.RHS[0].IsTerminal()
	case 2:
		return r.RHS[0].IsTerminal() && r.RHS[1].IsNonTerminal()
	}
	return false
}
