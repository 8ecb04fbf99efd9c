package derivation

import (
	"fmt"

	"github.com/nihei9/rose/grammar"
	"github.com/nihei9/rose/grammar/symbol"
)

// SententialForm is a string of symbols reachable from the start symbol. A value is never
// modified; applying a rule yields a new one.
type SententialForm struct {
	form []symbol.Symbol

	// ntIdx is meaningful only when hasNT is true.
	ntIdx int
	hasNT bool
}

// NewInitialForm returns the form consisting of the start symbol of g.
func NewInitialForm(g *grammar.Grammar) *SententialForm {
	return newSententialForm([]symbol.Symbol{g.Start()})
}

func newSententialForm(form []symbol.Symbol) *SententialForm {
	f := &SententialForm{
		form: form,
	}
	for i, sym := range form {
		if sym.IsNonTerminal() {
			f.ntIdx = i
			f.hasNT = true
			break
		}
	}
	return f
}

// Next applies the rule at ruleIndex to the leftmost non-terminal.
func (f *SententialForm) Next(g *grammar.Grammar, ruleIndex int) (*SententialForm, error) {
	if !f.hasNT {
		return nil, fmt.Errorf("%w; form: %v", ErrNoNonTerminal, f)
	}
	rule, ok := g.Rule(ruleIndex)
	if !ok {
		return nil, fmt.Errorf("%w; rule #%v doesn't exist", ErrInvalidRule, ruleIndex)
	}
	nt := f.form[f.ntIdx]
	if rule.LHS != nt {
		return nil, fmt.Errorf("%w; rule #%v (%v), leftmost non-terminal: %v", ErrInvalidRule, ruleIndex, rule, nt)
	}

	form := make([]symbol.Symbol, 0, len(f.form)-1+len(rule.RHS))
	form = append(form, f.form[:f.ntIdx]...)
	form = append(form, rule.RHS...)
	form = append(form, f.form[f.ntIdx+1:]...)
	return newSententialForm(form), nil
}

func (f *SententialForm) IsComplete() bool {
	return !f.hasNT
}

// LeftmostIndex returns the position of the leftmost non-terminal.
func (f *SententialForm) LeftmostIndex() (int, bool) {
	if !f.hasNT {
		return 0, false
	}
	return f.ntIdx, true
}

func (f *SententialForm) LeftmostNonTerminal() (symbol.Symbol, bool) {
	if !f.hasNT {
		return symbol.SymbolNil, false
	}
	return f.form[f.ntIdx], true
}

func (f *SententialForm) Symbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, len(f.form))
	copy(syms, f.form)
	return syms
}

func (f *SententialForm) String() string {
	return symbol.Join(f.form)
}
