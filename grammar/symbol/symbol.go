package symbol

import (
	"fmt"
	"unicode"
)

type symbolKind string

const (
	symbolKindNil         = symbolKind("")
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// Symbol is a single-character grammar symbol tagged with its kind.
type Symbol struct {
	kind symbolKind
	r    rune
}

var SymbolNil = Symbol{}

func NewTerminal(r rune) Symbol {
	return Symbol{
		kind: symbolKindTerminal,
		r:    r,
	}
}

func NewNonTerminal(r rune) Symbol {
	return Symbol{
		kind: symbolKindNonTerminal,
		r:    r,
	}
}

// FromRune classifies r by case: upper-case letters are non-terminals and
// everything else is a terminal.
func FromRune(r rune) Symbol {
	if unicode.IsUpper(r) {
		return NewNonTerminal(r)
	}
	return NewTerminal(r)
}

// FromString converts every rune of s with FromRune.
func FromString(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, FromRune(r))
	}
	return syms
}

func (s Symbol) String() string {
	if s.IsNil() {
		return ""
	}
	return string(s.r)
}

// GoString is used by %#v and shows the kind of a symbol.
func (s Symbol) GoString() string {
	switch s.kind {
	case symbolKindNonTerminal:
		return fmt.Sprintf("n(%q)", s.r)
	case symbolKindTerminal:
		return fmt.Sprintf("t(%q)", s.r)
	}
	return "nil"
}

func (s Symbol) Rune() rune {
	return s.r
}

func (s Symbol) IsNil() bool {
	return s.kind == symbolKindNil
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	return s.kind == symbolKindTerminal
}

// Join renders a sequence of symbols as a string.
func Join(syms []Symbol) string {
	rs := make([]rune, 0, len(syms))
	for _, sym := range syms {
		if sym.IsNil() {
			continue
		}
		rs = append(rs, sym.r)
	}
	return string(rs)
}

type SymbolTable struct {
	known        map[Symbol]struct{}
	nonTermSyms  []Symbol
	termSyms     []Symbol
	nonTermTexts []string
	termTexts    []string
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		known: map[Symbol]struct{}{},
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// Register adds sym to the alphabet matching its kind. It reports whether sym
// was not registered yet.
func (w *SymbolTableWriter) Register(sym Symbol) (bool, error) {
	if sym.IsNil() {
		return false, fmt.Errorf("a nil symbol cannot be registered")
	}
	if _, ok := w.known[sym]; ok {
		return false, nil
	}
	w.known[sym] = struct{}{}
	if sym.IsNonTerminal() {
		w.nonTermSyms = append(w.nonTermSyms, sym)
		w.nonTermTexts = append(w.nonTermTexts, sym.String())
	} else {
		w.termSyms = append(w.termSyms, sym)
		w.termTexts = append(w.termTexts, sym.String())
	}
	return true, nil
}

func (r *SymbolTableReader) Contains(sym Symbol) bool {
	_, ok := r.known[sym]
	return ok
}

// TerminalSymbols returns the terminals in registration order.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, len(r.termSyms))
	copy(syms, r.termSyms)
	return syms
}

func (r *SymbolTableReader) TerminalTexts() []string {
	texts := make([]string, len(r.termTexts))
	copy(texts, r.termTexts)
	return texts
}

// NonTerminalSymbols returns the non-terminals in registration order.
func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, len(r.nonTermSyms))
	copy(syms, r.nonTermSyms)
	return syms
}

func (r *SymbolTableReader) NonTerminalTexts() []string {
	texts := make([]string, len(r.nonTermTexts))
	copy(texts, r.nonTermTexts)
	return texts
}
