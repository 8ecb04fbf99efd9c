package derivation

import (
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/rose/grammar"
	"github.com/nihei9/rose/grammar/symbol"
)

type testGrammarGenerator func(rules ...string) *grammar.Grammar

// newTestGrammarGenerator returns a generator building a grammar from rules written as `LHS RHS`.
func newTestGrammarGenerator(t *testing.T) testGrammarGenerator {
	return func(rules ...string) *grammar.Grammar {
		t.Helper()

		rs := make([]*grammar.Rule, 0, len(rules))
		for _, r := range rules {
			lhs, rhs, _ := strings.Cut(r, " ")
			rs = append(rs, grammar.NewRule([]rune(lhs)[0], rhs))
		}
		g, err := grammar.NewGrammar(rs)
		if err != nil {
			t.Fatalf("failed to create a grammar: %v", err)
		}
		return g
	}
}

// scriptedChooser returns its choices in order and records every n it was asked for.
type scriptedChooser struct {
	choices []int
	asked   []int
}

func (c *scriptedChooser) Intn(n int) int {
	c.asked = append(c.asked, n)
	if len(c.choices) == 0 {
		return 0
	}
	v := c.choices[0]
	c.choices = c.choices[1:]
	return v
}

func TestSententialForm_Next(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar(
		"E E+e",
		"E x",
	)

	f := NewInitialForm(g)
	testForm(t, f, "E", 0, true)

	f1, err := f.Next(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	testForm(t, f1, "E+e", 0, true)

	f2, err := f1.Next(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	testForm(t, f2, "x+e", 0, false)
	if !f2.IsComplete() {
		t.Fatalf("the form must be complete")
	}

	// The receivers stay as they were.
	testForm(t, f, "E", 0, true)
	testForm(t, f1, "E+e", 0, true)

	_, err = f2.Next(g, 1)
	if !errors.Is(err, ErrNoNonTerminal) {
		t.Fatalf("unexpected error; want: %v, got: %v", ErrNoNonTerminal, err)
	}
}

func TestSententialForm_Next_RewritesOnlyTheLeftmostNonTerminal(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar(
		"S AaA",
		"A b",
		"A B",
		"B ",
	)

	f := NewInitialForm(g)
	tests := []struct {
		rule  int
		form  string
		ntIdx int
		hasNT bool
	}{
		{rule: 0, form: "AaA", ntIdx: 0, hasNT: true},
		{rule: 1, form: "baA", ntIdx: 2, hasNT: true},
		{rule: 2, form: "baB", ntIdx: 2, hasNT: true},
		{rule: 3, form: "ba", ntIdx: 0, hasNT: false},
	}
	for _, tt := range tests {
		var err error
		f, err = f.Next(g, tt.rule)
		if err != nil {
			t.Fatal(err)
		}
		testForm(t, f, tt.form, tt.ntIdx, tt.hasNT)
	}
}

func TestSententialForm_Next_InvalidRule(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar(
		"S aA",
		"A b",
	)

	f := NewInitialForm(g)
	for _, idx := range []int{1, -1, 2} {
		_, err := f.Next(g, idx)
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("unexpected error for rule #%v; want: %v, got: %v", idx, ErrInvalidRule, err)
		}
	}
}

func testForm(t *testing.T, f *SententialForm, form string, ntIdx int, hasNT bool) {
	t.Helper()

	if f.String() != form {
		t.Fatalf("unexpected form; want: %v, got: %v", form, f)
	}
	idx, ok := f.LeftmostIndex()
	if ok != hasNT {
		t.Fatalf("unexpected existence of a non-terminal; want: %v, got: %v", hasNT, ok)
	}
	if !ok {
		return
	}
	if idx != ntIdx {
		t.Fatalf("unexpected index of the leftmost non-terminal; want: %v, got: %v", ntIdx, idx)
	}
	nt, _ := f.LeftmostNonTerminal()
	if nt != f.Symbols()[idx] || !nt.IsNonTerminal() {
		t.Fatalf("unexpected leftmost non-terminal: %#v", nt)
	}
	for _, sym := range f.Symbols()[:idx] {
		if sym.IsNonTerminal() {
			t.Fatalf("a non-terminal precedes the leftmost non-terminal: %v", f)
		}
	}
}

func TestDerivation_DeriveLeftmost(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar(
		"S aA",
		"A AAa",
		"A b",
	)

	d := New(g)
	if d.Len() != 1 {
		t.Fatalf("a new derivation must have exactly one step; got: %v", d.Len())
	}
	if step := d.Steps()[0]; step.Applied || step.Form.String() != "S" {
		t.Fatalf("unexpected first step: %+v", step)
	}
	if d.State() != StateActive {
		t.Fatalf("unexpected state; want: %v, got: %v", StateActive, d.State())
	}

	t.Run("a rule not matching the leftmost non-terminal", func(t *testing.T) {
		err := d.DeriveLeftmost(2)
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("unexpected error; want: %v, got: %v", ErrInvalidRule, err)
		}
		if d.Len() != 1 {
			t.Fatalf("a failed step must not change the derivation; got %v steps", d.Len())
		}
	})

	for _, idx := range []int{0, 1, 2, 2} {
		err := d.DeriveLeftmost(idx)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !d.IsComplete() {
		t.Fatalf("the derivation must be complete: %v", d.Word())
	}
	if d.State() != StateComplete {
		t.Fatalf("unexpected state; want: %v, got: %v", StateComplete, d.State())
	}
	if d.Word() != "abba" {
		t.Fatalf("unexpected word; want: %v, got: %v", "abba", d.Word())
	}
	if _, ok := d.LeftmostNonTerminal(); ok {
		t.Fatalf("a complete derivation has no leftmost non-terminal")
	}

	t.Run("a complete derivation", func(t *testing.T) {
		err := d.DeriveLeftmost(2)
		if !errors.Is(err, ErrNoNonTerminal) {
			t.Fatalf("unexpected error; want: %v, got: %v", ErrNoNonTerminal, err)
		}
		if d.Len() != 5 {
			t.Fatalf("a failed step must not change the derivation; got %v steps", d.Len())
		}
	})

	t.Run("history", func(t *testing.T) {
		want := `Start: S
Step 1: Apply Rule 0: aA
Step 2: Apply Rule 1: aAAa
Step 3: Apply Rule 2: abAa
Step 4: Apply Rule 2: abba
`
		h := d.History()
		if h != want {
			t.Fatalf("unexpected history;\nwant:\n%v\ngot:\n%v", want, h)
		}
		lines := strings.Split(strings.TrimSuffix(h, "\n"), "\n")
		if len(lines) != d.Len() {
			t.Fatalf("the history must have one line per step; want: %v, got: %v", d.Len(), len(lines))
		}
	})
}

func TestDerivation_State_Stuck(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar(
		"S aB",
	)

	d := New(g)
	err := d.DeriveLeftmost(0)
	if err != nil {
		t.Fatal(err)
	}
	if d.State() != StateStuck {
		t.Fatalf("unexpected state; want: %v, got: %v", StateStuck, d.State())
	}
	nt, ok := d.LeftmostNonTerminal()
	if !ok || nt != symbol.NewNonTerminal('B') {
		t.Fatalf("unexpected leftmost non-terminal: %#v", nt)
	}
	w, ok := d.DeriveRandom(Unbounded, &scriptedChooser{})
	if ok {
		t.Fatalf("a stuck derivation must not generate a word; got: %v", w)
	}
}

func TestDerivation_DeriveRandom(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)

	tests := []struct {
		caption  string
		grammar  *grammar.Grammar
		maxSteps int
		choices  []int
		word     string
		ok       bool
		steps    int
	}{
		{
			caption:  "no budget for a start symbol needing a rule",
			grammar:  genGrammar("S aA", "A b"),
			maxSteps: 0,
			ok:       false,
			steps:    1,
		},
		{
			caption:  "no budget even when the first rule is terminal-only",
			grammar:  genGrammar("S ab"),
			maxSteps: 0,
			ok:       false,
			steps:    1,
		},
		{
			caption:  "a terminal-only first rule completes in one step",
			grammar:  genGrammar("S ab"),
			maxSteps: 1,
			word:     "ab",
			ok:       true,
			steps:    2,
		},
		{
			caption:  "an empty rule yields an empty word",
			grammar:  genGrammar("S "),
			maxSteps: 1,
			word:     "",
			ok:       true,
			steps:    2,
		},
		{
			caption:  "choices pick rules among those for the leftmost non-terminal",
			grammar:  genGrammar("S aA", "A AAa", "A b"),
			maxSteps: 20,
			choices:  []int{0, 0, 1, 1},
			word:     "abba",
			ok:       true,
			steps:    5,
		},
		{
			caption:  "left recursion exhausts the budget",
			grammar:  genGrammar("E E+e", "E x"),
			maxSteps: 5,
			choices:  []int{0, 0, 0, 0, 0, 0, 0},
			ok:       false,
			steps:    6,
		},
		{
			caption:  "the budget is enough",
			grammar:  genGrammar("E E+e", "E x"),
			maxSteps: 3,
			choices:  []int{0, 0, 1},
			word:     "x+e+e",
			ok:       true,
			steps:    4,
		},
		{
			caption:  "a dead end",
			grammar:  genGrammar("S aB", "S bC", "C c"),
			maxSteps: Unbounded,
			choices:  []int{0},
			ok:       false,
			steps:    2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			d := New(tt.grammar)
			c := &scriptedChooser{
				choices: tt.choices,
			}
			w, ok := d.DeriveRandom(tt.maxSteps, c)
			if ok != tt.ok {
				t.Fatalf("unexpected result; want: %v, got: %v (%v)", tt.ok, ok, w)
			}
			if ok && w != tt.word {
				t.Fatalf("unexpected word; want: %q, got: %q", tt.word, w)
			}
			if !ok && w != "" {
				t.Fatalf("a failed derivation must not return a word; got: %q", w)
			}
			if d.Len() != tt.steps {
				t.Fatalf("unexpected step count; want: %v, got: %v\n%v", tt.steps, d.Len(), d.History())
			}
			if tt.maxSteps >= 0 && d.Len()-1 > tt.maxSteps {
				t.Fatalf("the derivation applied more rules than allowed; limit: %v, applied: %v", tt.maxSteps, d.Len()-1)
			}
		})
	}
}

func TestDerivation_DeriveRandom_ChoosesAmongApplicableRules(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar("S aA", "A AAa", "A b")

	d := New(g)
	c := &scriptedChooser{
		choices: []int{0, 0},
	}
	_, ok := d.DeriveRandom(2, c)
	if ok {
		t.Fatalf("two steps cannot complete the derivation")
	}
	want := []int{1, 2}
	if len(c.asked) != len(want) {
		t.Fatalf("unexpected number of choices; want: %v, got: %v", want, c.asked)
	}
	for i, n := range c.asked {
		if n != want[i] {
			t.Fatalf("unexpected candidates count; want: %v, got: %v", want, c.asked)
		}
	}
}

func TestDerivation_DeriveRandom_Seeded(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar("S aS", "S b")

	for seed := int64(0); seed < 20; seed++ {
		d1 := New(g)
		w1, ok1 := d1.DeriveRandom(20, NewChooser(seed))
		d2 := New(g)
		w2, ok2 := d2.DeriveRandom(20, NewChooser(seed))
		if w1 != w2 || ok1 != ok2 || d1.History() != d2.History() {
			t.Fatalf("the same seed must produce the same derivation; seed: %v", seed)
		}
		if d1.Len()-1 > 20 {
			t.Fatalf("the derivation applied more rules than allowed: %v", d1.Len()-1)
		}
		if ok1 && (!strings.HasSuffix(w1, "b") || strings.Trim(w1, "a") != "b") {
			t.Fatalf("unexpected word: %v", w1)
		}
	}
}

func TestDerivation_DeriveRandom_AlreadyComplete(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar("S ab")

	d := New(g)
	err := d.DeriveLeftmost(0)
	if err != nil {
		t.Fatal(err)
	}
	c := &scriptedChooser{}
	w, ok := d.DeriveRandom(0, c)
	if !ok || w != "ab" {
		t.Fatalf("a complete derivation must return its word; got: %q, %v", w, ok)
	}
	if len(c.asked) != 0 || d.Len() != 2 {
		t.Fatalf("a complete derivation must not apply any rule")
	}
}

func TestDerivation_TerminalStartSymbol(t *testing.T) {
	genGrammar := newTestGrammarGenerator(t)
	g := genGrammar("a S", "S b")
	if g.IsValid() {
		t.Fatalf("a grammar whose first rule has a terminal LHS must be invalid")
	}

	d := New(g)
	if !d.IsComplete() || d.State() != StateComplete {
		t.Fatalf("a derivation starting at a terminal must be complete from the start")
	}
	err := d.DeriveLeftmost(1)
	if !errors.Is(err, ErrNoNonTerminal) {
		t.Fatalf("unexpected error; want: %v, got: %v", ErrNoNonTerminal, err)
	}

	c := &scriptedChooser{}
	w, ok := d.DeriveRandom(5, c)
	if !ok || w != "a" {
		t.Fatalf("the start symbol itself must be returned as the word; got: %q, %v", w, ok)
	}
	if len(c.asked) != 0 || d.Len() != 1 {
		t.Fatalf("no rule must be applied")
	}
}
