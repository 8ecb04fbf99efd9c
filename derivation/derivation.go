package derivation

import (
	"fmt"
	"strings"

	"github.com/nihei9/rose/grammar"
	"github.com/nihei9/rose/grammar/symbol"
)

// Unbounded lets DeriveRandom apply rules until the derivation completes or gets stuck.
const Unbounded = -1

type State string

const (
	StateActive   = State("active")
	StateComplete = State("complete")
	StateStuck    = State("stuck")
)

func (s State) String() string {
	return string(s)
}

// Step is an entry of a derivation history. Applied is false only for the first step,
// which holds the start symbol.
type Step struct {
	Rule    int
	Applied bool
	Form    *SententialForm
}

// Derivation is a leftmost derivation path from the start symbol along with its history.
// Steps are only ever appended.
type Derivation struct {
	grammar *grammar.Grammar
	steps   []*Step
}

func New(g *grammar.Grammar) *Derivation {
	return &Derivation{
		grammar: g,
		steps: []*Step{
			{
				Form: NewInitialForm(g),
			},
		},
	}
}

func (d *Derivation) last() *Step {
	return d.steps[len(d.steps)-1]
}

// DeriveLeftmost rewrites the leftmost non-terminal using the rule at ruleIndex. On failure
// the derivation stays as it was.
func (d *Derivation) DeriveLeftmost(ruleIndex int) error {
	form, err := d.last().Form.Next(d.grammar, ruleIndex)
	if err != nil {
		return err
	}
	d.steps = append(d.steps, &Step{
		Rule:    ruleIndex,
		Applied: true,
		Form:    form,
	})
	return nil
}

func (d *Derivation) IsComplete() bool {
	return d.last().Form.IsComplete()
}

func (d *Derivation) LeftmostNonTerminal() (symbol.Symbol, bool) {
	return d.last().Form.LeftmostNonTerminal()
}

// State reports whether the derivation can still proceed. A derivation is stuck when no rule
// has the leftmost non-terminal as its LHS.
func (d *Derivation) State() State {
	nt, ok := d.LeftmostNonTerminal()
	if !ok {
		return StateComplete
	}
	if len(d.grammar.RuleIndicesByLHS(nt)) == 0 {
		return StateStuck
	}
	return StateActive
}

// Word returns the current sentential form. It is a word of the language only when the
// derivation is complete.
func (d *Derivation) Word() string {
	return d.last().Form.String()
}

func (d *Derivation) Len() int {
	return len(d.steps)
}

func (d *Derivation) Steps() []Step {
	steps := make([]Step, 0, len(d.steps))
	for _, step := range d.steps {
		steps = append(steps, *step)
	}
	return steps
}

// History renders one line per step.
func (d *Derivation) History() string {
	var b strings.Builder
	for i, step := range d.steps {
		if !step.Applied {
			fmt.Fprintf(&b, "Start: %v\n", step.Form)
			continue
		}
		fmt.Fprintf(&b, "Step %v: Apply Rule %v: %v\n", i, step.Rule, step.Form)
	}
	return b.String()
}

// DeriveRandom applies rules chosen by c to the leftmost non-terminal until the derivation
// completes, and returns the derived word. It gives up when the derivation gets stuck or when
// maxSteps rules have been applied without completing it. A negative maxSteps means no limit.
func (d *Derivation) DeriveRandom(maxSteps int, c Chooser) (string, bool) {
	for n := 0; ; n++ {
		if d.IsComplete() {
			return d.Word(), true
		}
		if maxSteps >= 0 && n >= maxSteps {
			return "", false
		}

		nt, _ := d.LeftmostNonTerminal()
		idxs := d.grammar.RuleIndicesByLHS(nt)
		if len(idxs) == 0 {
			return "", false
		}
		// Every rule in idxs has nt as its LHS and a grammar never changes, so applying one
		// cannot fail.
		err := d.DeriveLeftmost(idxs[c.Intn(len(idxs))])
		if err != nil {
			panic(err)
		}
	}
}
