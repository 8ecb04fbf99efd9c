package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/nihei9/rose/derivation"
	"github.com/nihei9/rose/grammar"
	tspec "github.com/nihei9/rose/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	History      string
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("%v %v:\n%v%v", color.RedString("Failed"), r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if r.History == "" {
			return msg
		}
		histLines := strings.Split(strings.TrimSuffix(r.History, "\n"), "\n")
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(histLines, "\n"+indent2))
	}
	return fmt.Sprintf("%v %v", color.GreenString("Passed"), r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every test case file under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Grammar *grammar.Grammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Grammar, c))
	}
	return rs
}

func runTest(g *grammar.Grammar, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	d := derivation.New(g)
	var stepErr error
	for _, idx := range c.TestCase.Rules {
		stepErr = d.DeriveLeftmost(idx)
		if stepErr != nil {
			break
		}
	}

	out := c.TestCase.Output
	var err error
	switch out.Kind {
	case tspec.OutcomeError:
		var want error
		switch out.Text {
		case tspec.ErrorNameNoNonTerminal:
			want = derivation.ErrNoNonTerminal
		case tspec.ErrorNameInvalidRule:
			want = derivation.ErrInvalidRule
		}
		switch {
		case stepErr == nil:
			err = fmt.Errorf("an error was expected but every rule was applied; want: %v", want)
		case !errors.Is(stepErr, want):
			err = fmt.Errorf("unexpected error; want: %v, got: %v", want, stepErr)
		}
	case tspec.OutcomeWord:
		switch {
		case stepErr != nil:
			err = stepErr
		case !d.IsComplete():
			err = fmt.Errorf("the derivation is not complete: %v", d.Word())
		case d.Word() != out.Text:
			err = fmt.Errorf("output mismatch; want: %v, got: %v", out.Text, d.Word())
		}
	case tspec.OutcomeForm:
		switch {
		case stepErr != nil:
			err = stepErr
		case d.Word() != out.Text:
			err = fmt.Errorf("output mismatch; want: %v, got: %v", out.Text, d.Word())
		}
	default:
		err = fmt.Errorf("unknown output kind: %v", out.Kind)
	}
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
			History:      d.History(),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
