package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

type OutcomeKind string

const (
	// OutcomeWord expects a complete derivation yielding the text.
	OutcomeWord = OutcomeKind("word")

	// OutcomeForm expects the derivation to stop at the sentential form, whether or not it is complete.
	OutcomeForm = OutcomeKind("form")

	// OutcomeError expects a rule application to fail.
	OutcomeError = OutcomeKind("error")
)

const (
	ErrorNameNoNonTerminal = "no-non-terminal"
	ErrorNameInvalidRule   = "invalid-rule"
)

type Outcome struct {
	Kind OutcomeKind
	Text string
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%v: %v", o.Kind, o.Text)
}

// TestCase is a sequence of rule indices applied as a leftmost derivation, and the expected outcome.
type TestCase struct {
	Description string
	Rules       []int
	Output      *Outcome
}

// ParseTestCase reads a test case consisting of three parts separated by `---` lines:
// a description, whitespace-separated rule indices, and an outcome such as `word: abba`.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	rules, err := parseRuleIndices(parts[1], parts[0].lineCount+2)
	if err != nil {
		return nil, err
	}
	out, err := parseOutcome(parts[2], parts[0].lineCount+parts[1].lineCount+3)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Rules:       rules,
		Output:      out,
	}, nil
}

func parseRuleIndices(part *testCasePart, lineOffset int) ([]int, error) {
	rules := []int{}
	for i, line := range strings.Split(string(part.buf), "\n") {
		for _, f := range strings.Fields(line) {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%v: a rule index must be a non-negative integer: %v", lineOffset+i, f)
			}
			rules = append(rules, n)
		}
	}
	return rules, nil
}

func parseOutcome(part *testCasePart, lineOffset int) (*Outcome, error) {
	var out *Outcome
	for i, line := range strings.Split(string(part.buf), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if out != nil {
			return nil, fmt.Errorf("%v: an output must be a single line", lineOffset+i)
		}
		kind, text, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%v: an output must be `word: <word>`, `form: <form>`, or `error: <name>`", lineOffset+i)
		}
		kind = strings.TrimSpace(kind)
		text = strings.TrimSpace(text)
		switch OutcomeKind(kind) {
		case OutcomeWord, OutcomeForm:
		case OutcomeError:
			if text != ErrorNameNoNonTerminal && text != ErrorNameInvalidRule {
				return nil, fmt.Errorf("%v: unknown error name: %v", lineOffset+i, text)
			}
		default:
			return nil, fmt.Errorf("%v: unknown output kind: %v", lineOffset+i, kind)
		}
		out = &Outcome{
			Kind: OutcomeKind(kind),
			Text: text,
		}
	}
	if out == nil {
		return nil, fmt.Errorf("%v: an output is missing", lineOffset)
	}
	return out, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
