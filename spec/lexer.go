package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindSymbol  = tokenKind("symbol")
	tokenKindArrow   = tokenKind("->")
	tokenKindOr      = tokenKind("|")
	tokenKindNewline = tokenKind("newline")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	char rune
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newCharToken(char rune, pos Position) *token {
	return &token{
		kind: tokenKindSymbol,
		char: char,
		text: string(char),
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// lexEntries describes the tokens of a grammar description. When two entries match a lexeme of
// the same length, the earlier one wins, so `|` is never read as a symbol.
var lexEntries = []*mlspec.LexEntry{
	{
		Kind:    "white_space",
		Pattern: `[\u{0009}\u{0020}]+`,
	},
	{
		Kind:    "newline",
		Pattern: `\u{000A}|\u{000D}\u{000A}`,
	},
	{
		Kind:    "line_comment",
		Pattern: `//[^\u{000A}]*`,
	},
	{
		Kind:    "arrow",
		Pattern: mlspec.LexPattern(mlspec.EscapePattern("->")),
	},
	{
		Kind:    "or",
		Pattern: mlspec.LexPattern(mlspec.EscapePattern("|")),
	},
	{
		Kind:    "symbol",
		Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}]`,
	},
}

var compiledLexSpec struct {
	once sync.Once
	spec *mlspec.CompiledLexSpec
	err  error
}

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledLexSpec.once.Do(func() {
		s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "rose",
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for i, cErr := range cErrs {
					if i > 0 {
						fmt.Fprintf(&b, "\n")
					}
					fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
					if cErr.Detail != "" {
						fmt.Fprintf(&b, ": %v", cErr.Detail)
					}
				}
				err = fmt.Errorf("failed to compile the lexical specification: %v", b.String())
			}
			compiledLexSpec.err = err
			return
		}
		compiledLexSpec.spec = s
	})
	return compiledLexSpec.spec, compiledLexSpec.err
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines are folded into one newline token.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			newline = tok
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kindName string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(newPosition(tok.Row+1, tok.Col+1)), nil
		}
		kindName = l.s.KindNames[tok.KindID].String()
		switch kindName {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch kindName {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "arrow":
		return newSymbolToken(tokenKindArrow, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "symbol":
		r, _ := utf8.DecodeRune(tok.Lexeme)
		if r == utf8.RuneError {
			return newInvalidToken(string(tok.Lexeme), pos), nil
		}
		return newCharToken(r, pos), nil
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}
