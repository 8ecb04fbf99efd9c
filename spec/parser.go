package spec

import (
	"io"

	verr "github.com/nihei9/rose/error"
)

type RootNode struct {
	Rules []*RuleNode
}

// RuleNode is one line of a grammar description. Each alternative becomes a rule of its own.
type RuleNode struct {
	LHS rune
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Symbols []rune
	Pos     Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

// Parse reads a grammar description. Syntax errors are reported together as verr.SpecErrors.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errs      verr.SpecErrors
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		if specErr, ok := err.(*verr.SpecError); ok {
			root = nil
			retErr = append(p.errs, specErr)
			return
		}
		retErr = err.(error)
	}()
	root = p.parseRoot()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return root, nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	for {
		rule, eof := p.parseRuleAndRecover()
		if eof {
			break
		}
		if rule != nil {
			root.Rules = append(root.Rules, rule)
		}
	}
	return root
}

// parseRuleAndRecover records a syntax error and skips the rest of the line so that the following
// rules are still checked. eof is true only when the input has been read to the end.
func (p *parser) parseRuleAndRecover() (rule *RuleNode, eof bool) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		specErr, ok := err.(*verr.SpecError)
		if !ok {
			panic(err)
		}
		p.errs = append(p.errs, specErr)
		p.skipOverNewline()
		rule = nil
		eof = false
	}()
	p.consume(tokenKindNewline)
	if p.consume(tokenKindEOF) {
		return nil, true
	}
	return p.parseRule(), false
}

func (p *parser) parseRule() *RuleNode {
	if !p.consume(tokenKindSymbol) {
		if p.consume(tokenKindOr) {
			raiseSyntaxError(p.lastTok.pos, synErrOrWithoutRule)
		}
		raiseSyntaxError(p.peekedPos(), synErrNoLHS)
	}
	lhs := p.lastTok
	if !p.consume(tokenKindArrow) {
		raiseSyntaxError(p.peekedPos(), synErrNoArrow)
	}
	rhs := []*AlternativeNode{p.parseAlternative()}
	for p.consume(tokenKindOr) {
		rhs = append(rhs, p.parseAlternative())
	}
	if p.consume(tokenKindArrow) {
		raiseSyntaxError(p.lastTok.pos, synErrArrowInRHS)
	}
	p.consume(tokenKindNewline)
	return &RuleNode{
		LHS: lhs.char,
		RHS: rhs,
		Pos: lhs.pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	alt := &AlternativeNode{
		Symbols: []rune{},
		Pos:     p.peekedPos(),
	}
	for p.consume(tokenKindSymbol) {
		alt.Symbols = append(alt.Symbols, p.lastTok.char)
	}
	return alt
}

func (p *parser) skipOverNewline() {
	for {
		tok := p.nextToken()
		switch tok.kind {
		case tokenKindNewline:
			return
		case tokenKindEOF:
			p.peekedTok = tok
			return
		}
	}
}

// peekedPos returns the position of the token that will be read next.
func (p *parser) peekedPos() Position {
	if p.peekedTok == nil {
		p.peekedTok = p.nextToken()
	}
	return p.peekedTok.pos
}

func (p *parser) nextToken() *token {
	if p.peekedTok != nil {
		tok := p.peekedTok
		p.peekedTok = nil
		return tok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.nextToken()
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		panic(&verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: tok.text,
			Row:    tok.pos.Row,
			Col:    tok.pos.Col,
		})
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
