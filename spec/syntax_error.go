package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrNoLHS         = newSyntaxError("a rule must start with a single LHS symbol")
	synErrNoArrow       = newSyntaxError("the arrow `->` must follow the LHS")
	synErrOrWithoutRule = newSyntaxError("`|` must follow a rule")
	synErrArrowInRHS    = newSyntaxError("a RHS cannot contain `->`")
)
