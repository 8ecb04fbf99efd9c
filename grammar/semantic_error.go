package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	// ErrNoRule is returned when a grammar is built from zero rules. Such a grammar has no start symbol.
	ErrNoRule = newSemanticError("a grammar needs at least one rule")

	semErrNilSymbol = newSemanticError("a rule must not contain a nil symbol")
)
