package derivation

type DerivationError struct {
	message string
}

func newDerivationError(message string) *DerivationError {
	return &DerivationError{
		message: message,
	}
}

func (e *DerivationError) Error() string {
	return e.message
}

var (
	// ErrNoNonTerminal is returned when a rule is applied to a sentential form consisting only of terminals.
	ErrNoNonTerminal = newDerivationError("the sentential form has no non-terminal")

	// ErrInvalidRule is returned when the LHS of a rule doesn't match the leftmost non-terminal,
	// or when the rule doesn't exist.
	ErrInvalidRule = newDerivationError("the rule cannot be applied to the leftmost non-terminal")
)
