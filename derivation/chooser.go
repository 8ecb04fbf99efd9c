package derivation

import "math/rand"

// Chooser picks an integer uniformly from [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

func NewChooser(seed int64) Chooser {
	return rand.New(rand.NewSource(seed))
}
