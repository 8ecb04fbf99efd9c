package main

import (
	"fmt"
	"os"

	verr "github.com/nihei9/rose/error"
	"github.com/nihei9/rose/grammar"
	"github.com/nihei9/rose/spec"
)

// readGrammar reads a grammar description. An empty path selects the built-in grammar.
func readGrammar(path string) (grm *grammar.Grammar, retErr error) {
	if path == "" {
		return grammar.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	defer func() {
		if retErr == nil {
			return
		}
		specErrs, ok := retErr.(verr.SpecErrors)
		if !ok {
			return
		}
		for _, err := range specErrs {
			err.FilePath = path
			err.SourceName = path
		}
	}()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}
