// Package analyzer implements the structural self-similarity heuristic:
// a deterministic, bounded [0,100] score over a parsed syntax tree's
// node-kind statistics. It performs no I/O and holds no mutable state, so a
// single analyzer may be shared by concurrent callers.
package analyzer

import (
	"fmt"

	"forensic/internal/core/errors"
)

// StructuralAnalyzer binds the scoring policy to one Grammar.
type StructuralAnalyzer struct {
	grammar        Grammar
	maxSourceBytes int64
}

// New creates an analyzer for the given grammar. maxSourceBytes bounds the
// accepted input size; zero or negative disables the ceiling.
func New(grammar Grammar, maxSourceBytes int64) *StructuralAnalyzer {
	return &StructuralAnalyzer{grammar: grammar, maxSourceBytes: maxSourceBytes}
}

// Language returns the tag of the grammar this analyzer scores.
func (a *StructuralAnalyzer) Language() string {
	return a.grammar.ID()
}

// Analyze parses the source and derives structural metrics. The outcome is
// strictly a full metrics record or an error; never a partial record.
// Identical input always yields an identical result.
func (a *StructuralAnalyzer) Analyze(source []byte) (Metrics, error) {
	if a.maxSourceBytes > 0 && int64(len(source)) > a.maxSourceBytes {
		return Metrics{}, errors.New(errors.CodeValidationError,
			fmt.Sprintf("source exceeds %d byte ceiling", a.maxSourceBytes))
	}

	tree, err := a.grammar.Parse(source)
	if err != nil {
		return Metrics{}, err
	}
	defer tree.Close()

	return computeMetrics(tree.RootNode(), a.grammar.IsFunctionKind), nil
}
