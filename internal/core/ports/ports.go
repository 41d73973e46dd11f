package ports

import (
	"context"

	"forensic/internal/engine/analyzer"
	"forensic/internal/engine/judge"
)

// StructuralAnalyzer abstracts the pure syntax-tree heuristic.
type StructuralAnalyzer interface {
	Analyze(source []byte) (analyzer.Metrics, error)
	Language() string
}

// Judge abstracts the remote judgment collaborator.
type Judge interface {
	Judge(ctx context.Context, source string, languageTag string) (*judge.Verdict, error)
	ModelName() string
}
