package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Scoring policy: fixed, additive weights over independent predicates,
// clamped to maxScore. The weights were tuned against whole-tree function
// counts; changing any predicate's scope silently shifts all scores.
const (
	lowDiversityThreshold = 0.25
	largeSampleNodeFloor  = 150

	weightLowDiversity   = 30
	weightSingleFunction = 20
	weightLargeSample    = 10

	maxScore = 100
)

// Metrics is the immutable result of one structural analysis.
type Metrics struct {
	TotalNodeCount    int     `json:"total_node_count"`
	DistinctKindCount int     `json:"distinct_kind_count"`
	DiversityRatio    float64 `json:"diversity_ratio"`
	// FunctionCount counts function/method definitions over the entire
	// tree, not only directly under the root. The scoring weights assume
	// whole-tree counts.
	FunctionCount  int `json:"function_count"`
	HeuristicScore int `json:"heuristic_score"`
}

// computeMetrics performs a full pre-order traversal of the tree, visiting
// the root and every named descendant exactly once. The metrics are
// order-independent aggregate counts, so traversal order is irrelevant.
//
// Only named nodes are visited: anonymous token nodes (punctuation,
// keywords) are lexical artifacts, not syntactic categories.
func computeMetrics(root *sitter.Node, isFunction func(kind string) bool) Metrics {
	kinds := make(map[string]struct{})
	total := 0
	functions := 0

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		total++
		kind := n.Kind()
		kinds[kind] = struct{}{}
		if isFunction(kind) {
			functions++
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	m := Metrics{
		TotalNodeCount:    total,
		DistinctKindCount: len(kinds),
		FunctionCount:     functions,
	}
	m.DiversityRatio = diversityRatio(m.DistinctKindCount, m.TotalNodeCount)
	m.HeuristicScore = heuristicScore(m)
	return m
}

// diversityRatio guards the degenerate empty-tree case: with zero nodes the
// ratio is defined to be 0, never a division failure.
func diversityRatio(distinct, total int) float64 {
	if total < 1 {
		total = 1
	}
	return float64(distinct) / float64(total)
}

func heuristicScore(m Metrics) int {
	score := 0
	if m.DiversityRatio < lowDiversityThreshold {
		score += weightLowDiversity
	}
	if m.FunctionCount == 1 {
		score += weightSingleFunction
	}
	if m.TotalNodeCount > largeSampleNodeFloor {
		score += weightLargeSample
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}
