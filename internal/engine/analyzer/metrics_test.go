package analyzer

import "testing"

func metricsFor(ratioLow, singleFn, large bool) Metrics {
	m := Metrics{TotalNodeCount: 100, DistinctKindCount: 40, FunctionCount: 0}
	if ratioLow {
		m.DistinctKindCount = 10
	}
	if singleFn {
		m.FunctionCount = 1
	}
	if large {
		m.TotalNodeCount = 200
	}
	m.DiversityRatio = diversityRatio(m.DistinctKindCount, m.TotalNodeCount)
	return m
}

func TestHeuristicScoreScenarios(t *testing.T) {
	cases := []struct {
		name string
		m    Metrics
		want int
	}{
		{"empty module", Metrics{TotalNodeCount: 1, DistinctKindCount: 1, DiversityRatio: 1.0}, 0},
		{"single function low diversity", Metrics{TotalNodeCount: 100, DistinctKindCount: 10, DiversityRatio: 0.10, FunctionCount: 1}, 50},
		{"large diverse two functions", Metrics{TotalNodeCount: 151, DistinctKindCount: 60, DiversityRatio: 0.40, FunctionCount: 2}, 10},
		{"all predicates fire", Metrics{TotalNodeCount: 151, DistinctKindCount: 10, DiversityRatio: 0.06, FunctionCount: 1}, 60},
		{"ratio exactly at threshold", Metrics{TotalNodeCount: 100, DistinctKindCount: 25, DiversityRatio: 0.25, FunctionCount: 0}, 0},
		{"node count exactly at floor", Metrics{TotalNodeCount: 150, DistinctKindCount: 60, DiversityRatio: 0.40, FunctionCount: 0}, 0},
		{"zero functions", Metrics{TotalNodeCount: 100, DistinctKindCount: 60, DiversityRatio: 0.60, FunctionCount: 0}, 0},
		{"two functions contribute nothing", Metrics{TotalNodeCount: 100, DistinctKindCount: 60, DiversityRatio: 0.60, FunctionCount: 2}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := heuristicScore(tc.m); got != tc.want {
				t.Errorf("heuristicScore(%+v) = %d, want %d", tc.m, got, tc.want)
			}
		})
	}
}

// Flipping any single predicate from false to true must never decrease the
// score: the weights are additive and non-negative.
func TestHeuristicScoreMonotone(t *testing.T) {
	for i := 0; i < 8; i++ {
		ratioLow := i&1 != 0
		singleFn := i&2 != 0
		large := i&4 != 0
		base := heuristicScore(metricsFor(ratioLow, singleFn, large))

		if !ratioLow {
			if flipped := heuristicScore(metricsFor(true, singleFn, large)); flipped < base {
				t.Errorf("enabling low-diversity predicate decreased score: %d -> %d", base, flipped)
			}
		}
		if !singleFn {
			if flipped := heuristicScore(metricsFor(ratioLow, true, large)); flipped < base {
				t.Errorf("enabling single-function predicate decreased score: %d -> %d", base, flipped)
			}
		}
		if !large {
			if flipped := heuristicScore(metricsFor(ratioLow, singleFn, true)); flipped < base {
				t.Errorf("enabling large-sample predicate decreased score: %d -> %d", base, flipped)
			}
		}
	}
}

func TestHeuristicScoreBounds(t *testing.T) {
	for i := 0; i < 8; i++ {
		m := metricsFor(i&1 != 0, i&2 != 0, i&4 != 0)
		score := heuristicScore(m)
		if score < 0 || score > maxScore {
			t.Errorf("score %d out of [0,%d] for %+v", score, maxScore, m)
		}
	}
}

func TestDiversityRatioEmptySafe(t *testing.T) {
	if got := diversityRatio(0, 0); got != 0 {
		t.Errorf("expected 0 for the degenerate empty tree, got %f", got)
	}
	if got := diversityRatio(1, 1); got != 1.0 {
		t.Errorf("expected 1.0 for a single-node tree, got %f", got)
	}
}
