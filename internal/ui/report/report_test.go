package report

import (
	"encoding/json"
	"strings"
	"testing"

	"forensic/internal/core/app"
	"forensic/internal/core/errors"
	"forensic/internal/engine/analyzer"
	"forensic/internal/engine/judge"
)

func sampleReport() app.FileReport {
	return app.FileReport{
		RequestID: "req-1",
		Path:      "sample.py",
		Language:  "python",
		Structural: &analyzer.Metrics{
			TotalNodeCount:    85,
			DistinctKindCount: 8,
			DiversityRatio:    0.09,
			FunctionCount:     1,
			HeuristicScore:    50,
		},
		Verdict: &judge.Verdict{
			Probability:     85,
			SuspectedSource: "ChatGPT",
			Reasoning:       "uniform structure",
			Summary:         "likely generated",
		},
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleReport())

	for _, want := range []string{"sample.py", "heuristic score: 50%", "confidence: 85%", "ChatGPT"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestRenderTextKeepsFailureKindsApart(t *testing.T) {
	r := app.FileReport{
		Path:          "sample.py",
		Language:      "python",
		StructuralErr: errors.New(errors.CodeParseFailure, "syntax error"),
		VerdictErr:    errors.New(errors.CodeQuotaExceeded, "quota exhausted"),
	}
	out := RenderText(r)

	if !strings.Contains(out, "could not analyze this file") {
		t.Errorf("expected a parse failure message:\n%s", out)
	}
	if !strings.Contains(out, "quota exhausted, try again") {
		t.Errorf("expected a quota message:\n%s", out)
	}
	if strings.Contains(out, "syntax") && strings.Contains(out, "quota") &&
		strings.Index(out, "Structural") > strings.Index(out, "AI judgment") {
		t.Error("structural section must precede the judgment section")
	}
}

func TestJudgmentFailureMessages(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"quota":     {errors.New(errors.CodeQuotaExceeded, "429"), "quota exhausted"},
		"malformed": {errors.New(errors.CodeMalformedResponse, "no JSON"), "unreadable verdict"},
		"transport": {errors.New(errors.CodeTransportFailure, "dial refused"), "could not reach"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := judgmentFailureMessage(tc.err); !strings.Contains(got, tc.want) {
				t.Errorf("judgmentFailureMessage = %q, want it to contain %q", got, tc.want)
			}
		})
	}

	t.Run("unknown code is not reported as transport", func(t *testing.T) {
		got := judgmentFailureMessage(errors.New(errors.CodeInternal, "bad state"))
		if strings.Contains(got, "could not reach") {
			t.Errorf("unknown code rendered as a transport failure: %q", got)
		}
		if !strings.Contains(got, "bad state") {
			t.Errorf("expected the underlying message to surface, got %q", got)
		}
	})
}

func TestRenderTextJudgeDisabled(t *testing.T) {
	r := sampleReport()
	r.Verdict = nil

	if out := RenderText(r); !strings.Contains(out, "disabled") {
		t.Errorf("expected disabled judgment marker:\n%s", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown([]app.FileReport{sampleReport()})

	for _, want := range []string{"## sample.py", "| Heuristic score | 50% |", "**Confidence:** 85%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	r := sampleReport()
	r.VerdictErr = errors.New(errors.CodeTransportFailure, "unreachable")
	r.Verdict = nil

	data, err := RenderJSON([]app.FileReport{r})
	if err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 report, got %d", len(decoded))
	}
	if decoded[0]["request_id"] != "req-1" {
		t.Errorf("expected request id, got %v", decoded[0])
	}
	structural, ok := decoded[0]["structural"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected structural record, got %v", decoded[0])
	}
	if structural["heuristic_score"] != float64(50) {
		t.Errorf("expected heuristic_score 50, got %v", structural["heuristic_score"])
	}
	if _, present := decoded[0]["verdict"]; present {
		t.Error("failed judgment must not serialize a verdict object")
	}
	if decoded[0]["verdict_error"] == "" {
		t.Error("expected verdict_error to be set")
	}
}
