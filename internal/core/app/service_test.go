package app

import (
	"context"
	"testing"

	"forensic/internal/core/config"
	"forensic/internal/core/errors"
	"forensic/internal/engine/analyzer"
	"forensic/internal/engine/judge"
)

type stubJudge struct {
	verdict *judge.Verdict
	err     error
}

func (s stubJudge) Judge(ctx context.Context, source, languageTag string) (*judge.Verdict, error) {
	return s.verdict, s.err
}

func (s stubJudge) ModelName() string { return "stub" }

func newTestService(t *testing.T, judgeClient *stubJudge) *Service {
	t.Helper()
	cfg := config.Default()
	registry := analyzer.NewRegistry(analyzer.Overrides{})
	if judgeClient == nil {
		return NewService(cfg, registry, nil)
	}
	return NewService(cfg, registry, *judgeClient)
}

func TestAnalyzeSourceStructuralOnly(t *testing.T) {
	s := newTestService(t, nil)

	r := s.AnalyzeSource(context.Background(), "sample.py", []byte("def f():\n    pass\n"))

	if r.RequestID == "" {
		t.Error("expected a request id")
	}
	if r.Language != "python" {
		t.Errorf("expected python, got %s", r.Language)
	}
	if r.Structural == nil {
		t.Fatalf("expected structural metrics, got error %v", r.StructuralErr)
	}
	if r.Structural.FunctionCount != 1 {
		t.Errorf("expected 1 function, got %d", r.Structural.FunctionCount)
	}
	if r.Verdict != nil || r.VerdictErr != nil {
		t.Error("expected no judgment record when the judge is disabled")
	}
}

func TestAnalyzeSourceSkipsUnknownLanguage(t *testing.T) {
	s := newTestService(t, nil)
	s.cfg.Analyzer.Language = ""

	r := s.AnalyzeSource(context.Background(), "notes.txt", []byte("just some prose"))

	if !r.StructuralSkipped {
		t.Error("expected structural analysis to be skipped")
	}
	if r.Structural != nil || r.StructuralErr != nil {
		t.Error("a skipped analysis must produce neither metrics nor an error")
	}
}

func TestAnalyzeSourceJudgeFailureIsolated(t *testing.T) {
	s := newTestService(t, &stubJudge{err: errors.New(errors.CodeQuotaExceeded, "quota exhausted")})

	r := s.AnalyzeSource(context.Background(), "sample.py", []byte("x = 1\n"))

	if r.Structural == nil {
		t.Fatalf("structural record must survive a judgment failure, got %v", r.StructuralErr)
	}
	if r.VerdictErr == nil {
		t.Fatal("expected the judgment error to be recorded")
	}
	if !errors.IsCode(r.VerdictErr, errors.CodeQuotaExceeded) {
		t.Errorf("expected QUOTA_EXCEEDED, got %v", r.VerdictErr)
	}
	if errors.IsCode(r.StructuralErr, errors.CodeQuotaExceeded) {
		t.Error("judgment failures must never leak into the structural record")
	}
}

func TestAnalyzeSourceParseFailureKeepsVerdict(t *testing.T) {
	s := newTestService(t, &stubJudge{verdict: &judge.Verdict{Probability: 70, SuspectedSource: "ChatGPT"}})

	r := s.AnalyzeSource(context.Background(), "sample.py", []byte("def broken(:\n"))

	if r.StructuralErr == nil {
		t.Fatal("expected a parse failure")
	}
	if !errors.IsCode(r.StructuralErr, errors.CodeParseFailure) {
		t.Errorf("expected PARSE_FAILURE, got %v", r.StructuralErr)
	}
	if r.Verdict == nil || r.Verdict.Probability != 70 {
		t.Error("the judgment record must survive a structural parse failure")
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	s := newTestService(t, nil)

	if _, err := s.AnalyzeFile(context.Background(), "does/not/exist.py"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestService(t, &stubJudge{})
	h := NewHealthService(s)

	status := h.Check(context.Background())
	if status.Status != "up" {
		t.Errorf("expected up, got %s", status.Status)
	}
	if status.Judge != "stub" {
		t.Errorf("expected stub judge model, got %s", status.Judge)
	}
	if len(status.Grammars) == 0 {
		t.Error("expected registered grammars")
	}
}

func TestHealthCheckJudgeDisabled(t *testing.T) {
	h := NewHealthService(newTestService(t, nil))

	if status := h.Check(context.Background()); status.Judge != "disabled" {
		t.Errorf("expected disabled judge, got %s", status.Judge)
	}
}
