package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"forensic/internal/core/config"
	"forensic/internal/core/errors"
	"forensic/internal/core/ports"
	"forensic/internal/engine/analyzer"
	"forensic/internal/engine/judge"
	"forensic/internal/shared/observability"
)

// FileReport carries the two analysis records for one document. The records
// are independent and never merged: either side may be present, absent or
// failed without affecting the other.
type FileReport struct {
	RequestID string
	Path      string
	Language  string

	Structural        *analyzer.Metrics
	StructuralErr     error
	StructuralSkipped bool

	Verdict    *judge.Verdict
	VerdictErr error
}

// Service orchestrates the structural analyzer and the optional remote
// judge over individual source documents.
type Service struct {
	cfg       *config.Config
	registry  *analyzer.Registry
	analyzers map[string]*analyzer.StructuralAnalyzer
	judge     ports.Judge
}

// NewService builds the orchestration service. judgeClient may be nil, in
// which case the judgment record is omitted from every report.
func NewService(cfg *config.Config, registry *analyzer.Registry, judgeClient ports.Judge) *Service {
	analyzers := make(map[string]*analyzer.StructuralAnalyzer)
	for _, tag := range registry.Languages() {
		if !cfg.LanguageEnabled(tag) {
			continue
		}
		g, _ := registry.Grammar(tag)
		analyzers[tag] = analyzer.New(g, cfg.Analyzer.MaxSourceBytes)
	}
	return &Service{
		cfg:       cfg,
		registry:  registry,
		analyzers: analyzers,
		judge:     judgeClient,
	}
}

// Registry exposes the grammar registry for path filtering.
func (s *Service) Registry() *analyzer.Registry {
	return s.registry
}

// AnalyzeFile reads a document from disk and analyzes it. The read error is
// the only error returned here; analysis failures live inside the report.
func (s *Service) AnalyzeFile(ctx context.Context, path string) (FileReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, errors.Wrap(err, errors.CodeInternal, "failed to read source document")
	}
	return s.AnalyzeSource(ctx, path, content), nil
}

// AnalyzeSource runs both analyzers over one in-memory document.
func (s *Service) AnalyzeSource(ctx context.Context, path string, source []byte) FileReport {
	lang := s.registry.DetectLanguage(path)
	if lang == "" {
		lang = s.cfg.Analyzer.Language
	}

	ctx, span := observability.Tracer.Start(ctx, "service.AnalyzeSource", trace.WithAttributes(
		attribute.String("language", lang),
		attribute.Int("source_bytes", len(source)),
	))
	defer span.End()

	report := FileReport{
		RequestID: uuid.NewString(),
		Path:      path,
		Language:  lang,
	}

	s.runStructural(&report, source)
	s.runJudgment(ctx, &report, source)

	return report
}

func (s *Service) runStructural(report *FileReport, source []byte) {
	a, ok := s.analyzers[report.Language]
	if !ok {
		report.StructuralSkipped = true
		observability.StructuralAnalysesTotal.WithLabelValues(report.Language, "skipped").Inc()
		return
	}

	start := time.Now()
	metrics, err := a.Analyze(source)
	observability.ParseDuration.WithLabelValues(report.Language).Observe(time.Since(start).Seconds())

	if err != nil {
		report.StructuralErr = err
		outcome := "parse_failure"
		if errors.IsCode(err, errors.CodeValidationError) {
			outcome = "rejected"
		}
		observability.StructuralAnalysesTotal.WithLabelValues(report.Language, outcome).Inc()
		slog.Debug("structural analysis failed", "path", report.Path, "error", err)
		return
	}

	report.Structural = &metrics
	observability.StructuralAnalysesTotal.WithLabelValues(report.Language, "ok").Inc()
}

func (s *Service) runJudgment(ctx context.Context, report *FileReport, source []byte) {
	if s.judge == nil {
		return
	}

	tag := report.Language
	if tag == "" {
		tag = strings.TrimPrefix(filepath.Ext(report.Path), ".")
	}

	start := time.Now()
	verdict, err := s.judge.Judge(ctx, string(source), tag)
	observability.JudgmentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		report.VerdictErr = err
		observability.JudgmentsTotal.WithLabelValues(judgmentOutcome(err)).Inc()
		slog.Debug("remote judgment failed", "path", report.Path, "error", err)
		return
	}

	report.Verdict = verdict
	observability.JudgmentsTotal.WithLabelValues("ok").Inc()
}

func judgmentOutcome(err error) string {
	switch {
	case errors.IsCode(err, errors.CodeQuotaExceeded):
		return "quota"
	case errors.IsCode(err, errors.CodeMalformedResponse):
		return "malformed"
	default:
		return "transport"
	}
}
