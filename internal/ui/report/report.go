// Package report renders analysis results. The structural record and the
// judgment record stay visually separate in every format; a judgment
// failure is never presented as a code problem.
package report

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"forensic/internal/core/app"
	"forensic/internal/core/errors"
)

// RenderText formats one report for terminal output.
func RenderText(r app.FileReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Path)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len(r.Path)))

	b.WriteString("Structural analysis")
	if r.Language != "" {
		fmt.Fprintf(&b, " (%s)", r.Language)
	}
	b.WriteString("\n")

	switch {
	case r.StructuralSkipped:
		b.WriteString("  skipped: no grammar registered for this language\n")
	case r.StructuralErr != nil:
		b.WriteString("  " + structuralFailureMessage(r.StructuralErr) + "\n")
	case r.Structural != nil:
		m := r.Structural
		fmt.Fprintf(&b, "  nodes: %d  distinct kinds: %d  diversity ratio: %.2f  functions: %d\n",
			m.TotalNodeCount, m.DistinctKindCount, m.DiversityRatio, m.FunctionCount)
		fmt.Fprintf(&b, "  heuristic score: %d%%\n", m.HeuristicScore)
	}

	b.WriteString("AI judgment\n")
	switch {
	case r.VerdictErr != nil:
		b.WriteString("  " + judgmentFailureMessage(r.VerdictErr) + "\n")
	case r.Verdict != nil:
		fmt.Fprintf(&b, "  confidence: %d%%\n", r.Verdict.Probability)
		if r.Verdict.SuspectedSource != "" {
			fmt.Fprintf(&b, "  likely origin: %s\n", r.Verdict.SuspectedSource)
		}
		if r.Verdict.Summary != "" {
			fmt.Fprintf(&b, "  summary: %s\n", r.Verdict.Summary)
		}
		if r.Verdict.Reasoning != "" {
			fmt.Fprintf(&b, "  reasoning: %s\n", r.Verdict.Reasoning)
		}
	default:
		b.WriteString("  disabled\n")
	}

	return b.String()
}

// RenderMarkdown formats a batch of reports as a markdown document.
func RenderMarkdown(reports []app.FileReport) string {
	var b strings.Builder

	b.WriteString("# AI Code Forensics Report\n\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "## %s\n\n", r.Path)

		b.WriteString("### Structural analysis\n\n")
		switch {
		case r.StructuralSkipped:
			b.WriteString("_Skipped: no grammar registered for this language._\n\n")
		case r.StructuralErr != nil:
			fmt.Fprintf(&b, "_%s_\n\n", structuralFailureMessage(r.StructuralErr))
		case r.Structural != nil:
			m := r.Structural
			b.WriteString("| Metric | Value |\n|---|---|\n")
			fmt.Fprintf(&b, "| Total nodes | %d |\n", m.TotalNodeCount)
			fmt.Fprintf(&b, "| Distinct kinds | %d |\n", m.DistinctKindCount)
			fmt.Fprintf(&b, "| Diversity ratio | %.2f |\n", m.DiversityRatio)
			fmt.Fprintf(&b, "| Functions | %d |\n", m.FunctionCount)
			fmt.Fprintf(&b, "| Heuristic score | %d%% |\n\n", m.HeuristicScore)
		}

		b.WriteString("### AI judgment\n\n")
		switch {
		case r.VerdictErr != nil:
			fmt.Fprintf(&b, "_%s_\n\n", judgmentFailureMessage(r.VerdictErr))
		case r.Verdict != nil:
			fmt.Fprintf(&b, "**Confidence:** %d%%\n\n", r.Verdict.Probability)
			if r.Verdict.SuspectedSource != "" {
				fmt.Fprintf(&b, "**Likely origin:** %s\n\n", r.Verdict.SuspectedSource)
			}
			if r.Verdict.Summary != "" {
				fmt.Fprintf(&b, "%s\n\n", r.Verdict.Summary)
			}
			if r.Verdict.Reasoning != "" {
				fmt.Fprintf(&b, "%s\n\n", r.Verdict.Reasoning)
			}
		default:
			b.WriteString("_Disabled._\n\n")
		}
	}

	return b.String()
}

type jsonReport struct {
	RequestID         string      `json:"request_id"`
	Path              string      `json:"path"`
	Language          string      `json:"language,omitempty"`
	Structural        interface{} `json:"structural,omitempty"`
	StructuralError   string      `json:"structural_error,omitempty"`
	StructuralSkipped bool        `json:"structural_skipped,omitempty"`
	Verdict           interface{} `json:"verdict,omitempty"`
	VerdictError      string      `json:"verdict_error,omitempty"`
}

// RenderJSON serializes a batch of reports; errors flatten to strings.
func RenderJSON(reports []app.FileReport) ([]byte, error) {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{
			RequestID:         r.RequestID,
			Path:              r.Path,
			Language:          r.Language,
			StructuralSkipped: r.StructuralSkipped,
		}
		if r.Structural != nil {
			jr.Structural = r.Structural
		}
		if r.StructuralErr != nil {
			jr.StructuralError = r.StructuralErr.Error()
		}
		if r.Verdict != nil {
			jr.Verdict = r.Verdict
		}
		if r.VerdictErr != nil {
			jr.VerdictError = r.VerdictErr.Error()
		}
		out = append(out, jr)
	}
	return json.MarshalIndent(out, "", "  ")
}

func structuralFailureMessage(err error) string {
	if errors.IsCode(err, errors.CodeValidationError) {
		return "rejected: " + rootMessage(err)
	}
	return "could not analyze this file: source is not syntactically valid"
}

func judgmentFailureMessage(err error) string {
	switch {
	case errors.IsCode(err, errors.CodeQuotaExceeded):
		return "judgment unavailable: API quota exhausted, try again in a few minutes"
	case errors.IsCode(err, errors.CodeMalformedResponse):
		return "judgment unavailable: model returned an unreadable verdict"
	case errors.IsJudgmentFailure(err):
		return "judgment unavailable: could not reach the judgment service"
	default:
		return "judgment unavailable: " + rootMessage(err)
	}
}

func rootMessage(err error) string {
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
