package output

import (
	"io"
	"strings"

	"github.com/dshills/triage/internal/verdict"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *verdict.Report) error {
	ew := &errWriter{w: w}
	s := report.Summary

	ew.printf("## Triage Report\n\n")

	ew.printf("| Outcome | Files |\n")
	ew.printf("|---------|-------|\n")
	ew.printf("| Valid | %d |\n", s.Valid)
	ew.printf("| False positive | %d |\n", s.FalsePositive)
	ew.printf("| Skipped | %d |\n", s.Skipped)
	ew.printf("| Errors | %d |\n", s.Errors)
	ew.printf("| **Total** | **%d** |\n\n", s.Files)

	if s.Files == 0 {
		ew.println("No files to validate.")
		return ew.err
	}

	for _, r := range report.Files {
		ew.printf("### %s `%s`\n\n", mdStatusIcon(r), r.Path)
		ew.printf("**%s** | %s\n\n", statusLabel(r), r.Language)

		if len(r.Findings) > 0 {
			ew.printf("| Line | ID | Severity |\n")
			ew.printf("|------|----|----------|\n")
			for _, f := range r.Findings {
				ew.printf("| %d | %s | %s |\n", f.Line, mdEscape(f.VulnerabilityID), f.Severity)
			}
			ew.println("")
		}

		if r.Explanation != "" {
			ew.printf("> %s\n\n", strings.ReplaceAll(r.Explanation, "\n", "\n> "))
		}
	}

	ew.printf("*Validated with %s in %dms (LLM: %dms)*\n",
		report.Model, report.Timing.TotalMs, report.Timing.LLMMs)

	return ew.err
}

func mdStatusIcon(r verdict.FileResult) string {
	switch {
	case r.Error != "":
		return ":x:"
	case r.Skipped:
		return ":white_circle:"
	case r.Verdict == verdict.Valid:
		return ":red_circle:"
	default:
		return ":white_check_mark:"
	}
}

// mdEscape keeps pipes in scanner IDs from breaking table rows.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
