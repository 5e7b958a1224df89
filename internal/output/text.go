package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/triage/internal/verdict"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *verdict.Report) error {
	ew := &errWriter{w: w}

	s := report.Summary
	ew.printf("Triage: %d file(s), model %s\n", s.Files, report.Model)
	ew.println(strings.Repeat("─", 60))
	ew.printf("Valid: %d | False positive: %d | Skipped: %d | Errors: %d\n",
		s.Valid, s.FalsePositive, s.Skipped, s.Errors)
	ew.println(strings.Repeat("─", 60))

	if s.Files == 0 {
		ew.println("\nNo files to validate.")
		return ew.err
	}

	for _, r := range report.Files {
		ew.printf("\n%s %s (%s)  %s\n", statusIcon(r), r.Path, r.Language, statusLabel(r))
		for _, f := range r.Findings {
			ew.printf("    line %d  %s  %s\n", f.Line, f.VulnerabilityID, f.Severity)
		}
		if r.Explanation != "" {
			for _, line := range wrapText(r.Explanation, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (LLM: %dms)\n", report.Timing.TotalMs, report.Timing.LLMMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// statusLabel describes a file outcome in one phrase.
func statusLabel(r verdict.FileResult) string {
	switch {
	case r.Error != "":
		return "error: " + r.Error
	case r.Skipped:
		return "skipped (no selected findings)"
	default:
		return r.Verdict
	}
}

func statusIcon(r verdict.FileResult) string {
	switch {
	case r.Error != "":
		return "[E]"
	case r.Skipped:
		return "[-]"
	case r.Verdict == verdict.Valid:
		return "[!!]"
	default:
		return "[ok]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
