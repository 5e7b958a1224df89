package verdict

import (
	"time"

	"github.com/google/uuid"
)

// ReportVersion is the schema version stamped on reports.
const ReportVersion = "1.0"

// BuildReport assembles a report from batch results.
func BuildReport(results []FileResult, model string, startTime time.Time) *Report {
	if results == nil {
		results = []FileResult{}
	}
	var llmMs int64
	for _, r := range results {
		llmMs += r.LLMMs
	}
	return &Report{
		Tool:    "triage",
		Version: ReportVersion,
		RunID:   uuid.NewString(),
		Model:   model,
		Summary: ComputeSummary(results),
		Files:   results,
		Timing: Timing{
			LLMMs:   llmMs,
			TotalMs: time.Since(startTime).Milliseconds(),
		},
	}
}
