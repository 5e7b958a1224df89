package verdict

// Verdict values returned by Classify and Validate.
const (
	Valid         = "Valid"
	FalsePositive = "False positive"
)

// DefaultModel is the chat model findings are judged with.
const DefaultModel = "gpt-3.5-turbo"

// Finding is a single static-analysis result for one file.
// Extra is carried through untouched and never sent to the model.
type Finding struct {
	Line            int    `json:"line" yaml:"line"`
	VulnerabilityID string `json:"id" yaml:"id"`
	Severity        string `json:"severity" yaml:"severity"`
	Extra           string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Severity labels as emitted by the scanner. Only Critical and High are
// validated unless all severities are requested.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// Selected reports whether f is sent to the model.
func (f Finding) Selected(validateAll bool) bool {
	return validateAll || f.Severity == SeverityCritical || f.Severity == SeverityHigh
}

// FileInput is everything needed to validate the findings of one file.
type FileInput struct {
	Path     string
	Language string
	Content  string
	Findings []Finding
}

// FileResult is the outcome of validating one file.
type FileResult struct {
	Path        string    `json:"path"`
	Language    string    `json:"language"`
	Findings    []Finding `json:"findings"`
	Verdict     string    `json:"verdict,omitempty"`
	Explanation string    `json:"explanation"`
	Skipped     bool      `json:"skipped,omitempty"`
	Error       string    `json:"error,omitempty"`
	LLMMs       int64     `json:"llmMs"`
}

// Summary counts file outcomes.
type Summary struct {
	Files         int `json:"files"`
	Valid         int `json:"valid"`
	FalsePositive int `json:"falsePositive"`
	Skipped       int `json:"skipped"`
	Errors        int `json:"errors"`
}

// Timing contains performance metrics.
type Timing struct {
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level output structure.
type Report struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	RunID   string       `json:"runId"`
	Model   string       `json:"model"`
	Summary Summary      `json:"summary"`
	Files   []FileResult `json:"files"`
	Timing  Timing       `json:"timing"`
}

// ComputeSummary calculates the summary from file results.
func ComputeSummary(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Error != "":
			s.Errors++
		case r.Skipped:
			s.Skipped++
		case r.Verdict == Valid:
			s.Valid++
		case r.Verdict == FalsePositive:
			s.FalsePositive++
		}
	}
	return s
}

// HasValid reports whether any file was judged Valid.
func (r *Report) HasValid() bool {
	return r.Summary.Valid > 0
}
