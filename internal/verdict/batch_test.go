package verdict

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func batchInputs() []FileInput {
	return []FileInput{
		{Path: "src/a.rs", Language: LanguageRust, Content: "fn a() {}", Findings: []Finding{{Line: 1, VulnerabilityID: "A", Severity: "High"}}},
		{Path: "src/b.rs", Language: LanguageRust, Content: "fn b() {}", Findings: []Finding{{Line: 2, VulnerabilityID: "B", Severity: "Low"}}},
		{Path: "c.sol", Language: LanguageSolidity, Content: "contract C {}", Findings: []Finding{{Line: 3, VulnerabilityID: "C", Severity: "Critical"}}},
		{Path: "d.py", Language: "Python", Content: "pass", Findings: []Finding{{Line: 4, VulnerabilityID: "D", Severity: "High"}}},
	}
}

func TestValidateFiles_Outcomes(t *testing.T) {
	fc := &fakeCompleter{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "contract C {}") {
			return "This is most likely a false positive.", nil
		}
		return "Reentrancy is exploitable here.", nil
	}}

	results := New(fc).ValidateFiles(context.Background(), batchInputs(), BatchOptions{})
	require.Len(t, results, 4)

	assert.Equal(t, "src/a.rs", results[0].Path)
	assert.Equal(t, Valid, results[0].Verdict)
	assert.Empty(t, results[0].Error)

	assert.True(t, results[1].Skipped)
	assert.Empty(t, results[1].Verdict)
	assert.Empty(t, results[1].Findings)

	assert.Equal(t, FalsePositive, results[2].Verdict)

	assert.Contains(t, results[3].Error, "unsupported language")
	assert.Empty(t, results[3].Verdict)

	assert.Equal(t, 2, fc.calls())

	s := ComputeSummary(results)
	assert.Equal(t, Summary{Files: 4, Valid: 1, FalsePositive: 1, Skipped: 1, Errors: 1}, s)
}

func TestValidateFiles_AllSeveritiesValidatesLow(t *testing.T) {
	fc := &fakeCompleter{respond: reply("valid")}
	results := New(fc).ValidateFiles(context.Background(), batchInputs()[:2], BatchOptions{ValidateAll: true})

	assert.False(t, results[1].Skipped)
	assert.Equal(t, Valid, results[1].Verdict)
	assert.Equal(t, 2, fc.calls())
}

func TestValidateFiles_ErrorDoesNotStopOthers(t *testing.T) {
	fc := &fakeCompleter{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "fn a() {}") {
			return "", errors.New("boom")
		}
		return "not a vulnerability", nil
	}}

	results := New(fc).ValidateFiles(context.Background(), batchInputs()[:3], BatchOptions{})
	assert.Contains(t, results[0].Error, "boom")
	assert.Equal(t, FalsePositive, results[2].Verdict)
}

func TestValidateFiles_BoundedConcurrency(t *testing.T) {
	var inputs []FileInput
	for i := 0; i < 12; i++ {
		inputs = append(inputs, FileInput{
			Path:     "f.rs",
			Language: LanguageRust,
			Findings: []Finding{{Line: i + 1, VulnerabilityID: "X", Severity: "High"}},
		})
	}
	fc := &fakeCompleter{respond: reply("valid"), delay: 20 * time.Millisecond}

	results := New(fc).ValidateFiles(context.Background(), inputs, BatchOptions{Concurrency: 3})
	require.Len(t, results, 12)
	assert.Equal(t, 12, fc.calls())
	assert.LessOrEqual(t, fc.maxInflight.Load(), int32(3))
	assert.Greater(t, fc.maxInflight.Load(), int32(0))
}

func TestValidateFiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fc := &fakeCompleter{respond: reply("valid")}
	results := New(fc).ValidateFiles(ctx, batchInputs()[:1], BatchOptions{})
	assert.Contains(t, results[0].Error, context.Canceled.Error())
	assert.Zero(t, fc.calls())
}

func TestBuildReport(t *testing.T) {
	results := []FileResult{
		{Path: "a.rs", Verdict: Valid, LLMMs: 10},
		{Path: "b.rs", Verdict: FalsePositive, LLMMs: 5},
	}
	start := time.Now()
	r := BuildReport(results, DefaultModel, start)

	assert.Equal(t, "triage", r.Tool)
	assert.Equal(t, DefaultModel, r.Model)
	assert.Equal(t, int64(15), r.Timing.LLMMs)
	assert.True(t, r.HasValid())
	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)

	empty := BuildReport(nil, DefaultModel, start)
	assert.NotNil(t, empty.Files)
	assert.False(t, empty.HasValid())
}
