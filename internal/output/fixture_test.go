package output

import "github.com/dshills/triage/internal/verdict"

func sampleReport() *verdict.Report {
	results := []verdict.FileResult{
		{
			Path:     "src/vault.rs",
			Language: "Rust",
			Findings: []verdict.Finding{
				{Line: 12, VulnerabilityID: "unchecked-arith", Severity: "High"},
				{Line: 40, VulnerabilityID: "unsafe-block", Severity: "Critical"},
			},
			Verdict: verdict.Valid,
			LLMMs:   120,
		},
		{
			Path:     "contracts/Token.sol",
			Language: "Solidity-Ethereum",
			Findings: []verdict.Finding{
				{Line: 7, VulnerabilityID: "reentrancy", Severity: "High"},
			},
			Verdict: verdict.FalsePositive,
			LLMMs:   80,
		},
		{
			Path:     "src/util.rs",
			Language: "Rust",
			Findings: []verdict.Finding{},
			Skipped:  true,
		},
		{
			Path:     "src/main.go",
			Language: "Go",
			Findings: []verdict.Finding{{Line: 3, VulnerabilityID: "x", Severity: "High"}},
			Error:    `unsupported language: "Go"`,
		},
	}
	return &verdict.Report{
		Tool:    "triage",
		Version: verdict.ReportVersion,
		RunID:   "2f1c6b9e-8d2a-4f57-9a3e-0d4b5c6e7f80",
		Model:   verdict.DefaultModel,
		Summary: verdict.ComputeSummary(results),
		Files:   results,
		Timing:  verdict.Timing{LLMMs: 200, TotalMs: 250},
	}
}

func emptyReport() *verdict.Report {
	return &verdict.Report{
		Tool:    "triage",
		Version: verdict.ReportVersion,
		Model:   verdict.DefaultModel,
		Files:   []verdict.FileResult{},
	}
}
