package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/triage/internal/verdict"
)

// SARIFWriter outputs validated findings in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *verdict.Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool       `json:"tool"`
	AutomationDetails sarifAutomation `json:"automationDetails"`
	Results           []sarifResult   `json:"results"`
}

type sarifAutomation struct {
	ID string `json:"id"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID     string                `json:"ruleId"`
	Level      string                `json:"level"`
	Message    sarifMessage          `json:"message"`
	Locations  []sarifLocation       `json:"locations"`
	Properties sarifResultProperties `json:"properties"`
}

type sarifResultProperties struct {
	Verdict  string `json:"verdict"`
	Severity string `json:"severity"`
	Model    string `json:"model"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// buildSARIF emits one result per finding of every file that received a
// verdict. Skipped and failed files produce no results.
func buildSARIF(report *verdict.Report) sarifLog {
	rules := []sarifRule{}
	results := []sarifResult{}
	seen := make(map[string]bool)

	for _, file := range report.Files {
		if file.Verdict == "" {
			continue
		}
		for _, f := range file.Findings {
			if !seen[f.VulnerabilityID] {
				seen[f.VulnerabilityID] = true
				rules = append(rules, sarifRule{
					ID:               f.VulnerabilityID,
					ShortDescription: sarifMessage{Text: f.VulnerabilityID},
				})
			}
			results = append(results, sarifResult{
				RuleID:  f.VulnerabilityID,
				Level:   verdictToLevel(file.Verdict),
				Message: sarifMessage{Text: fmt.Sprintf("%s (%s): %s", f.VulnerabilityID, f.Severity, file.Verdict)},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: file.Path},
						Region:           sarifRegion{StartLine: f.Line},
					},
				}},
				Properties: sarifResultProperties{
					Verdict:  file.Verdict,
					Severity: f.Severity,
					Model:    report.Model,
				},
			})
		}
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "triage",
						Version:        report.Version,
						InformationURI: "https://github.com/dshills/triage",
						Rules:          rules,
					},
				},
				AutomationDetails: sarifAutomation{ID: report.RunID},
				Results:           results,
			},
		},
	}
}

// verdictToLevel maps a verdict to a SARIF level.
func verdictToLevel(v string) string {
	if v == verdict.Valid {
		return "error"
	}
	return "note"
}
