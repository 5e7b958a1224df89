package findings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/triage/internal/verdict"
	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `files:
  - path: src/vault.rs
    findings:
      - line: 42
        id: RUST-UNSAFE-001
        severity: High
        extra: raw pointer deref
      - line: 7
        id: RUST-PANIC-002
        severity: Low
  - path: contracts/Token.sol
    language: Solidity-Ethereum
    findings:
      - line: 13
        id: SOL-REENTRANCY
        severity: Critical
`

const sampleJSON = `{"files":[{"path":"src/vault.rs","findings":[
  {"line":42,"id":"RUST-UNSAFE-001","severity":"High","extra":"raw pointer deref"},
  {"line":7,"id":"RUST-PANIC-002","severity":"Low"}]},
 {"path":"contracts/Token.sol","language":"Solidity-Ethereum","findings":[
  {"line":13,"id":"SOL-REENTRANCY","severity":"Critical"}]}]}`

func wantSet() *Set {
	return &Set{Files: []File{
		{
			Path: "src/vault.rs",
			Findings: []verdict.Finding{
				{Line: 42, VulnerabilityID: "RUST-UNSAFE-001", Severity: "High", Extra: "raw pointer deref"},
				{Line: 7, VulnerabilityID: "RUST-PANIC-002", Severity: "Low"},
			},
		},
		{
			Path:     "contracts/Token.sol",
			Language: "Solidity-Ethereum",
			Findings: []verdict.Finding{
				{Line: 13, VulnerabilityID: "SOL-REENTRANCY", Severity: "Critical"},
			},
		},
	}}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"yaml", sampleYAML},
		{"json", sampleJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if diff := cmp.Diff(wantSet(), got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
			if got.Count() != 3 {
				t.Errorf("Count() = %d, want 3", got.Count())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "invalid findings document"},
		{"unknown field", "files:\n  - path: a.rs\n    bogus: 1\n", "bogus"},
		{"missing path", "files:\n  - findings:\n      - {line: 1, id: X, severity: High}\n", "path is required"},
		{"zero line", "files:\n  - path: a.rs\n    findings:\n      - {line: 0, id: X, severity: High}\n", "line must be >= 1"},
		{"missing id", "files:\n  - path: a.rs\n    findings:\n      - {line: 3, severity: High}\n", "id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findings.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(set.Files) != 2 {
		t.Errorf("files = %d, want 2", len(set.Files))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInputs(t *testing.T) {
	set := wantSet()
	reads := map[string]string{
		filepath.Join("repo", "src/vault.rs"):        "fn vault() {}",
		filepath.Join("repo", "contracts/Token.sol"): "contract Token {}",
	}
	read := func(path string) (string, error) {
		c, ok := reads[path]
		if !ok {
			return "", errors.New("not found: " + path)
		}
		return c, nil
	}

	got, err := set.Inputs("repo", LanguageAuto, read)
	if err != nil {
		t.Fatalf("Inputs error: %v", err)
	}
	want := []verdict.FileInput{
		{Path: "src/vault.rs", Language: "Rust", Content: "fn vault() {}", Findings: set.Files[0].Findings},
		{Path: "contracts/Token.sol", Language: "Solidity-Ethereum", Content: "contract Token {}", Findings: set.Files[1].Findings},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestInputs_ReadError(t *testing.T) {
	read := func(string) (string, error) { return "", errors.New("denied") }
	if _, err := wantSet().Inputs("", "", read); err == nil {
		t.Error("expected read error")
	}
}

func TestInputs_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte("pub fn f() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	set := &Set{Files: []File{{Path: "src/lib.rs", Findings: []verdict.Finding{{Line: 1, VulnerabilityID: "X", Severity: "High"}}}}}

	got, err := set.Inputs(dir, "", nil)
	if err != nil {
		t.Fatalf("Inputs error: %v", err)
	}
	if got[0].Content != "pub fn f() {}" || got[0].Language != "Rust" {
		t.Errorf("input = %+v", got[0])
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		path, file, configured, want string
	}{
		{"a.rs", "", "", "Rust"},
		{"a.rs", "", "auto", "Rust"},
		{"a.rs", "", "Solidity-Ethereum", "Solidity-Ethereum"},
		{"a.rs", "Python", "Solidity-Ethereum", "Python"},
		{"a.py", "", "auto", ""},
	}
	for _, tt := range tests {
		if got := ResolveLanguage(tt.path, tt.file, tt.configured); got != tt.want {
			t.Errorf("ResolveLanguage(%q, %q, %q) = %q, want %q", tt.path, tt.file, tt.configured, got, tt.want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    verdict.Finding
		wantErr bool
	}{
		{"12:RUST001:High", verdict.Finding{Line: 12, VulnerabilityID: "RUST001", Severity: "High"}, false},
		{"3:SOL-TX-ORIGIN:Critical:uses tx.origin", verdict.Finding{Line: 3, VulnerabilityID: "SOL-TX-ORIGIN", Severity: "Critical", Extra: "uses tx.origin"}, false},
		{" 4 : X : Low", verdict.Finding{Line: 4, VulnerabilityID: "X", Severity: "Low"}, false},
		{"12:RUST001", verdict.Finding{}, true},
		{"zero:X:High", verdict.Finding{}, true},
		{"0:X:High", verdict.Finding{}, true},
		{"5::High", verdict.Finding{}, true},
		{"7:CWE:190:High", verdict.Finding{}, true},
		{"7:X:high", verdict.Finding{}, true},
		{"7:X:", verdict.Finding{}, true},
		{"8:X:Medium:note: with colons", verdict.Finding{Line: 8, VulnerabilityID: "X", Severity: "Medium", Extra: "note: with colons"}, false},
	}
	for _, tt := range tests {
		got, err := ParseFlag(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFlag(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
