package findings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/triage/internal/verdict"
	"gopkg.in/yaml.v3"
)

// LanguageAuto resolves each file's language from its extension.
const LanguageAuto = "auto"

// File is one source file and the findings reported against it.
type File struct {
	Path     string            `yaml:"path" json:"path"`
	Language string            `yaml:"language,omitempty" json:"language,omitempty"`
	Findings []verdict.Finding `yaml:"findings" json:"findings"`
}

// Set is the contents of a findings file.
type Set struct {
	Files []File `yaml:"files" json:"files"`
}

// Load reads a findings file. YAML and JSON are both accepted.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading findings file: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates findings from YAML or JSON bytes.
func Parse(data []byte) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("invalid findings document: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks that every file has a path and every finding a positive
// line number and an identifier.
func (s *Set) Validate() error {
	var errs []error
	for i, f := range s.Files {
		if strings.TrimSpace(f.Path) == "" {
			errs = append(errs, fmt.Errorf("files[%d]: path is required", i))
		}
		for j, fd := range f.Findings {
			if fd.Line < 1 {
				errs = append(errs, fmt.Errorf("files[%d].findings[%d]: line must be >= 1", i, j))
			}
			if strings.TrimSpace(fd.VulnerabilityID) == "" {
				errs = append(errs, fmt.Errorf("files[%d].findings[%d]: id is required", i, j))
			}
		}
	}
	return errors.Join(errs...)
}

// Count returns the total number of findings across all files.
func (s *Set) Count() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Findings)
	}
	return n
}

// ReadFunc returns the content of a source file.
type ReadFunc func(path string) (string, error)

// ReadFile reads a source file from disk.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Inputs resolves every file into a validation input. Relative paths are
// joined to root. Language precedence: the file's own language, then
// language unless it is "" or "auto", then the file extension.
func (s *Set) Inputs(root, language string, read ReadFunc) ([]verdict.FileInput, error) {
	if read == nil {
		read = ReadFile
	}
	inputs := make([]verdict.FileInput, 0, len(s.Files))
	for _, f := range s.Files {
		full := f.Path
		if !filepath.IsAbs(full) && root != "" {
			full = filepath.Join(root, full)
		}
		content, err := read(full)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", f.Path, err)
		}
		inputs = append(inputs, verdict.FileInput{
			Path:     f.Path,
			Language: ResolveLanguage(f.Path, f.Language, language),
			Content:  content,
			Findings: f.Findings,
		})
	}
	return inputs, nil
}

// ResolveLanguage picks the language for path from an explicit per-file tag,
// the configured tag, or the file extension, in that order.
func ResolveLanguage(path, fileLanguage, configured string) string {
	if fileLanguage != "" {
		return fileLanguage
	}
	if configured != "" && configured != LanguageAuto {
		return configured
	}
	return verdict.LanguageForPath(path)
}

var flagSeverities = []string{
	verdict.SeverityCritical,
	verdict.SeverityHigh,
	verdict.SeverityMedium,
	verdict.SeverityLow,
}

// ParseFlag parses a "line:id:severity[:extra]" finding as given on the
// command line. The id may not contain ':', so the severity must be one of
// the known labels; anything else means the fields were split wrongly.
func ParseFlag(s string) (verdict.Finding, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return verdict.Finding{}, fmt.Errorf("finding %q: want line:id:severity", s)
	}
	line, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || line < 1 {
		return verdict.Finding{}, fmt.Errorf("finding %q: line must be a positive integer", s)
	}
	id := strings.TrimSpace(parts[1])
	if id == "" {
		return verdict.Finding{}, fmt.Errorf("finding %q: id is required", s)
	}
	severity := strings.TrimSpace(parts[2])
	if !slices.Contains(flagSeverities, severity) {
		return verdict.Finding{}, fmt.Errorf("finding %q: severity %q is not one of %s (ids containing ':' are not supported here, use a findings file)",
			s, severity, strings.Join(flagSeverities, ", "))
	}
	f := verdict.Finding{
		Line:            line,
		VulnerabilityID: id,
		Severity:        severity,
	}
	if len(parts) == 4 {
		f.Extra = parts[3]
	}
	return f, nil
}
