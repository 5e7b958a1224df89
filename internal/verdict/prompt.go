package verdict

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage is returned for a language tag with no prompt template.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Supported language tags.
const (
	LanguageRust     = "Rust"
	LanguageSolidity = "Solidity-Ethereum"
)

const promptTemplate = `A SAST tool detects potential %s vulnerabilities in the following file:

Source code:
%s

Findings list:
%s

Are these valid vulnerabilities or false positives? Provide an explanation.`

// templates maps a language tag to the name interpolated into the prompt.
var templates = map[string]string{
	LanguageRust:     "Rust",
	LanguageSolidity: "Solidity",
}

var extensions = map[string]string{
	".rs":  LanguageRust,
	".sol": LanguageSolidity,
}

// Languages returns the supported language tags in sorted order.
func Languages() []string {
	langs := make([]string, 0, len(templates))
	for tag := range templates {
		langs = append(langs, tag)
	}
	sort.Strings(langs)
	return langs
}

// Supported reports whether language has a prompt template.
func Supported(language string) bool {
	_, ok := templates[language]
	return ok
}

// LanguageForPath detects the language tag from a file extension.
// It returns "" for unknown extensions.
func LanguageForPath(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// FindingsList renders the selected findings, one "line N: ID" per line,
// in input order.
func FindingsList(findings []Finding, validateAll bool) string {
	var b strings.Builder
	for _, f := range findings {
		if f.Selected(validateAll) {
			fmt.Fprintf(&b, "line %d: %s\n", f.Line, f.VulnerabilityID)
		}
	}
	return b.String()
}

// BuildPrompt builds the prompt for one file. The language is checked first
// so unsupported tags fail before any other work.
func BuildPrompt(findings []Finding, content, language string, validateAll bool) (string, error) {
	name, ok := templates[language]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return fmt.Sprintf(promptTemplate, name, content, FindingsList(findings, validateAll)), nil
}
