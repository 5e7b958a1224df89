package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

type pattern struct {
	name string
	re   *regexp.Regexp
}

// patterns are regex heuristics for secrets that show up in Rust crates and
// Solidity projects (deploy scripts, test fixtures, config constants).
var patterns = []pattern{
	{"api key assignment", regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`)},
	{"aws access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"secret assignment", regexp.MustCompile(`(?i)(secret|token|password|passwd|credential|mnemonic)\s*[:=]\s*["']([^"']{8,})["']`)},
	{"bearer token", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"pem private key", regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`)},
	{"github token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"openai key", regexp.MustCompile(`sk-(proj-)?[A-Za-z0-9_-]{20,}`)},
	{"ethereum private key", regexp.MustCompile(`(?i)(private[_-]?key|priv[_-]?key|pk)\s*[:=]\s*["']?(0x)?[0-9a-f]{64}["']?`)},
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	out, _ := SecretsCount(text)
	return out
}

// SecretsCount is Secrets that also reports how many matches were replaced.
func SecretsCount(text string) (string, int) {
	n := 0
	for _, p := range patterns {
		text = p.re.ReplaceAllStringFunc(text, func(string) string {
			n++
			return placeholder
		})
	}
	return text, n
}

// ShouldRedactPath checks if a file path matches any of the redaction path patterns.
func ShouldRedactPath(path string, globs []string) bool {
	for _, g := range globs {
		if matched, err := filepath.Match(g, path); err == nil && matched {
			return true
		}
		// "**/name" also matches name in any directory.
		if base := strings.TrimPrefix(g, "**/"); base != g {
			if matched, err := filepath.Match(base, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Content redacts secrets from content, or replaces it entirely when path
// matches one of the redaction globs.
func Content(content, path string, globs []string) string {
	if ShouldRedactPath(path, globs) {
		return placeholder + " (file content redacted by path policy)\n"
	}
	return Secrets(content)
}
