// Package redact removes secrets from source files before they are embedded
// in a validation prompt.
//
// Redaction is opt-in: the validator normally sends files verbatim so line
// numbers and code match what the scanner saw. Detection uses regex
// heuristics for API keys, JWTs, PEM blocks, bearer tokens, provider tokens,
// and hex-encoded Ethereum private keys.
//
// Files whose paths match configured glob patterns have their entire content
// replaced with [REDACTED].
package redact
