// Package output formats validation reports for display or machine consumption.
//
// Four formats are supported:
//   - text: human-readable terminal output (default)
//   - json: full structured JSON report
//   - markdown: PR-comment-friendly table plus one section per file
//   - sarif: SARIF v2.1.0, one result per validated finding
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*verdict.Report]. [WriteReport]
// handles destination selection.
package output
